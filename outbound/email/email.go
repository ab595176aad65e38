package email

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/attribute"
	"gopkg.in/gomail.v2"
	"infinitech-web/common/otel"
	"io"
	"strings"
)

const (
	ProviderSMTP     = "smtp"
	ProviderSendGrid = "sendgrid"
)

var (
	ErrNoRecipients  = errors.New("email: no valid recipient emails provided")
	ErrNotConfigured = errors.New("email: service not configured properly")
)

var emailsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "emails_sent_total",
		Help: "Outbound emails by template and result",
	},
	[]string{"template", "result"},
)

// Attachment is attached as a file, or embedded inline when ContentID is set.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
	ContentID   string
}

type Message struct {
	Template    string
	FromName    string
	From        string
	To          []string
	Subject     string
	HTML        string
	Text        string
	Attachments []Attachment
}

// EmailOutbound sends one message per call over a freshly dialed SMTP
// session, or through SendGrid when email.provider is "sendgrid".
type EmailOutbound struct {
	Cfg *viper.Viper

	provider    string
	host        string
	port        int
	username    string
	password    string
	from        string
	sendgridKey string

	deliver      func(ctx context.Context, m *gomail.Message) error
	sendSendGrid func(ctx context.Context, m *mail.SGMailV3) (string, error)
}

func (out *EmailOutbound) Init() {
	out.provider = strings.ToLower(out.Cfg.GetString("email.provider"))
	if out.provider == "" {
		out.provider = ProviderSMTP
	}

	out.host = out.Cfg.GetString("smtp.host")
	out.port = out.Cfg.GetInt("smtp.port")
	out.username = out.Cfg.GetString("smtp.username")
	out.password = out.Cfg.GetString("smtp.password")
	out.from = out.Cfg.GetString("smtp.from")
	if out.from == "" {
		out.from = out.username
	}
	out.sendgridKey = out.Cfg.GetString("email.sendgrid.api_key")

	if out.deliver == nil {
		out.deliver = out.dialAndSend
	}
	if out.sendSendGrid == nil {
		out.sendSendGrid = out.postSendGrid
	}
}

// Configured reports whether the active provider has its credentials.
func (out *EmailOutbound) Configured() bool {
	if out.provider == ProviderSendGrid {
		return out.sendgridKey != "" && out.from != ""
	}

	return out.username != "" && out.password != ""
}

// Send delivers msg and returns its message id. Credentials are checked
// before recipients, and nothing is dialed when either check fails.
func (out *EmailOutbound) Send(ctx context.Context, msg Message) (string, error) {
	ctx, span := otel.Tracer.Start(ctx, "EmailOutbound.Send")
	defer span.End()

	span.SetAttributes(
		attribute.String("email.provider", out.provider),
		attribute.String("email.template", msg.Template),
	)

	if !out.Configured() {
		return "", ErrNotConfigured
	}

	recipients := cleanRecipients(msg.To)
	if len(recipients) == 0 {
		return "", ErrNoRecipients
	}
	msg.To = recipients

	if msg.From == "" {
		msg.From = out.from
	}

	messageId := newMessageId(msg.From)

	var err error
	if out.provider == ProviderSendGrid {
		var providerId string
		providerId, err = out.sendSendGrid(ctx, out.buildSendGrid(msg))
		if err == nil && providerId != "" {
			messageId = providerId
		}
	} else {
		err = out.deliver(ctx, out.buildSMTP(msg, messageId))
	}

	if err != nil {
		emailsSentTotal.WithLabelValues(msg.Template, "failed").Inc()
		span.RecordError(err)
		return "", fmt.Errorf("send email: %w", err)
	}

	emailsSentTotal.WithLabelValues(msg.Template, "sent").Inc()
	return messageId, nil
}

func (out *EmailOutbound) buildSMTP(msg Message, messageId string) *gomail.Message {
	m := gomail.NewMessage()

	if msg.FromName != "" {
		m.SetAddressHeader("From", msg.From, msg.FromName)
	} else {
		m.SetHeader("From", msg.From)
	}
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", messageId)

	switch {
	case msg.Text != "" && msg.HTML != "":
		m.SetBody("text/plain", msg.Text)
		m.AddAlternative("text/html", msg.HTML)
	case msg.Text != "":
		m.SetBody("text/plain", msg.Text)
	default:
		m.SetBody("text/html", msg.HTML)
	}

	for _, a := range msg.Attachments {
		content := a.Content
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(content)
				return err
			}),
		}
		if a.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{"Content-Type": {a.ContentType}}))
		}

		if a.ContentID != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{"Content-ID": {"<" + a.ContentID + ">"}}))
			m.Embed(a.Filename, settings...)
			continue
		}

		m.Attach(a.Filename, settings...)
	}

	return m
}

func (out *EmailOutbound) dialAndSend(ctx context.Context, m *gomail.Message) error {
	d := gomail.NewDialer(out.host, out.port, out.username, out.password)
	d.SSL = out.port == 465

	done := make(chan error, 1)
	go func() {
		done <- d.DialAndSend(m)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (out *EmailOutbound) buildSendGrid(msg Message) *mail.SGMailV3 {
	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail(msg.FromName, msg.From))
	m.Subject = msg.Subject

	p := mail.NewPersonalization()
	for _, to := range msg.To {
		p.AddTos(mail.NewEmail("", to))
	}
	m.AddPersonalizations(p)

	if msg.Text != "" {
		m.AddContent(mail.NewContent("text/plain", msg.Text))
	}
	if msg.HTML != "" {
		m.AddContent(mail.NewContent("text/html", msg.HTML))
	}

	for _, a := range msg.Attachments {
		att := mail.NewAttachment()
		att.SetContent(base64.StdEncoding.EncodeToString(a.Content))
		att.SetType(a.ContentType)
		att.SetFilename(a.Filename)
		if a.ContentID != "" {
			att.SetDisposition("inline")
			att.SetContentID(a.ContentID)
		} else {
			att.SetDisposition("attachment")
		}
		m.AddAttachment(att)
	}

	return m
}

func (out *EmailOutbound) postSendGrid(ctx context.Context, m *mail.SGMailV3) (string, error) {
	resp, err := sendgrid.NewSendClient(out.sendgridKey).SendWithContext(ctx, m)
	if err != nil {
		return "", err
	}

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("sendgrid responded with status %d: %s", resp.StatusCode, resp.Body)
	}

	if ids := resp.Headers["X-Message-Id"]; len(ids) > 0 {
		return ids[0], nil
	}

	return "", nil
}

func cleanRecipients(to []string) []string {
	out := make([]string, 0, len(to))
	for _, addr := range to {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

func newMessageId(from string) string {
	domain := "localhost"
	if at := strings.LastIndex(from, "@"); at >= 0 && at < len(from)-1 {
		domain = from[at+1:]
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}
