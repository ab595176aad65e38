package email

import (
	"bytes"
	"embed"
	"encoding/base64"
	"errors"
	"fmt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"html/template"
	"infinitech-web/common/constant"
	"infinitech-web/model"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	TemplateInquiry        = "inquiry"
	TemplateQuotation      = "quotation"
	TemplateTicketReply    = "ticket_reply"
	TemplateInquiryReply   = "inquiry_reply"
	TemplateChallenge      = "challenge"
	TemplateJuanTap        = "juantap"
	TemplateSurveyFollowUp = "survey_followup"
	TemplateOrderSummary   = "order_summary"
)

var ErrInvalidDataURL = errors.New("email: quotation is not a base64 data url")

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(
	template.New("email").Funcs(template.FuncMap{
		"nl2br": nl2br,
		"orNA":  orNA,
	}).ParseFS(templateFS, "templates/*.html"),
)

// Composer renders typed email templates into messages ready for a Mailer.
type Composer struct {
	Receiver string
	LogoPath string
	Printer  *message.Printer
	TimeNow  func() time.Time
}

func NewComposer(receiver, logoPath string) *Composer {
	return &Composer{
		Receiver: receiver,
		LogoPath: logoPath,
		Printer:  message.NewPrinter(language.English),
		TimeNow:  time.Now,
	}
}

func (c *Composer) InquiryNotification(req model.CreateInquiryRequest) (Message, error) {
	html, err := render(TemplateInquiry, req)
	if err != nil {
		return Message{}, err
	}

	return Message{
		Template: TemplateInquiry,
		To:       []string{c.Receiver},
		Subject:  constant.SubjectInquiryNotification,
		HTML:     html,
	}, nil
}

// Quotation decodes the PDF from a data URL ("...;base64,<payload>") and
// attaches it for the configured receiver.
func (c *Composer) Quotation(dataURL string) (Message, error) {
	_, payload, found := strings.Cut(dataURL, "base64,")
	if !found || payload == "" {
		return Message{}, ErrInvalidDataURL
	}

	pdf, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}

	html, err := render(TemplateQuotation, struct{ Filename string }{constant.QuotationFilename})
	if err != nil {
		return Message{}, err
	}

	return Message{
		Template: TemplateQuotation,
		To:       []string{c.Receiver},
		Subject:  constant.SubjectQuotationRequest,
		HTML:     html,
		Attachments: []Attachment{
			{Filename: constant.QuotationFilename, ContentType: "application/pdf", Content: pdf},
		},
	}, nil
}

// TicketReply embeds the logo by content id; a missing logo file fails the reply.
func (c *Composer) TicketReply(req model.TicketReplyRequest) (Message, error) {
	logo, err := os.ReadFile(c.LogoPath)
	if err != nil {
		return Message{}, fmt.Errorf("read logo: %w", err)
	}

	now := c.TimeNow()
	html, err := render(TemplateTicketReply, struct {
		LogoContentID string
		TicketNumber  string
		StatusColor   template.CSS
		StatusLabel   string
		Subject       string
		Message       string
		Email         string
		Date          string
		Year          int
	}{
		LogoContentID: constant.LogoContentID,
		TicketNumber:  req.TicketNumber,
		StatusColor:   StatusColor(req.Status),
		StatusLabel:   StatusLabel(req.Status),
		Subject:       req.Subject,
		Message:       req.Message,
		Email:         req.Email,
		Date:          now.Format("January 2, 2006"),
		Year:          now.Year(),
	})
	if err != nil {
		return Message{}, err
	}

	return Message{
		Template: TemplateTicketReply,
		FromName: constant.SenderSupportTeam,
		To:       []string{req.Email},
		Subject:  fmt.Sprintf(constant.SubjectTicketReplyFormat, req.Subject, req.TicketNumber),
		HTML:     html,
		Attachments: []Attachment{
			{Filename: constant.LogoFilename, ContentType: "image/png", Content: logo, ContentID: constant.LogoContentID},
		},
	}, nil
}

func (c *Composer) InquiryReply(req model.InquiryReplyRequest) (Message, error) {
	html, err := render(TemplateInquiryReply, struct {
		Name        string
		Message     string
		StatusColor template.CSS
		StatusLabel string
		Year        int
	}{
		Name:        req.Name,
		Message:     req.Message,
		StatusColor: StatusColor(req.Status),
		StatusLabel: StatusLabel(req.Status),
		Year:        c.TimeNow().Year(),
	})
	if err != nil {
		return Message{}, err
	}

	return Message{
		Template: TemplateInquiryReply,
		FromName: constant.SenderSupportTeam,
		To:       []string{req.Email},
		Subject:  constant.SubjectInquiryReplyFormat,
		HTML:     html,
		Text:     req.Message,
	}, nil
}

func (c *Composer) Challenge(req model.ChallengeEmailRequest) (Message, error) {
	challenges := Challenges(req.SurveyData)
	planName := constant.PlanNames[req.PlanType]
	planDescription := PlanDescription(req.PlanType, req.SelectedPlan)

	planLabel := "Standard"
	if req.SelectedPlan != "" {
		planLabel = cases.Title(language.English).String(req.SelectedPlan)
	}

	surveyURL := ""
	if req.PlanType == constant.PlanTypeJuanTap {
		surveyURL = constant.JuanTapSurveyURL
	}

	html, err := render(TemplateChallenge, struct {
		SurveyId        string
		Greeting        string
		Organization    string
		CompanyName     string
		ContactPerson   string
		Challenges      []string
		PlanLabel       string
		PlanDescription string
		SurveyURL       string
		Survey          model.ChallengeSurvey
		Year            int
	}{
		SurveyId:        req.SurveyData.SurveyId,
		Greeting:        orDefault(req.ContactPerson, "Valued Customer"),
		Organization:    orDefault(req.CompanyName, "your organization"),
		CompanyName:     req.CompanyName,
		ContactPerson:   req.ContactPerson,
		Challenges:      challenges,
		PlanLabel:       planLabel,
		PlanDescription: planDescription,
		SurveyURL:       surveyURL,
		Survey:          req.SurveyData,
		Year:            c.TimeNow().Year(),
	})
	if err != nil {
		return Message{}, err
	}

	text := req.Message
	if text == "" {
		lines := make([]string, 0, len(challenges))
		for _, ch := range challenges {
			lines = append(lines, "- "+ch)
		}
		text = fmt.Sprintf("Good day %s,\n\nThank you for completing our survey. We've identified several challenges from your responses and would like to offer you a complimentary %s package.\n\nIdentified Challenges:\n%s\n\nWe look forward to discussing how we can help.\n\nBest regards,\nThe INFINITECH Team",
			req.ContactPerson, planName, strings.Join(lines, "\n"))
	}

	return Message{
		Template: TemplateChallenge,
		FromName: constant.SenderInfinitech,
		To:       []string{req.To},
		Subject:  fmt.Sprintf(constant.SubjectChallengeFormat, planName, orDefault(req.CompanyName, constant.DefaultOrganization)),
		HTML:     html,
		Text:     text,
	}, nil
}

type socialLink struct {
	Platform string
	Url      string
	Href     string
}

func (c *Composer) JuanTapNotification(req model.JuanTapEmailRequest) (Message, error) {
	var social []socialLink
	if req.SurveyData != nil {
		for _, s := range req.SurveyData.SocialMedia {
			href := s.Url
			if !strings.HasPrefix(href, "http") {
				href = "https://" + href
			}
			social = append(social, socialLink{Platform: s.Platform, Url: s.Url, Href: href})
		}
	}

	html, err := render(TemplateJuanTap, struct {
		SurveyId string
		Greeting string
		Message  string
		Survey   *model.JuanTapSurvey
		Social   []socialLink
		Year     int
	}{
		SurveyId: req.JuanTapSurveyId,
		Greeting: orDefault(req.DisplayName, "Valued User"),
		Message:  req.Message,
		Survey:   req.SurveyData,
		Social:   social,
		Year:     c.TimeNow().Year(),
	})
	if err != nil {
		return Message{}, err
	}

	return Message{
		Template: TemplateJuanTap,
		FromName: constant.SenderJuanTap,
		To:       []string{req.To},
		Subject:  req.Subject,
		HTML:     html,
		Text:     req.Message,
	}, nil
}

func (c *Composer) SurveyFollowUp(req model.SurveyEmailRequest, recipients []string) (Message, error) {
	surveyId := surveyIdString(req.SurveyId)

	html, err := render(TemplateSurveyFollowUp, struct {
		SurveyId      string
		CompanyName   string
		ContactPerson string
		Message       string
		Year          int
	}{
		SurveyId:      surveyId,
		CompanyName:   req.CompanyName,
		ContactPerson: req.ContactPerson,
		Message:       req.Message,
		Year:          c.TimeNow().Year(),
	})
	if err != nil {
		return Message{}, err
	}

	subject := req.Subject
	if subject == "" {
		subject = fmt.Sprintf(constant.SubjectSurveyFollowUpFormat, surveyId, req.CompanyName)
	}

	return Message{
		Template: TemplateSurveyFollowUp,
		To:       recipients,
		Subject:  subject,
		HTML:     html,
		Text:     req.Message,
	}, nil
}

type orderLine struct {
	ServiceTitle  string
	PlanName      string
	BillingPeriod string
	Price         string
}

func (c *Composer) OrderSummary(req model.OrderSummaryRequest) (Message, error) {
	lines := make([]orderLine, 0, len(req.Cart))
	for _, item := range req.Cart {
		title := item.ServiceTitle
		if title == "" {
			title = ServiceTitle(item.Service)
		}
		lines = append(lines, orderLine{
			ServiceTitle:  title,
			PlanName:      item.PlanName,
			BillingPeriod: item.BillingPeriod,
			Price:         c.Peso(item.Price),
		})
	}

	html, err := render(TemplateOrderSummary, struct {
		ReceiptNo string
		DateStr   string
		TimeStr   string
		Lines     []orderLine
		Total     string
		Year      int
	}{
		ReceiptNo: req.ReceiptNo,
		DateStr:   req.DateStr,
		TimeStr:   req.TimeStr,
		Lines:     lines,
		Total:     c.Peso(req.Total),
		Year:      c.TimeNow().Year(),
	})
	if err != nil {
		return Message{}, err
	}

	subject := req.Subject
	if subject == "" {
		subject = fmt.Sprintf(constant.SubjectOrderSummaryFormat, req.ReceiptNo)
	}

	return Message{
		Template: TemplateOrderSummary,
		FromName: constant.SenderInfinitech,
		To:       []string{req.To},
		Subject:  subject,
		HTML:     html,
	}, nil
}

// Peso formats an amount as Philippine pesos with grouping, e.g. ₱12,500.00.
func (c *Composer) Peso(amount float64) string {
	return c.Printer.Sprintf("₱%.2f", amount)
}

// Challenges flattens the seven issue lists of a survey into prefixed lines.
func Challenges(s model.ChallengeSurvey) []string {
	groups := []struct {
		prefix string
		issues []string
	}{
		{"System Performance", s.SystemPerformanceIssues},
		{"Process & Workflow", s.ProcessWorkflowIssues},
		{"Reporting & Data", s.ReportingDataIssues},
		{"HR & Payroll", s.HrPayrollIssues},
		{"Customer & Sales", s.CustomerSalesIssues},
		{"Inventory & Supply Chain", s.InventorySupplyChainIssues},
		{"Digital Marketing", s.DigitalMarketingIssues},
	}

	var out []string
	for _, g := range groups {
		for _, issue := range g.issues {
			out = append(out, g.prefix+": "+issue)
		}
	}

	return out
}

func PlanDescription(planType, selectedPlan string) string {
	if planType == constant.PlanTypeJuanTap {
		return constant.JuanTapPlanDescriptions[selectedPlan]
	}
	return constant.PlanDescriptions[planType]
}

func ServiceTitle(service string) string {
	if title, ok := constant.ServiceTitles[service]; ok {
		return title
	}
	return service
}

func StatusColor(status string) template.CSS {
	if color, ok := constant.TicketStatusColors[strings.ToLower(status)]; ok {
		return template.CSS(color)
	}
	return template.CSS(constant.TicketStatusDefaultColor)
}

// StatusLabel replaces the first underscore, e.g. in_progress becomes "in progress".
func StatusLabel(status string) string {
	return strings.Replace(status, "_", " ", 1)
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name+".html", data); err != nil {
		return "", fmt.Errorf("render %s email: %w", name, err)
	}
	return buf.String(), nil
}

func nl2br(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

func orNA(s string) string {
	return orDefault(s, "N/A")
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// surveyIdString renders a JSON number id without a fraction.
func surveyIdString(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case float64:
		if id == float64(int64(id)) {
			return strconv.FormatInt(int64(id), 10)
		}
		return strconv.FormatFloat(id, 'f', -1, 64)
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}
