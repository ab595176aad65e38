package backend

import (
	"context"
	"errors"
	"fmt"
	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel/attribute"
	"infinitech-web/common"
	"infinitech-web/common/errs"
	"infinitech-web/common/otel"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrNotFound = errors.New("backend: record not found")

var backendErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "backend_errors_total",
		Help: "Failed calls to the external backend by kind",
	},
	[]string{"kind"},
)

// Request describes one call against the backend. JSON takes precedence over Body.
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	JSON        any
	Body        []byte
	ContentType string
	Timeout     time.Duration
}

type Response struct {
	Status      int
	Body        []byte
	ContentType string
}

func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// StatusError is returned by typed operations when the backend answers with a non-2xx status.
type StatusError struct {
	Status int
	Body   []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend responded with status %d", e.Status)
}

type Client struct {
	BaseURL       string
	ListTimeout   time.Duration
	UploadTimeout time.Duration
	PingTimeout   time.Duration

	rc *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	baseURL = strings.TrimRight(baseURL, "/")

	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &Client{
		BaseURL:       baseURL,
		ListTimeout:   10 * time.Second,
		UploadTimeout: 30 * time.Second,
		PingTimeout:   5 * time.Second,
		rc:            rc,
	}
}

// Do performs req once. Non-2xx answers are returned as responses; only
// transport failures produce an error, always an *errs.BackendError.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	ctx, span := otel.Tracer.Start(ctx, "BackendClient.Do")
	defer span.End()

	span.SetAttributes(
		attribute.String("http.method", req.Method),
		attribute.String("backend.path", req.Path),
	)

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	r := c.rc.R().SetContext(ctx)
	if len(req.Query) > 0 {
		r.SetQueryParamsFromValues(req.Query)
	}

	switch {
	case req.JSON != nil:
		r.SetHeader("Content-Type", "application/json").SetBody(req.JSON)
	case req.Body != nil:
		r.SetHeader("Content-Type", req.ContentType).SetBody(req.Body)
	}

	resp, err := r.Execute(req.Method, req.Path)
	if err != nil {
		backendErr := &errs.BackendError{Method: req.Method, URL: c.BaseURL + req.Path, Err: err}
		if backendErr.IsConnection() {
			backendErrorsTotal.WithLabelValues("connection").Inc()
		} else {
			backendErrorsTotal.WithLabelValues("transport").Inc()
		}
		common.UtilSpanError(span, backendErr)
		return nil, backendErr
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode()))
	if resp.StatusCode() >= http.StatusInternalServerError {
		backendErrorsTotal.WithLabelValues("status").Inc()
	}

	return &Response{
		Status:      resp.StatusCode(),
		Body:        resp.Body(),
		ContentType: resp.Header().Get("Content-Type"),
	}, nil
}
