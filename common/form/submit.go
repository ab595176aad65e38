package form

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"infinitech-web/model"
	"net/http"
	"sort"
	"strings"
	"time"
)

const MsgSubmitFailed = "Failed to submit survey. Please try again."

// ValidationError lists field errors that blocked a submission.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// SubmitError is a submission the server refused or could not answer. Its
// message feeds FriendlyError.
type SubmitError struct {
	Message string
}

func (e *SubmitError) Error() string {
	return e.Message
}

// Submitter posts JuanTap forms to the public submission route of this service.
type Submitter struct {
	Validate *validator.Validate
	client   *resty.Client
}

func NewSubmitter(baseURL string, timeout time.Duration, validate *validator.Validate) *Submitter {
	return &Submitter{
		Validate: validate,
		client: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(timeout),
	}
}

func (s *Submitter) Submit(ctx context.Context, f *JuanTapForm) (*model.ResultResponse, error) {
	if fieldErrs := f.Validate(s.Validate); len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	contentType, body, err := f.Encode()
	if err != nil {
		return nil, err
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetBody(body).
		Post("/api/juantap-surveys")
	if err != nil {
		return nil, &SubmitError{Message: fmt.Sprintf("Failed to fetch: %v", err)}
	}

	if !strings.Contains(resp.Header().Get("Content-Type"), "application/json") {
		return nil, &SubmitError{Message: fmt.Sprintf("Server error: %d %s", resp.StatusCode(), http.StatusText(resp.StatusCode()))}
	}

	var result model.ResultResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, &SubmitError{Message: fmt.Sprintf("Server error: %d %s", resp.StatusCode(), http.StatusText(resp.StatusCode()))}
	}

	if !result.Success {
		msg := result.Message
		if msg == "" {
			msg = MsgSubmitFailed
		}
		return &result, &SubmitError{Message: msg}
	}

	return &result, nil
}
