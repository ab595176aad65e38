package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"infinitech-web/model"
	"net/http"
	"net/url"
	"strconv"
)

// maxListPages bounds how many backend pages a list operation walks.
const maxListPages = 50

func (c *Client) ListTickets(ctx context.Context) ([]model.SupportTicket, error) {
	return listAll[model.SupportTicket](ctx, c, "/api/support-tickets")
}

func (c *Client) ListInquiries(ctx context.Context) ([]model.Inquiry, error) {
	return listAll[model.Inquiry](ctx, c, "/api/inquiries")
}

func (c *Client) ListSurveys(ctx context.Context) ([]model.Survey, error) {
	return listAll[model.Survey](ctx, c, "/api/surveys")
}

func (c *Client) ListJuanTapSurveys(ctx context.Context) ([]model.JuanTapSurvey, error) {
	return listAll[model.JuanTapSurvey](ctx, c, "/api/juantap-surveys")
}

func (c *Client) GetJuanTapSurvey(ctx context.Context, id string) (*model.JuanTapSurvey, error) {
	resp, err := c.Do(ctx, Request{
		Method:  http.MethodGet,
		Path:    "/api/juantap-surveys/" + url.PathEscape(id),
		Timeout: c.ListTimeout,
	})
	if err != nil {
		return nil, err
	}

	if resp.Status == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if !resp.OK() {
		return nil, &StatusError{Status: resp.Status, Body: resp.Body}
	}

	raw, err := NormalizeRecord(resp.Body)
	if err != nil {
		return nil, err
	}

	var survey model.JuanTapSurvey
	if err := json.Unmarshal(raw, &survey); err != nil {
		return nil, fmt.Errorf("backend: decode juantap survey: %w", err)
	}

	return &survey, nil
}

// FindSurvey looks a discovery survey up by numeric id or survey_id. The
// backend has no single-survey endpoint, so the list is walked.
func (c *Client) FindSurvey(ctx context.Context, id string) (*model.Survey, error) {
	surveys, err := c.ListSurveys(ctx)
	if err != nil {
		return nil, err
	}

	for i := range surveys {
		if strconv.FormatInt(surveys[i].Id, 10) == id || (surveys[i].SurveyId != "" && surveys[i].SurveyId == id) {
			return &surveys[i], nil
		}
	}

	return nil, ErrNotFound
}

func (c *Client) UpdateTicketStatus(ctx context.Context, id string, status string) error {
	return c.expectOK(ctx, Request{
		Method: http.MethodPut,
		Path:   "/api/support-tickets/" + url.PathEscape(id),
		JSON:   map[string]string{"status": status},
	})
}

func (c *Client) UpdateInquiryStatus(ctx context.Context, id string, status string) error {
	return c.expectOK(ctx, Request{
		Method: http.MethodPatch,
		Path:   "/api/inquiries/" + url.PathEscape(id) + "/updatestatus",
		JSON:   map[string]string{"status": status},
	})
}

// Ping reports whether the backend answers without a server error.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.Do(ctx, Request{
		Method:  http.MethodGet,
		Path:    "/api/support-tickets",
		Timeout: c.PingTimeout,
	})
	if err != nil {
		return err
	}

	if resp.Status >= http.StatusInternalServerError {
		return &StatusError{Status: resp.Status, Body: resp.Body}
	}

	return nil
}

func (c *Client) expectOK(ctx context.Context, req Request) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}

	if !resp.OK() {
		return &StatusError{Status: resp.Status, Body: resp.Body}
	}

	return nil
}

func listAll[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var all []json.RawMessage

	for page := 1; page <= maxListPages; page++ {
		query := url.Values{}
		if page > 1 {
			query.Set("page", strconv.Itoa(page))
		}

		resp, err := c.Do(ctx, Request{
			Method:  http.MethodGet,
			Path:    path,
			Query:   query,
			Timeout: c.ListTimeout,
		})
		if err != nil {
			return nil, err
		}

		if !resp.OK() {
			return nil, &StatusError{Status: resp.Status, Body: resp.Body}
		}

		items, err := NormalizeList(resp.Body)
		if err != nil {
			return nil, err
		}

		all = append(all, items...)

		if LastPage(resp.Body) <= page {
			break
		}
	}

	return DecodeList[T](all)
}
