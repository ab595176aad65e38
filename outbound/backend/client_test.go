package backend

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/stretchr/testify/suite"
	"infinitech-web/common/errs"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

type ClientTestSuite struct {
	suite.Suite

	Mux    *http.ServeMux
	Server *httptest.Server
	Client *Client
}

func (s *ClientTestSuite) SetupTest() {
	s.Mux = http.NewServeMux()
	s.Server = httptest.NewServer(s.Mux)
	s.Client = NewClient(s.Server.URL+"/", 5*time.Second)
}

func (s *ClientTestSuite) TearDownTest() {
	s.Server.Close()
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) TestDoForwardsJSON() {
	s.Mux.HandleFunc("POST /api/inquiries", func(w http.ResponseWriter, r *http.Request) {
		s.Equal("application/json", r.Header.Get("Content-Type"))
		s.Equal("application/json", r.Header.Get("Accept"))

		body, _ := io.ReadAll(r.Body)
		s.JSONEq(`{"name":"Jane Doe","email":"jane@x.com","phone":"09171234567","message":"test"}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":1}}`))
	})

	resp, err := s.Client.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/api/inquiries",
		JSON: map[string]string{
			"name":    "Jane Doe",
			"email":   "jane@x.com",
			"phone":   "09171234567",
			"message": "test",
		},
	})

	s.Require().NoError(err)
	s.Equal(http.StatusCreated, resp.Status)
	s.True(resp.OK())
	s.JSONEq(`{"success":true,"data":{"id":1}}`, string(resp.Body))
}

func (s *ClientTestSuite) TestDoPassesNon2xxThrough() {
	s.Mux.HandleFunc("GET /api/inquiries/9", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not found"}`))
	})

	resp, err := s.Client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/inquiries/9"})
	s.Require().NoError(err)
	s.Equal(http.StatusNotFound, resp.Status)
	s.False(resp.OK())
}

func (s *ClientTestSuite) TestDoConnectionError() {
	client := NewClient("http://127.0.0.1:1", time.Second)

	_, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/surveys"})
	s.Require().Error(err)

	var backendErr *errs.BackendError
	s.Require().True(errors.As(err, &backendErr))
	s.True(backendErr.IsConnection())
	s.Equal("http://127.0.0.1:1/api/surveys", backendErr.URL)
}

func (s *ClientTestSuite) TestDoTimeout() {
	s.Mux.HandleFunc("GET /api/juantap-surveys", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	})

	_, err := s.Client.Do(context.Background(), Request{
		Method:  http.MethodGet,
		Path:    "/api/juantap-surveys",
		Timeout: 50 * time.Millisecond,
	})

	s.Require().Error(err)
	s.True(errs.IsConnectionError(err))
}

func (s *ClientTestSuite) TestListTicketsWalksPages() {
	var calls atomic.Int32
	s.Mux.HandleFunc("GET /api/support-tickets", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.URL.Query().Get("page") {
		case "":
			_, _ = w.Write([]byte(`{"data":{"current_page":1,"last_page":2,"data":[{"id":1,"domain":"bar.com"}]}}`))
		case "2":
			_, _ = w.Write([]byte(`{"data":{"current_page":2,"last_page":2,"data":[{"id":2,"domain":"fooizakaya.com"}]}}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	})

	tickets, err := s.Client.ListTickets(context.Background())
	s.Require().NoError(err)
	s.Len(tickets, 2)
	s.Equal(int64(1), tickets[0].Id)
	s.Equal("fooizakaya.com", tickets[1].Domain)
	s.Equal(int32(2), calls.Load())
}

func (s *ClientTestSuite) TestListInquiriesStatusError() {
	s.Mux.HandleFunc("GET /api/inquiries", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Server Error"}`))
	})

	_, err := s.Client.ListInquiries(context.Background())

	var statusErr *StatusError
	s.Require().True(errors.As(err, &statusErr))
	s.Equal(http.StatusInternalServerError, statusErr.Status)
}

func (s *ClientTestSuite) TestFindSurvey() {
	s.Mux.HandleFunc("GET /api/surveys", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"surveys":[{"id":4,"survey_id":"SRV-0004","company_name":"Acme"},{"id":5,"survey_id":"SRV-0005"}]}`))
	})

	survey, err := s.Client.FindSurvey(context.Background(), "4")
	s.Require().NoError(err)
	s.Equal("Acme", survey.CompanyName)

	survey, err = s.Client.FindSurvey(context.Background(), "SRV-0005")
	s.Require().NoError(err)
	s.Equal(int64(5), survey.Id)

	_, err = s.Client.FindSurvey(context.Background(), "99")
	s.ErrorIs(err, ErrNotFound)
}

func (s *ClientTestSuite) TestGetJuanTapSurvey() {
	s.Mux.HandleFunc("GET /api/juantap-surveys/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "3" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":3,"username":"jdoe","social_media":"[{\"platform\":\"facebook\",\"url\":\"https://fb.com/jdoe\"}]"}}`))
	})

	survey, err := s.Client.GetJuanTapSurvey(context.Background(), "3")
	s.Require().NoError(err)
	s.Equal("jdoe", survey.Username)
	s.Require().Len(survey.SocialMedia, 1)
	s.Equal("facebook", survey.SocialMedia[0].Platform)

	_, err = s.Client.GetJuanTapSurvey(context.Background(), "4")
	s.ErrorIs(err, ErrNotFound)
}

func (s *ClientTestSuite) TestUpdateStatus() {
	s.Mux.HandleFunc("PUT /api/support-tickets/{id}", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&body))
		s.Equal("resolved", body["status"])
		s.Equal("12", r.PathValue("id"))
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	s.Mux.HandleFunc("PATCH /api/inquiries/{id}/updatestatus", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"The selected status is invalid."}`))
	})

	s.NoError(s.Client.UpdateTicketStatus(context.Background(), "12", "resolved"))

	err := s.Client.UpdateInquiryStatus(context.Background(), "3", "bogus")
	var statusErr *StatusError
	s.Require().True(errors.As(err, &statusErr))
	s.Equal(http.StatusUnprocessableEntity, statusErr.Status)
}

func (s *ClientTestSuite) TestPing() {
	s.Mux.HandleFunc("GET /api/support-tickets", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	s.Error(s.Client.Ping(context.Background()))
}
