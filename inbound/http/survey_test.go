package http

import (
	"encoding/json"
	"github.com/go-playground/validator/v10"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"infinitech-web/common/constant"
	"infinitech-web/common/contract/mocks"
	"infinitech-web/common/form"
	"infinitech-web/model"
	"infinitech-web/outbound/backend"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type SurveyHttpTestSuite struct {
	suite.Suite

	Backend   *fakeBackend
	Publisher *mocks.MockPublisher
	Validate  *validator.Validate
}

func (s *SurveyHttpTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())

	s.Backend = newFakeBackend()
	s.Publisher = mocks.NewMockPublisher(ctrl)
	s.Validate = form.NewValidator()

	slog.SetLogLoggerLevel(slog.LevelDebug)
}

func (s *SurveyHttpTestSuite) TearDownTest() {
	s.Backend.Close()
}

func TestSurveyHttpTestSuite(t *testing.T) {
	suite.Run(t, new(SurveyHttpTestSuite))
}

func (s *SurveyHttpTestSuite) serve(client *backend.Client, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	RegisterSurveyHttp(mux, Guards{}, client, s.Publisher, s.Validate)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func (s *SurveyHttpTestSuite) TestCreateForwardsDefaultedFields() {
	s.Backend.Reset(respondJSON(http.StatusCreated, `{"success":true,"data":{"id":3}}`))
	s.Publisher.EXPECT().Publish(gomock.Any(), constant.SubjectSurveyCreated, gomock.Any()).
		DoAndReturn(func(_ any, _ string, payload []byte, _ ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
			s.JSONEq(`{"company_name":"Acme","email":"ceo@acme.test"}`, string(payload))
			return &jetstream.PubAck{}, nil
		})

	body := `{"client_name":"Maria","email":"ceo@acme.test","company_name":"Acme","industries":["Retail"],"unknown_field":"dropped","problem_areas":null}`
	req := httptest.NewRequest(http.MethodPost, "/api/surveys", strings.NewReader(body))
	w := s.serve(s.Backend.Client(), req)

	s.Equal(http.StatusCreated, w.Code)
	s.Equal(`{"success":true,"data":{"id":3}}`, w.Body.String())

	requests := s.Backend.Requests()
	s.Require().Len(requests, 1)

	var sent map[string]any
	s.Require().NoError(json.Unmarshal([]byte(requests[0].Body), &sent))
	s.Len(sent, 27)
	s.NotContains(sent, "unknown_field")
	s.Equal("Maria", sent["client_name"])
	s.Equal("", sent["phone"])
	s.Equal("", sent["solution_details"])
	s.Equal([]any{"Retail"}, sent["industries"])
	s.Equal([]any{}, sent["problem_areas"])
	s.Equal([]any{}, sent["current_tools"])
}

func (s *SurveyHttpTestSuite) TestCreateFieldErrors() {
	tests := []struct {
		name         string
		reqBody      string
		expectedBody string
	}{
		{
			name:         "invalid email",
			reqBody:      `{"client_name":"Maria","email":"not-an-email"}`,
			expectedBody: `{"success":false,"errors":{"email":["Please enter a valid email address"]}}`,
		},
		{
			name:         "letters in phone",
			reqBody:      `{"client_name":"Maria","email":"ceo@acme.test","phone":"09abc17"}`,
			expectedBody: `{"success":false,"errors":{"phone":["Phone number cannot contain letters"]}}`,
		},
		{
			name:         "both fields",
			reqBody:      `{"email":"maria@acme","phone":"0917-ABC"}`,
			expectedBody: `{"success":false,"errors":{"email":["Please enter a valid email address"],"phone":["Phone number cannot contain letters"]}}`,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.Backend.Reset(respondJSON(http.StatusCreated, `{"success":true}`))

			req := httptest.NewRequest(http.MethodPost, "/api/surveys", strings.NewReader(tc.reqBody))
			w := s.serve(s.Backend.Client(), req)

			s.Equal(http.StatusUnprocessableEntity, w.Code)
			s.JSONEq(tc.expectedBody, w.Body.String())
			s.Empty(s.Backend.Requests())
		})
	}
}

func (s *SurveyHttpTestSuite) TestCreateFailures() {
	tests := []struct {
		name           string
		reqBody        string
		backend        http.HandlerFunc
		unreachable    bool
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "invalid json",
			reqBody:        `{oops`,
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "backend rejection is relayed without event",
			reqBody:        `{"company_name":"Acme"}`,
			backend:        respondJSON(http.StatusUnprocessableEntity, `{"message":"The email field must be a valid email address."}`),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"message":"The email field must be a valid email address."}`,
		},
		{
			name:    "backend answers html",
			reqBody: `{}`,
			backend: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("<!DOCTYPE html>"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"success":false,"message":"Failed to submit survey","error":"backend response is not valid JSON"}`,
		},
		{
			name:           "backend unreachable",
			reqBody:        `{}`,
			unreachable:    true,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.Backend.Reset(tc.backend)

			client := s.Backend.Client()
			if tc.unreachable {
				client = backend.NewClient(unreachableURL, time.Second)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/surveys", strings.NewReader(tc.reqBody))
			w := s.serve(client, req)

			s.Equal(tc.expectedStatus, w.Code)
			if tc.expectedBody != "" {
				s.Equal(tc.expectedBody, strings.TrimSpace(w.Body.String()))
				return
			}

			var resp model.ResultResponse
			s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
			s.False(resp.Success)
			s.Equal("Failed to submit survey", resp.Message)
			s.NotEmpty(resp.Error)
		})
	}
}

func (s *SurveyHttpTestSuite) TestList() {
	tests := []struct {
		name           string
		target         string
		backend        http.HandlerFunc
		unreachable    bool
		expectedStatus int
		expectedBody   string
		expectedPage   string
	}{
		{
			name:           "default page",
			target:         "/api/surveys",
			backend:        respondJSON(http.StatusOK, `{"data":{"data":[],"last_page":1}}`),
			expectedStatus: http.StatusOK,
			expectedBody:   `{"data":{"data":[],"last_page":1}}`,
			expectedPage:   "1",
		},
		{
			name:           "explicit page",
			target:         "/api/surveys?page=4",
			backend:        respondJSON(http.StatusOK, `[]`),
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
			expectedPage:   "4",
		},
		{
			name:           "backend status is kept",
			target:         "/api/surveys",
			backend:        respondJSON(http.StatusServiceUnavailable, `{"message":"maintenance"}`),
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"message":"maintenance"}`,
			expectedPage:   "1",
		},
		{
			name:           "backend unreachable",
			target:         "/api/surveys",
			unreachable:    true,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.Backend.Reset(tc.backend)

			client := s.Backend.Client()
			if tc.unreachable {
				client = backend.NewClient(unreachableURL, time.Second)
			}

			w := s.serve(client, httptest.NewRequest(http.MethodGet, tc.target, nil))

			s.Equal(tc.expectedStatus, w.Code)
			if tc.unreachable {
				var resp model.ResultResponse
				s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
				s.Equal("Failed to fetch surveys", resp.Message)
				return
			}

			s.Equal(tc.expectedBody, w.Body.String())
			requests := s.Backend.Requests()
			s.Require().Len(requests, 1)
			s.Equal(tc.expectedPage, requests[0].Query.Get("page"))
		})
	}
}
