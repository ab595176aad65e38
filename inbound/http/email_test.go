package http

import (
	"encoding/base64"
	"errors"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"infinitech-web/common/constant"
	"infinitech-web/common/contract/mocks"
	"infinitech-web/common/form"
	"infinitech-web/outbound/email"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type EmailHttpTestSuite struct {
	suite.Suite

	Mailer   *mocks.MockMailer
	Composer *email.Composer
	Validate *validator.Validate
}

func (s *EmailHttpTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())

	s.Mailer = mocks.NewMockMailer(ctrl)
	s.Composer = email.NewComposer("sales@infinitech.test", "")
	s.Composer.TimeNow = func() time.Time { return time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC) }
	s.Validate = form.NewValidator()

	slog.SetLogLoggerLevel(slog.LevelDebug)
}

func TestEmailHttpTestSuite(t *testing.T) {
	suite.Run(t, new(EmailHttpTestSuite))
}

func (s *EmailHttpTestSuite) post(path, body string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	RegisterEmailHttp(mux, Guards{}, s.Mailer, s.Composer, s.Validate)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
	return w
}

func (s *EmailHttpTestSuite) TestQuotation() {
	pdf := base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 quotation"))

	tests := []struct {
		name           string
		reqBody        string
		setupMock      func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "sent",
			reqBody: `{"base64":"data:application/pdf;filename=generated.pdf;base64,` + pdf + `"}`,
			setupMock: func() {
				s.Mailer.EXPECT().Send(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, msg email.Message) (string, error) {
						s.Equal([]string{"sales@infinitech.test"}, msg.To)
						s.Equal(constant.SubjectQuotationRequest, msg.Subject)
						s.Require().Len(msg.Attachments, 1)
						s.Equal(constant.QuotationFilename, msg.Attachments[0].Filename)
						s.Equal("%PDF-1.4 quotation", string(msg.Attachments[0].Content))
						return "<q1@infinitech.test>", nil
					})
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"code":200,"message":"Email Sent Successfully"}`,
		},
		{
			name:           "invalid json",
			reqBody:        `{`,
			setupMock:      func() {},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"code":500,"message":"Something Went Wrong"}`,
		},
		{
			name:           "missing payload",
			reqBody:        `{}`,
			setupMock:      func() {},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"code":500,"message":"Something Went Wrong"}`,
		},
		{
			name:           "not a data url",
			reqBody:        `{"base64":"plain text"}`,
			setupMock:      func() {},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"code":500,"message":"Something Went Wrong"}`,
		},
		{
			name:    "smtp failure",
			reqBody: `{"base64":"data:application/pdf;base64,` + pdf + `"}`,
			setupMock: func() {
				s.Mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return("", errors.New("535 authentication failed"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"code":500,"message":"Something Went Wrong"}`,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			tc.setupMock()

			w := s.post("/api/quotation", tc.reqBody)

			s.Equal(tc.expectedStatus, w.Code)
			s.JSONEq(tc.expectedBody, w.Body.String())
		})
	}
}

func (s *EmailHttpTestSuite) TestOrderSummary() {
	const validBody = `{"to":"buyer@acme.test","cart":[{"planName":"Pro","service":"website","price":12500,"billingPeriod":"monthly"}],"total":12500,"dateStr":"June 1, 2024","timeStr":"8:00 AM","receiptNo":"R-1001"}`

	tests := []struct {
		name           string
		reqBody        string
		setupMock      func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "sent",
			reqBody: validBody,
			setupMock: func() {
				s.Mailer.EXPECT().Send(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, msg email.Message) (string, error) {
						s.Equal([]string{"buyer@acme.test"}, msg.To)
						s.Contains(msg.HTML, "R-1001")
						s.Contains(msg.HTML, "₱12,500.00")
						s.Contains(msg.HTML, "Website")
						return "<o1@infinitech.test>", nil
					})
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true,"message":"Email sent successfully","messageId":"<o1@infinitech.test>"}`,
		},
		{
			name:           "invalid json",
			reqBody:        `[`,
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid request"}`,
		},
		{
			name:           "validation failure",
			reqBody:        `{"to":"not-an-email","cart":[]}`,
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Validation failed","data":{"To":"email","Cart":"min","ReceiptNo":"required"}}`,
		},
		{
			name:    "mailer not configured",
			reqBody: validBody,
			setupMock: func() {
				s.Mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return("", email.ErrNotConfigured)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Email service not configured properly"}`,
		},
		{
			name:    "smtp failure",
			reqBody: validBody,
			setupMock: func() {
				s.Mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return("", errors.New("dial tcp: i/o timeout"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Failed to send email","details":"dial tcp: i/o timeout"}`,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			tc.setupMock()

			w := s.post("/api/summary-send-email", tc.reqBody)

			s.Equal(tc.expectedStatus, w.Code)
			s.JSONEq(tc.expectedBody, w.Body.String())
		})
	}
}

func (s *EmailHttpTestSuite) TestChallenge() {
	tests := []struct {
		name           string
		reqBody        string
		setupMock      func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "sent",
			reqBody: `{"to":"owner@acme.test","contactPerson":"Ana","companyName":"Acme","planType":"juan-tap","selectedPlan":"premium","surveyData":{"survey_id":"SV-1","system_performance_issues":"[\"Slow systems\"]"}}`,
			setupMock: func() {
				s.Mailer.EXPECT().Send(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, msg email.Message) (string, error) {
						s.Equal([]string{"owner@acme.test"}, msg.To)
						s.Equal(constant.SenderInfinitech, msg.FromName)
						s.Contains(msg.Subject, "Acme")
						s.Contains(msg.Text, "Slow systems")
						s.Contains(msg.HTML, constant.JuanTapSurveyURL)
						return "<c1@infinitech.test>", nil
					})
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true,"message":"Challenge email sent successfully"}`,
		},
		{
			name:           "invalid json",
			reqBody:        `{"to":`,
			setupMock:      func() {},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "missing recipient",
			reqBody:        `{"companyName":"Acme"}`,
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Validation failed","data":{"To":"required"}}`,
		},
		{
			name:    "blank recipient",
			reqBody: `{"to":" ","companyName":"Acme"}`,
			setupMock: func() {
				s.Mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return("", email.ErrNoRecipients)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"success":false,"error":"No valid recipient emails provided"}`,
		},
		{
			name:    "smtp failure",
			reqBody: `{"to":"owner@acme.test"}`,
			setupMock: func() {
				s.Mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return("", errors.New("connection reset"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"success":false,"error":"Failed to send email","details":"connection reset"}`,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			tc.setupMock()

			w := s.post("/api/send-challenge-email", tc.reqBody)

			s.Equal(tc.expectedStatus, w.Code)
			if tc.expectedBody != "" {
				s.JSONEq(tc.expectedBody, w.Body.String())
			}
		})
	}
}

func (s *EmailHttpTestSuite) TestJuanTap() {
	tests := []struct {
		name           string
		reqBody        string
		setupMock      func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "sent",
			reqBody: `{"to":"juan@acme.test","subject":"Your JuanTap profile","message":"Your card is ready","juantap_survey_id":"JT-7","displayName":"Juan","surveyData":{"social_media":"[{\"platform\":\"Facebook\",\"url\":\"fb.com/juan\"}]"}}`,
			setupMock: func() {
				s.Mailer.EXPECT().Send(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, msg email.Message) (string, error) {
						s.Equal([]string{"juan@acme.test"}, msg.To)
						s.Equal("Your JuanTap profile", msg.Subject)
						s.Equal("Your card is ready", msg.Text)
						s.Contains(msg.HTML, "https://fb.com/juan")
						return "<j1@infinitech.test>", nil
					})
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true,"message":"Email sent successfully"}`,
		},
		{
			name:           "missing recipient",
			reqBody:        `{"subject":"x"}`,
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Validation failed","data":{"To":"required"}}`,
		},
		{
			name:    "blank recipient",
			reqBody: `{"to":"  ","subject":"Your JuanTap profile"}`,
			setupMock: func() {
				s.Mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return("", email.ErrNoRecipients)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"success":false,"error":"No valid recipient emails provided"}`,
		},
		{
			name:    "smtp failure",
			reqBody: `{"to":"juan@acme.test"}`,
			setupMock: func() {
				s.Mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return("", errors.New("550 mailbox unavailable"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"success":false,"error":"Failed to send email","details":"550 mailbox unavailable"}`,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			tc.setupMock()

			w := s.post("/api/send-juantap-email", tc.reqBody)

			s.Equal(tc.expectedStatus, w.Code)
			s.JSONEq(tc.expectedBody, w.Body.String())
		})
	}
}

func (s *EmailHttpTestSuite) TestSurveyFollowUp() {
	tests := []struct {
		name           string
		reqBody        string
		setupMock      func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "sent to every recipient",
			reqBody: `{"to":"a@acme.test, b@acme.test ,","message":"Thanks for the survey","surveyId":12,"companyName":"Acme"}`,
			setupMock: func() {
				s.Mailer.EXPECT().Configured().Return(true)
				s.Mailer.EXPECT().Send(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, msg email.Message) (string, error) {
						s.Equal([]string{"a@acme.test", "b@acme.test"}, msg.To)
						s.Contains(msg.Subject, "12")
						s.Contains(msg.Subject, "Acme")
						return "<s1@infinitech.test>", nil
					})
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true,"message":"Email sent successfully","messageId":"<s1@infinitech.test>"}`,
		},
		{
			name:    "not configured wins over empty recipients",
			reqBody: `{"to":""}`,
			setupMock: func() {
				s.Mailer.EXPECT().Configured().Return(false)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Email service not configured properly"}`,
		},
		{
			name:    "no recipients",
			reqBody: `{"to":" , "}`,
			setupMock: func() {
				s.Mailer.EXPECT().Configured().Return(true)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"No valid recipient emails provided"}`,
		},
		{
			name:    "smtp failure",
			reqBody: `{"to":"a@acme.test"}`,
			setupMock: func() {
				s.Mailer.EXPECT().Configured().Return(true)
				s.Mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return("", errors.New("421 try again later"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Failed to send email","details":"421 try again later"}`,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			tc.setupMock()

			w := s.post("/api/send-survey-email", tc.reqBody)

			s.Equal(tc.expectedStatus, w.Code)
			s.JSONEq(tc.expectedBody, w.Body.String())
		})
	}
}
