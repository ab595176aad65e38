package form

import (
	"context"
	"errors"
	"github.com/stretchr/testify/suite"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type SubmitterTestSuite struct {
	suite.Suite

	Server  *httptest.Server
	Handler http.HandlerFunc
}

func (s *SubmitterTestSuite) SetupTest() {
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Handler(w, r)
	}))
}

func (s *SubmitterTestSuite) TearDownTest() {
	s.Server.Close()
}

func TestSubmitterTestSuite(t *testing.T) {
	suite.Run(t, new(SubmitterTestSuite))
}

func (s *SubmitterTestSuite) submitter() *Submitter {
	return NewSubmitter(s.Server.URL+"/", 5*time.Second, NewValidator())
}

func (s *SubmitterTestSuite) TestSubmitSuccess() {
	s.Handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPost, r.Method)
		s.Equal("/api/juantap-surveys", r.URL.Path)
		s.True(strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))
		s.Require().NoError(r.ParseMultipartForm(1 << 20))
		s.Equal("jane@x.com", r.FormValue("email"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"message":"Survey submitted successfully","data":{"id":7}}`))
	}

	result, err := s.submitter().Submit(context.Background(), &JuanTapForm{Email: "jane@x.com"})
	s.Require().NoError(err)
	s.True(result.Success)
	s.Equal("Survey submitted successfully", result.Message)
}

func (s *SubmitterTestSuite) TestSubmitValidationError() {
	s.Handler = func(w http.ResponseWriter, r *http.Request) {
		s.Fail("request must not be sent")
	}

	_, err := s.submitter().Submit(context.Background(), &JuanTapForm{Email: "nope", PhoneNumber: "abc"})

	var validationErr *ValidationError
	s.Require().True(errors.As(err, &validationErr))
	s.Equal(MsgInvalidEmail, validationErr.Fields["email"])
	s.Equal(MsgPhoneLetters, validationErr.Fields["phone_number"])
	s.Equal("validation failed: email: "+MsgInvalidEmail+"; phone_number: "+MsgPhoneLetters, err.Error())
}

func (s *SubmitterTestSuite) TestSubmitNonJSONResponse() {
	s.Handler = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusGatewayTimeout)
		_, _ = w.Write([]byte("<html>timeout</html>"))
	}

	_, err := s.submitter().Submit(context.Background(), &JuanTapForm{Email: "jane@x.com"})

	var submitErr *SubmitError
	s.Require().True(errors.As(err, &submitErr))
	s.Equal("Server error: 504 Gateway Timeout", submitErr.Message)
	s.Contains(FriendlyError(submitErr.Message), "Server timeout")
}

func (s *SubmitterTestSuite) TestSubmitRefused() {
	s.Handler = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"success":false,"errors":{"email":["The email has already been taken."]}}`))
	}

	result, err := s.submitter().Submit(context.Background(), &JuanTapForm{Email: "jane@x.com"})

	var submitErr *SubmitError
	s.Require().True(errors.As(err, &submitErr))
	s.Equal(MsgSubmitFailed, submitErr.Message)
	s.Require().NotNil(result)
	s.Equal([]string{"The email has already been taken."}, result.Errors["email"])
}

func (s *SubmitterTestSuite) TestSubmitConnectionError() {
	sub := NewSubmitter("http://127.0.0.1:1", time.Second, NewValidator())

	_, err := sub.Submit(context.Background(), &JuanTapForm{Email: "jane@x.com"})

	var submitErr *SubmitError
	s.Require().True(errors.As(err, &submitErr))
	s.True(strings.HasPrefix(submitErr.Message, "Failed to fetch: "))
}
