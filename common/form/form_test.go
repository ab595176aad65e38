package form

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email    string
		expected bool
	}{
		{"a@b.co", true},
		{"jane.doe@infinitech.com.ph", true},
		{"not-an-email", false},
		{"a@b", false},
		{"a b@c.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateEmail(tt.email))
		})
	}
}

func TestSanitizePhone(t *testing.T) {
	inputs := []string{"0917abc1234567", "+63 (917) 123-4567", "call me", "ÑandúZ09"}

	for _, in := range inputs {
		out := SanitizePhone(in)
		assert.False(t, HasLetters(out), in)
	}

	assert.Equal(t, "09171234567", SanitizePhone("0917abc1234567"))
	assert.Equal(t, "+63 (917) 123-4567", SanitizePhone("+63 (917) 123-4567"))
	assert.Equal(t, " ", SanitizePhone("call me"))
}

func TestParseRecipients(t *testing.T) {
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, ParseRecipients(" a@x.com, ,b@x.com ,"))
	assert.Empty(t, ParseRecipients(" , "))
	assert.Empty(t, ParseRecipients(""))
}

func TestValidateSocialMediaJSON(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		expectedLen int
		expectedMsg string
	}{
		{name: "empty", raw: ""},
		{name: "valid", raw: `[{"platform":"Facebook","url":"fb.com/jane"}]`, expectedLen: 1},
		{name: "empty array", raw: `[]`},
		{name: "missing url", raw: `[{"platform":"Facebook"}]`, expectedMsg: MsgSocialEntryInvalid},
		{name: "entry not object", raw: `["Facebook"]`, expectedMsg: MsgSocialEntryInvalid},
		{name: "not json", raw: `facebook: jane`, expectedMsg: MsgSocialFormat},
		{name: "object", raw: `{"platform":"Facebook"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, msg := ValidateSocialMediaJSON(tt.raw)
			assert.Equal(t, tt.expectedMsg, msg)
			assert.Len(t, list, tt.expectedLen)
		})
	}
}

func TestFriendlyError(t *testing.T) {
	tests := []struct {
		msg      string
		expected string
	}{
		{"Server error: 504 Gateway Timeout", "Server timeout. The image may be too large or the server is busy. Please try with a smaller image or try again later."},
		{"Bad Gateway", "Server connection error. Please try again in a moment."},
		{"Server error: 500 Internal Server Error", "Server error. Please contact support if this persists."},
		{"Failed to fetch: dial tcp: connection refused", "Network connection error. Please check your internet connection."},
		{"NetworkError when attempting to fetch resource.", "Network connection error. Please check your internet connection."},
		{"something else", "An unexpected error occurred. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.expected, FriendlyError(tt.msg))
		})
	}
}

func TestNewValidator(t *testing.T) {
	v := NewValidator()

	type payload struct {
		Email string `validate:"omitempty,loose_email"`
		Phone string `validate:"omitempty,no_letters"`
	}

	assert.NoError(t, v.Struct(payload{}))
	assert.NoError(t, v.Struct(payload{Email: "a@b.co", Phone: "0917 123 4567"}))
	assert.Error(t, v.Struct(payload{Email: "nope"}))
	assert.Error(t, v.Struct(payload{Phone: "0917abc"}))
}
