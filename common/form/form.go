package form

import (
	"encoding/json"
	"github.com/go-playground/validator/v10"
	"infinitech-web/model"
	"regexp"
	"strings"
)

const (
	MsgInvalidEmail       = "Please enter a valid email address"
	MsgPhoneLetters       = "Phone number cannot contain letters"
	MsgInvalidImageType   = "Please upload a valid image file (JPEG, PNG, GIF, or WebP)"
	MsgImageTooLarge      = "Image size must be less than 5MB"
	MsgSocialIncomplete   = "Please select a platform and enter a profile URL before adding"
	MsgSocialEntryInvalid = "Each social media entry must have platform and url"
	MsgSocialFormat       = "Invalid social media format"
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	letterPattern = regexp.MustCompile(`[a-zA-Z]`)
)

// NewValidator returns a validator with the form tags registered:
// loose_email (the permissive address check used by the public forms) and
// no_letters (phone numbers).
func NewValidator() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
		return ValidateEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("no_letters", func(fl validator.FieldLevel) bool {
		return !HasLetters(fl.Field().String())
	})

	return v
}

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// SanitizePhone drops every ASCII letter from a phone number.
func SanitizePhone(value string) string {
	return letterPattern.ReplaceAllString(value, "")
}

func HasLetters(value string) bool {
	return letterPattern.MatchString(value)
}

// ParseRecipients splits a comma separated address list, trimming entries
// and dropping empty ones.
func ParseRecipients(to string) []string {
	parts := strings.Split(to, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ValidateSocialMediaJSON checks a submitted social_media field. It returns
// the parsed entries, or the message to report under social_media. Valid JSON
// that is not an array is accepted and yields no entries.
func ValidateSocialMediaJSON(raw string) (model.SocialMediaList, string) {
	if raw == "" {
		return nil, ""
	}

	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, MsgSocialFormat
	}

	entries, ok := decoded.([]any)
	if !ok {
		return nil, ""
	}

	list := make(model.SocialMediaList, 0, len(entries))
	for _, entry := range entries {
		obj, _ := entry.(map[string]any)
		platform, _ := obj["platform"].(string)
		url, _ := obj["url"].(string)
		if platform == "" || url == "" {
			return nil, MsgSocialEntryInvalid
		}
		list = append(list, model.SocialMedia{Platform: platform, Url: url})
	}

	return list, ""
}

// FriendlyError rewrites a raw submission failure into copy fit for the
// public JuanTap form.
func FriendlyError(msg string) string {
	switch {
	case strings.Contains(msg, "504") || strings.Contains(msg, "Gateway Timeout"):
		return "Server timeout. The image may be too large or the server is busy. Please try with a smaller image or try again later."
	case strings.Contains(msg, "502") || strings.Contains(msg, "Bad Gateway"):
		return "Server connection error. Please try again in a moment."
	case strings.Contains(msg, "500"):
		return "Server error. Please contact support if this persists."
	case strings.Contains(msg, "NetworkError") || strings.Contains(msg, "Failed to fetch"):
		return "Network connection error. Please check your internet connection."
	default:
		return "An unexpected error occurred. Please try again."
	}
}
