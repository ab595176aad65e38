package form

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"infinitech-web/common/constant"
	"infinitech-web/model"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"slices"
	"strings"
)

var ErrImageMissing = errors.New("form: profile image has no content")

type ProfileImage struct {
	Filename    string
	ContentType string
	Content     []byte
}

// JuanTapForm holds one digital profile submission and serialises it to the
// multipart body the backend expects.
type JuanTapForm struct {
	Email               string `validate:"omitempty,loose_email"`
	Username            string
	Address             string
	PhoneNumber         string `validate:"omitempty,no_letters"`
	DisplayName         string
	FirstName           string
	LastName            string
	Position            string
	Website             string
	DeliveryAddress     string
	ReceiverPhoneNumber string `validate:"omitempty,no_letters"`
	SocialMedia         model.SocialMediaList
	ProfileImage        *ProfileImage
}

var juanTapFieldErrors = map[string]struct {
	key     string
	message string
}{
	"Email":               {"email", MsgInvalidEmail},
	"PhoneNumber":         {"phone_number", MsgPhoneLetters},
	"ReceiverPhoneNumber": {"receiver_phone_number", MsgPhoneLetters},
}

// SetPhoneNumber stores the sanitised value and returns the error text to
// show when letters were typed, or "".
func (f *JuanTapForm) SetPhoneNumber(value string) string {
	f.PhoneNumber = SanitizePhone(value)
	if f.PhoneNumber != value {
		return MsgPhoneLetters
	}
	return ""
}

func (f *JuanTapForm) SetReceiverPhoneNumber(value string) string {
	f.ReceiverPhoneNumber = SanitizePhone(value)
	if f.ReceiverPhoneNumber != value {
		return MsgPhoneLetters
	}
	return ""
}

// SetProfileImage accepts the image when its type and size are allowed and
// returns the error text otherwise. A rejected image leaves the form unchanged.
func (f *JuanTapForm) SetProfileImage(img ProfileImage) string {
	if msg := CheckProfileImage(img.ContentType, int64(len(img.Content))); msg != "" {
		return msg
	}

	f.ProfileImage = &img
	return ""
}

func (f *JuanTapForm) RemoveProfileImage() {
	f.ProfileImage = nil
}

func (f *JuanTapForm) AddSocial(entry model.SocialMedia) string {
	if entry.Platform == "" || entry.Url == "" {
		return MsgSocialIncomplete
	}

	f.SocialMedia = append(f.SocialMedia, entry)
	return ""
}

func (f *JuanTapForm) RemoveSocial(index int) {
	if index < 0 || index >= len(f.SocialMedia) {
		return
	}
	f.SocialMedia = slices.Delete(f.SocialMedia, index, index+1)
}

// Validate returns field errors keyed by the submitted field name.
func (f *JuanTapForm) Validate(v *validator.Validate) map[string]string {
	errs := map[string]string{}

	err := v.Struct(f)
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fieldErr := range validationErrs {
			if known, ok := juanTapFieldErrors[fieldErr.Field()]; ok {
				errs[known.key] = known.message
			}
		}
	}

	for _, entry := range f.SocialMedia {
		if entry.Platform == "" || entry.Url == "" {
			errs["social_media"] = MsgSocialEntryInvalid
			break
		}
	}

	if f.ProfileImage != nil {
		if msg := CheckProfileImage(f.ProfileImage.ContentType, int64(len(f.ProfileImage.Content))); msg != "" {
			errs["profile_image"] = msg
		}
	}

	return errs
}

// Encode writes the form as multipart/form-data in the field order the
// backend was built against. social_media and profile_image are only
// present when set.
func (f *JuanTapForm) Encode() (string, []byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"email", f.Email},
		{"username", f.Username},
		{"address", f.Address},
		{"phone_number", f.PhoneNumber},
		{"display_name", f.DisplayName},
		{"first_name", f.FirstName},
		{"last_name", f.LastName},
		{"position", f.Position},
		{"website", f.Website},
		{"delivery_address", f.DeliveryAddress},
		{"receiver_phone_number", f.ReceiverPhoneNumber},
	}

	for _, field := range fields {
		if err := w.WriteField(field.name, field.value); err != nil {
			return "", nil, err
		}
	}

	if len(f.SocialMedia) > 0 {
		social, err := json.Marshal(f.SocialMedia)
		if err != nil {
			return "", nil, err
		}
		if err := w.WriteField("social_media", string(social)); err != nil {
			return "", nil, err
		}
	}

	if f.ProfileImage != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="profile_image"; filename="%s"`, escapeQuotes(f.ProfileImage.Filename)))
		header.Set("Content-Type", f.ProfileImage.ContentType)

		part, err := w.CreatePart(header)
		if err != nil {
			return "", nil, err
		}
		if _, err := part.Write(f.ProfileImage.Content); err != nil {
			return "", nil, err
		}
	}

	if err := w.Close(); err != nil {
		return "", nil, err
	}

	return w.FormDataContentType(), buf.Bytes(), nil
}

// JuanTapFormFromRequest reads a multipart submission. Field values are
// taken as sent; the social_media field is checked and its failure message
// returned separately so callers can answer with a field error.
func JuanTapFormFromRequest(r *http.Request, maxMemory int64) (*JuanTapForm, string, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return nil, "", err
	}

	get := r.MultipartForm.Value
	value := func(key string) string {
		if v := get[key]; len(v) > 0 {
			return v[0]
		}
		return ""
	}

	f := &JuanTapForm{
		Email:               value("email"),
		Username:            value("username"),
		Address:             value("address"),
		PhoneNumber:         value("phone_number"),
		DisplayName:         value("display_name"),
		FirstName:           value("first_name"),
		LastName:            value("last_name"),
		Position:            value("position"),
		Website:             value("website"),
		DeliveryAddress:     value("delivery_address"),
		ReceiverPhoneNumber: value("receiver_phone_number"),
	}

	social, socialMsg := ValidateSocialMediaJSON(value("social_media"))
	f.SocialMedia = social

	if files := r.MultipartForm.File["profile_image"]; len(files) > 0 {
		img, err := readProfileImage(files[0])
		if err != nil {
			return nil, "", err
		}
		f.ProfileImage = img
	}

	return f, socialMsg, nil
}

// CheckProfileImage returns the error text for a disallowed image, or "".
func CheckProfileImage(contentType string, size int64) string {
	if !slices.Contains(constant.ProfileImageTypes, strings.ToLower(contentType)) {
		return MsgInvalidImageType
	}
	if size > constant.MaxProfileImageSize {
		return MsgImageTooLarge
	}
	return ""
}

func readProfileImage(fh *multipart.FileHeader) (*ProfileImage, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, constant.MaxProfileImageSize+1))
	if err != nil {
		return nil, err
	}
	if len(content) == 0 {
		return nil, ErrImageMissing
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(content)
	}

	return &ProfileImage{Filename: fh.Filename, ContentType: contentType, Content: content}, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
