package cmd

import (
	"context"
	"errors"
	"fmt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"infinitech-web/common/form"
	"infinitech-web/model"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

func newSubmitJuanTapCmd(ctx context.Context, cfg *viper.Viper) *cobra.Command {
	var (
		f         form.JuanTapForm
		phone     string
		receiver  string
		socials   []string
		imagePath string
		baseURL   string
	)

	cmd := &cobra.Command{
		Use:   "submit:juantap",
		Short: "Submit a JuanTap profile through the public form route",
		RunE: func(cmd *cobra.Command, args []string) error {
			if msg := f.SetPhoneNumber(phone); msg != "" {
				return fieldError("phone_number", msg)
			}
			if msg := f.SetReceiverPhoneNumber(receiver); msg != "" {
				return fieldError("receiver_phone_number", msg)
			}

			for _, entry := range socials {
				platform, url, _ := strings.Cut(entry, "=")
				if msg := f.AddSocial(model.SocialMedia{Platform: platform, Url: url}); msg != "" {
					return fieldError("social_media", msg)
				}
			}

			if imagePath != "" {
				img, err := readProfileImage(imagePath)
				if err != nil {
					return err
				}
				if msg := f.SetProfileImage(img); msg != "" {
					return fieldError("profile_image", msg)
				}
			}

			if baseURL == "" {
				baseURL = fmt.Sprintf("http://localhost:%d", cfg.GetInt("server.port"))
			}

			submitter := form.NewSubmitter(baseURL, cfg.GetDuration("backend.timeout.upload"), newValidator())
			result, err := submitter.Submit(ctx, &f)
			if err != nil {
				var submitErr *form.SubmitError
				if errors.As(err, &submitErr) {
					return errors.New(form.FriendlyError(submitErr.Message))
				}
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.Email, "email", "", "contact email")
	flags.StringVar(&f.Username, "username", "", "profile username")
	flags.StringVar(&f.Address, "address", "", "address")
	flags.StringVar(&phone, "phone", "", "phone number")
	flags.StringVar(&f.DisplayName, "display-name", "", "display name")
	flags.StringVar(&f.FirstName, "first-name", "", "first name")
	flags.StringVar(&f.LastName, "last-name", "", "last name")
	flags.StringVar(&f.Position, "position", "", "position or title")
	flags.StringVar(&f.Website, "website", "", "website")
	flags.StringVar(&f.DeliveryAddress, "delivery-address", "", "card delivery address")
	flags.StringVar(&receiver, "receiver-phone", "", "card receiver phone number")
	flags.StringArrayVar(&socials, "social", nil, "social link as platform=url, repeatable")
	flags.StringVar(&imagePath, "image", "", "profile image file (jpeg, png, gif or webp)")
	flags.StringVar(&baseURL, "url", "", "base url of this service")

	return cmd
}

func fieldError(field, msg string) error {
	return &form.ValidationError{Fields: map[string]string{field: msg}}
}

func readProfileImage(path string) (form.ProfileImage, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return form.ProfileImage{}, fmt.Errorf("read profile image: %w", err)
	}

	return form.ProfileImage{
		Filename:    filepath.Base(path),
		ContentType: http.DetectContentType(content),
		Content:     content,
	}, nil
}
