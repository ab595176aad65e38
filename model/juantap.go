package model

type JuanTapSurvey struct {
	Id                  int64           `json:"id"`
	JuanTapSurveyId     string          `json:"juantap_survey_id"`
	Email               string          `json:"email"`
	Username            string          `json:"username"`
	Address             string          `json:"address"`
	PhoneNumber         string          `json:"phone_number"`
	DisplayName         string          `json:"display_name"`
	FirstName           string          `json:"first_name"`
	LastName            string          `json:"last_name"`
	Position            string          `json:"position"`
	Website             string          `json:"website"`
	SocialMedia         SocialMediaList `json:"social_media"`
	ProfileImage        string          `json:"profile_image"`
	ProfileImageUrl     string          `json:"profile_image_url"`
	DeliveryAddress     string          `json:"delivery_address"`
	ReceiverPhoneNumber string          `json:"receiver_phone_number"`
	CreatedAt           string          `json:"created_at"`
}

type JuanTapEventMessage struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

type JuanTapStats struct {
	Total int `json:"total"`
}
