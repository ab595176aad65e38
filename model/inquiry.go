package model

type Inquiry struct {
	Id        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

type CreateInquiryRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,loose_email"`
	Phone   string `json:"phone" validate:"required,no_letters"`
	Message string `json:"message" validate:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type InquiryReplyRequest struct {
	InquiryId int64  `json:"inquiryId"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Message   string `json:"message"`
	Status    string `json:"status"`
}

type InquiryStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Replied  int `json:"replied"`
	Resolved int `json:"resolved"`
}

type InquiryEventMessage struct {
	Id     int64  `json:"id,omitempty"`
	Email  string `json:"email"`
	Status string `json:"status,omitempty"`
}
