package model

type SupportTicket struct {
	Id           int64  `json:"id"`
	TicketNumber string `json:"ticket_number"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Category     string `json:"category"`
	Subject      string `json:"subject"`
	Message      string `json:"message"`
	Domain       string `json:"domain"`
	CurrentPage  string `json:"current_page"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

type CreateSupportTicketRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Subject     string `json:"subject" validate:"required"`
	Message     string `json:"message" validate:"required"`
	Domain      string `json:"domain"`
	CurrentPage string `json:"currentPage"`
}

// CreateSupportTicketResponse carries the backend-assigned ticket number,
// or its numeric id when no number was assigned.
type CreateSupportTicketResponse struct {
	Message  string `json:"message"`
	TicketId any    `json:"ticket_id"`
}

type TicketReplyRequest struct {
	TicketId     int64  `json:"ticketId"`
	TicketNumber string `json:"ticket_number"`
	Email        string `json:"email"`
	Message      string `json:"message"`
	Subject      string `json:"subject"`
	Status       string `json:"status"`
}

type TicketStats struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
	Closed     int `json:"closed"`
	Vip        int `json:"vip"`
}

type TicketEventMessage struct {
	TicketNumber string `json:"ticket_number,omitempty"`
	TicketId     int64  `json:"ticket_id,omitempty"`
	Category     string `json:"category,omitempty"`
	Domain       string `json:"domain,omitempty"`
	Status       string `json:"status,omitempty"`
}

// SupportTicketSubmission is the body forwarded to the backend.
type SupportTicketSubmission struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Category    string `json:"category"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
	Domain      string `json:"domain,omitempty"`
	CurrentPage string `json:"current_page,omitempty"`
}

func (r CreateSupportTicketRequest) Submission() SupportTicketSubmission {
	return SupportTicketSubmission{
		Name:        r.Name,
		Email:       r.Email,
		Category:    r.Category,
		Subject:     r.Subject,
		Message:     r.Message,
		Domain:      r.Domain,
		CurrentPage: r.CurrentPage,
	}
}
