package model

import "time"

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SessionResponse struct {
	Subject   string    `json:"subject"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ListView is one page of an admin list together with stats over the full list.
type ListView[T any, S any] struct {
	Data       []T      `json:"data"`
	Page       int      `json:"page"`
	PerPage    int      `json:"per_page"`
	Total      int      `json:"total"`
	TotalPages int      `json:"total_pages"`
	Stats      S        `json:"stats"`
	Facets     []string `json:"industries,omitempty"`
}

type DashboardResponse struct {
	Tickets   TicketStats   `json:"tickets"`
	Inquiries InquiryStats  `json:"inquiries"`
	Surveys   SurveyStats   `json:"surveys"`
	Backend   BackendStatus `json:"backend"`
}

type BackendStatus struct {
	Up        bool      `json:"up"`
	CheckedAt time.Time `json:"checked_at"`
	LatencyMs int64     `json:"latency_ms"`
	Error     string    `json:"error,omitempty"`
}
