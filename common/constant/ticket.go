package constant

const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusResolved   = "resolved"
	TicketStatusClosed     = "closed"
)

// VipDomainMarker flags a ticket for display priority when found in its domain.
const VipDomainMarker = "izakaya"

var TicketCategories = []string{
	"bug_report",
	"feature_request",
	"general_feedback",
	"menu_question",
	"other",
}

// TicketKeywords is the topicality filter for public ticket submissions.
var TicketKeywords = []string{
	"website",
	"page",
	"button",
	"link",
	"feature",
	"menu",
	"error",
	"bug",
	"broken",
	"not working",
	"issue",
	"feedback",
	"improve",
	"suggestion",
}

var TicketStatusColors = map[string]string{
	TicketStatusOpen:       "#10b981",
	TicketStatusInProgress: "#f59e0b",
	TicketStatusResolved:   "#0891b2",
	TicketStatusClosed:     "#6b7280",
}

const TicketStatusDefaultColor = "#0891b2"
