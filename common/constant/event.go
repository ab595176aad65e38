package constant

const (
	EventStreamName = "infinitech_web_event_stream"
)

const (
	AllWildcard = "events.>"

	SubjectInquiryCreated = "events.inquiry.created"
	SubjectInquiryReplied = "events.inquiry.replied"
	SubjectTicketCreated  = "events.ticket.created"
	SubjectTicketReplied  = "events.ticket.replied"
	SubjectSurveyCreated  = "events.survey.created"
	SubjectJuanTapCreated = "events.juantap.created"
)
