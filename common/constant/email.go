package constant

const (
	SubjectInquiryNotification = "Infinitech: New Inquiry"
	SubjectQuotationRequest    = "Infinitech: New Quotation Request"

	SubjectTicketReplyFormat    = "Re: %s [Ticket: %s]"
	SubjectInquiryReplyFormat   = "Re: Your inquiry to Infinitech"
	SubjectChallengeFormat      = "%s - %s - Survey Follow-up"
	SubjectSurveyFollowUpFormat = "Survey Follow-up - #%s | %s"
	SubjectOrderSummaryFormat   = "Infinitech - Order Summary #%s"
)

const (
	SenderSupportTeam = "Infinitech Support Team"
	SenderInfinitech  = "INFINITECH"
	SenderJuanTap     = "JuanTap"
)

const (
	LogoContentID       = "logo"
	LogoFilename        = "logo.png"
	QuotationFilename   = "quotation.pdf"
	DefaultOrganization = "Your Organization"
)
