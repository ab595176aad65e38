package constant

const (
	InquiryStatusPending  = "pending"
	InquiryStatusReplied  = "replied"
	InquiryStatusResolved = "resolved"
)

var InquiryStatuses = []string{
	InquiryStatusPending,
	InquiryStatusReplied,
	InquiryStatusResolved,
}
