package model

type QuotationRequest struct {
	Base64 string `json:"base64" validate:"required"`
}

// ChallengeSurvey is the survey snapshot the admin sends along with a challenge email.
type ChallengeSurvey struct {
	Id                         int64      `json:"id"`
	SurveyId                   string     `json:"survey_id"`
	CompanyName                string     `json:"company_name"`
	ContactPerson              string     `json:"contact_person"`
	Email                      string     `json:"email"`
	Phone                      string     `json:"phone"`
	Role                       string     `json:"role"`
	Location                   string     `json:"location"`
	SystemPerformanceIssues    StringList `json:"system_performance_issues"`
	ProcessWorkflowIssues      StringList `json:"process_workflow_issues"`
	ReportingDataIssues        StringList `json:"reporting_data_issues"`
	HrPayrollIssues            StringList `json:"hr_payroll_issues"`
	CustomerSalesIssues        StringList `json:"customer_sales_issues"`
	InventorySupplyChainIssues StringList `json:"inventory_supply_chain_issues"`
	DigitalMarketingIssues     StringList `json:"digital_marketing_issues"`
	PainPoints                 string     `json:"pain_points"`
	IdealSystem                string     `json:"ideal_system"`
	AdditionalComments         string     `json:"additional_comments"`
}

type ChallengeEmailRequest struct {
	To            string          `json:"to" validate:"required"`
	ContactPerson string          `json:"contactPerson"`
	CompanyName   string          `json:"companyName"`
	SurveyData    ChallengeSurvey `json:"surveyData"`
	PlanType      string          `json:"planType"`
	SelectedPlan  string          `json:"selectedPlan"`
	Message       string          `json:"message"`
}

type JuanTapEmailRequest struct {
	To              string         `json:"to" validate:"required"`
	Subject         string         `json:"subject"`
	Message         string         `json:"message"`
	JuanTapSurveyId string         `json:"juantap_survey_id"`
	DisplayName     string         `json:"displayName"`
	SurveyData      *JuanTapSurvey `json:"surveyData"`
}

type SurveyEmailRequest struct {
	To            string `json:"to"`
	Subject       string `json:"subject"`
	Message       string `json:"message"`
	SurveyId      any    `json:"surveyId"`
	CompanyName   string `json:"companyName"`
	ContactPerson string `json:"contactPerson"`
}

type CartItem struct {
	PlanName      string  `json:"planName"`
	Service       string  `json:"service"`
	ServiceTitle  string  `json:"serviceTitle"`
	Price         float64 `json:"price"`
	BillingPeriod string  `json:"billingPeriod"`
}

type OrderSummaryRequest struct {
	To        string     `json:"to" validate:"required,email"`
	Subject   string     `json:"subject"`
	Cart      []CartItem `json:"cart" validate:"required,min=1"`
	Total     float64    `json:"total"`
	DateStr   string     `json:"dateStr"`
	TimeStr   string     `json:"timeStr"`
	ReceiptNo string     `json:"receiptNo" validate:"required"`
}
