package model

// Survey is a discovery survey submission as returned by the backend.
type Survey struct {
	Id                     int64      `json:"id"`
	SurveyId               string     `json:"survey_id"`
	ClientName             string     `json:"client_name"`
	CompanyName            string     `json:"company_name"`
	Email                  string     `json:"email"`
	Phone                  string     `json:"phone"`
	Role                   string     `json:"role"`
	Industries             StringList `json:"industries"`
	IndustryOther          string     `json:"industry_other"`
	BusinessGoals          StringList `json:"business_goals"`
	BusinessGoalsOther     string     `json:"business_goals_other"`
	SlowdownIssues         StringList `json:"slowdown_issues"`
	SlowdownIssuesOther    string     `json:"slowdown_issues_other"`
	CustomerJourney        string     `json:"customer_journey"`
	CustomerJourneyDetails string     `json:"customer_journey_details"`
	SopsStatus             string     `json:"sops_status"`
	SopsDetails            string     `json:"sops_details"`
	CurrentTools           StringList `json:"current_tools"`
	CurrentToolsDetails    string     `json:"current_tools_details"`
	MarketingConfidence    string     `json:"marketing_confidence"`
	MarketingDetails       string     `json:"marketing_details"`
	ContentQuality         string     `json:"content_quality"`
	ContentDetails         string     `json:"content_details"`
	ProblemAreas           StringList `json:"problem_areas"`
	ProblemAreasDetails    string     `json:"problem_areas_details"`
	DataAnalytics          string     `json:"data_analytics"`
	DataDetails            string     `json:"data_details"`
	SolutionOpenness       string     `json:"solution_openness"`
	SolutionDetails        string     `json:"solution_details"`
	CreatedAt              string     `json:"created_at"`
}

// SurveySubmission is the exact field set forwarded to the backend. Missing
// strings are sent as "" and missing lists as [].
type SurveySubmission struct {
	ClientName             string     `json:"client_name"`
	Email                  string     `json:"email" validate:"omitempty,loose_email"`
	Phone                  string     `json:"phone" validate:"omitempty,no_letters"`
	CompanyName            string     `json:"company_name"`
	Role                   string     `json:"role"`
	Industries             StringList `json:"industries"`
	IndustryOther          string     `json:"industry_other"`
	BusinessGoals          StringList `json:"business_goals"`
	BusinessGoalsOther     string     `json:"business_goals_other"`
	SlowdownIssues         StringList `json:"slowdown_issues"`
	SlowdownIssuesOther    string     `json:"slowdown_issues_other"`
	CustomerJourney        string     `json:"customer_journey"`
	CustomerJourneyDetails string     `json:"customer_journey_details"`
	SopsStatus             string     `json:"sops_status"`
	SopsDetails            string     `json:"sops_details"`
	CurrentTools           StringList `json:"current_tools"`
	CurrentToolsDetails    string     `json:"current_tools_details"`
	MarketingConfidence    string     `json:"marketing_confidence"`
	MarketingDetails       string     `json:"marketing_details"`
	ContentQuality         string     `json:"content_quality"`
	ContentDetails         string     `json:"content_details"`
	ProblemAreas           StringList `json:"problem_areas"`
	ProblemAreasDetails    string     `json:"problem_areas_details"`
	DataAnalytics          string     `json:"data_analytics"`
	DataDetails            string     `json:"data_details"`
	SolutionOpenness       string     `json:"solution_openness"`
	SolutionDetails        string     `json:"solution_details"`
}

// WithDefaults replaces nil lists with empty ones so they encode as [].
func (s SurveySubmission) WithDefaults() SurveySubmission {
	lists := []*StringList{
		&s.Industries,
		&s.BusinessGoals,
		&s.SlowdownIssues,
		&s.CurrentTools,
		&s.ProblemAreas,
	}
	for _, list := range lists {
		if *list == nil {
			*list = StringList{}
		}
	}

	return s
}

type SurveyStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}

type SurveyEventMessage struct {
	CompanyName string `json:"company_name"`
	Email       string `json:"email"`
}
