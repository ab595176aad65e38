package report

import (
	"fmt"
	"infinitech-web/model"
	"regexp"
	"time"
)

const (
	surveyDateLayout  = "1/2/2006, 3:04:05 PM"
	juanTapDateLayout = "1/2/2006"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// SurveyFilename is survey-{survey_id}-{company}.pdf with whitespace runs in
// the company name replaced by underscores.
func SurveyFilename(s model.Survey) string {
	name := whitespaceRun.ReplaceAllString(s.CompanyName, "_")
	if name == "" {
		name = "report"
	}
	return fmt.Sprintf("survey-%s-%s.pdf", s.SurveyId, name)
}

func JuanTapFilename(s model.JuanTapSurvey) string {
	name := s.Username
	if name == "" {
		name = "profile"
	}
	return fmt.Sprintf("juantap-survey-%s-%s.pdf", s.JuanTapSurveyId, name)
}

func createdAt(value string) time.Time {
	t := model.ParseTimestamp(value)
	if t.IsZero() {
		return time.Unix(0, 0).UTC()
	}
	return t
}

func formatDate(value, layout string, loc *time.Location) string {
	t := model.ParseTimestamp(value)
	if t.IsZero() {
		return ""
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(layout)
}

func SurveyDocument(s model.Survey, loc *time.Location) *Document {
	blocks := []Block{
		Section("RESPONDENT INFORMATION"),
		Row("Client Name", s.ClientName, false),
		Row("Company Name", s.CompanyName, true),
		Row("Email Address", s.Email, false),
		Row("Phone Number", s.Phone, true),
		Row("Role / Position", s.Role, false),
		ArrayRow("Industries", s.Industries, s.IndustryOther, true),

		Section("BUSINESS GOALS & CHALLENGES"),
		ArrayRow("Business Goals", s.BusinessGoals, s.BusinessGoalsOther, false),
		ArrayRow("Slowdown Issues", s.SlowdownIssues, s.SlowdownIssuesOther, true),

		Section("CURRENT STATE"),
		Row("Customer Journey Documented", s.CustomerJourney, false),
		TextRow("Details", s.CustomerJourneyDetails, true),
		Row("SOPs Status", s.SopsStatus, false),
		TextRow("SOP Details", s.SopsDetails, true),
		ArrayRow("Current Tools", s.CurrentTools, "", false),
		TextRow("Tools Details", s.CurrentToolsDetails, true),

		Section("CAPABILITIES & CONFIDENCE"),
		Row("Marketing Confidence", s.MarketingConfidence, false),
		TextRow("Details", s.MarketingDetails, true),
		Row("Content Quality", s.ContentQuality, false),
		TextRow("Details", s.ContentDetails, true),
		Row("Data & Analytics", s.DataAnalytics, false),
		TextRow("Details", s.DataDetails, true),
	}

	if len(s.ProblemAreas) > 0 {
		blocks = append(blocks,
			Section("PROBLEM AREAS"),
			ArrayRow("Problem Areas", s.ProblemAreas, "", false),
			TextRow("Details", s.ProblemAreasDetails, true),
		)
	}

	blocks = append(blocks,
		Section("SOLUTION READINESS"),
		Row("Solution Openness", s.SolutionOpenness, false),
		TextRow("Details", s.SolutionDetails, true),

		Section("SUBMISSION INFO"),
		Row("Submitted Date", formatDate(s.CreatedAt, surveyDateLayout, loc), false),
		Row("Survey ID", s.SurveyId, true),
	)

	return &Document{
		Filename: SurveyFilename(s),
		Title:    "Business Needs Assessment",
		Logo:     true,
		Header: []HeaderLine{
			{Text: "SURVEY REPORT", Y: 15, Size: 10, Bold: true},
			{Text: "Business Needs Assessment", Y: 32, Size: 14, Bold: true},
			{Text: "Survey Response Report", Y: 39, Size: 8, Muted: true},
			{Text: "Survey ID: " + s.SurveyId, Y: 45, Size: 8, Muted: true},
		},
		Footer:    "Survey Response System",
		CreatedAt: createdAt(s.CreatedAt),
		Blocks:    blocks,
	}
}

func JuanTapDocument(s model.JuanTapSurvey, loc *time.Location) *Document {
	blocks := []Block{
		Section("PERSONAL INFORMATION"),
		Row("Email", s.Email, false),
		Row("Username", s.Username, true),
		Row("Display Name", s.DisplayName, false),
		Row("First Name", s.FirstName, true),
		Row("Last Name", s.LastName, false),
		Row("Position", s.Position, true),

		Section("CONTACT INFORMATION"),
		Row("Phone Number", s.PhoneNumber, false),
		Row("Address", s.Address, true),
		Row("Website", s.Website, false),
	}

	if s.DeliveryAddress != "" || s.ReceiverPhoneNumber != "" {
		blocks = append(blocks, Section("DELIVERY INFORMATION"))
		if s.DeliveryAddress != "" {
			blocks = append(blocks, Row("Delivery Address", s.DeliveryAddress, false))
		}
		if s.ReceiverPhoneNumber != "" {
			blocks = append(blocks, Row("Receiver Phone", s.ReceiverPhoneNumber, true))
		}
	}

	if len(s.SocialMedia) > 0 {
		items := make([]string, 0, len(s.SocialMedia))
		for _, social := range s.SocialMedia {
			items = append(items, social.Platform+": "+social.Url)
		}
		blocks = append(blocks,
			Section("SOCIAL MEDIA ACCOUNTS"),
			ArrayRow("Platforms", items, "", false),
		)
	}

	date := formatDate(s.CreatedAt, juanTapDateLayout, loc)
	if date == "" {
		date = NotAvailable
	}

	return &Document{
		Filename: JuanTapFilename(s),
		Title:    "JuanTap Digital Profile Information",
		Header: []HeaderLine{
			{Text: "JuanTap", Y: 15, Size: 16, Bold: true},
			{Text: "Digital Profile Information", Y: 25, Size: 12, Muted: true},
			{Text: "Survey ID: " + s.JuanTapSurveyId, Y: 32, Size: 8, Muted: true},
			{Text: "Date: " + date, Y: 38, Size: 8, Muted: true},
		},
		Footer:    "JuanTap Digital Profile Platform",
		CreatedAt: createdAt(s.CreatedAt),
		Blocks:    blocks,
	}
}
