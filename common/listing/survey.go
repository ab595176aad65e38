package listing

import (
	"infinitech-web/model"
	"slices"
	"strings"
)

// FilterSurveys returns the newest surveys first. Industry matches one of
// the selected industries exactly.
func FilterSurveys(surveys []model.Survey, q Query) []model.Survey {
	out := make([]model.Survey, 0, len(surveys))
	for _, s := range surveys {
		if !matchesAny(q.Search, s.ClientName, s.CompanyName, s.Email) {
			continue
		}
		if q.Industry != "" && q.Industry != StatusAll && !slices.Contains(s.Industries, q.Industry) {
			continue
		}
		out = append(out, s)
	}

	slices.SortStableFunc(out, func(a, b model.Survey) int {
		return newestFirst(a.CreatedAt, b.CreatedAt)
	})

	return out
}

// Industries returns every industry selected across surveys, sorted and
// without duplicates.
func Industries(surveys []model.Survey) []string {
	var out []string
	for _, s := range surveys {
		for _, industry := range s.Industries {
			if industry = strings.TrimSpace(industry); industry != "" {
				out = append(out, industry)
			}
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// SurveyStats counts a survey as completed once the customer journey
// question was answered.
func SurveyStats(surveys []model.Survey) model.SurveyStats {
	stats := model.SurveyStats{Total: len(surveys)}
	for _, s := range surveys {
		if s.CustomerJourney == "" {
			stats.Pending++
		} else {
			stats.Completed++
		}
	}
	return stats
}

func SurveyView(surveys []model.Survey, q Query) model.ListView[model.Survey, model.SurveyStats] {
	page := Paginate(FilterSurveys(surveys, q), q.Page)
	return model.ListView[model.Survey, model.SurveyStats]{
		Data:       page.Items,
		Page:       page.Page,
		PerPage:    page.PerPage,
		Total:      page.Total,
		TotalPages: page.TotalPages,
		Stats:      SurveyStats(surveys),
		Facets:     Industries(surveys),
	}
}
