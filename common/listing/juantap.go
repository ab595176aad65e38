package listing

import (
	"infinitech-web/model"
	"slices"
)

func FilterJuanTapSurveys(surveys []model.JuanTapSurvey, q Query) []model.JuanTapSurvey {
	out := make([]model.JuanTapSurvey, 0, len(surveys))
	for _, s := range surveys {
		if matchesAny(q.Search,
			s.Email, s.Username, s.DisplayName, s.FirstName, s.LastName,
			s.Position, s.DeliveryAddress, s.ReceiverPhoneNumber,
		) {
			out = append(out, s)
		}
	}

	slices.SortStableFunc(out, func(a, b model.JuanTapSurvey) int {
		return newestFirst(a.CreatedAt, b.CreatedAt)
	})

	return out
}

func JuanTapView(surveys []model.JuanTapSurvey, q Query) model.ListView[model.JuanTapSurvey, model.JuanTapStats] {
	page := Paginate(FilterJuanTapSurveys(surveys, q), q.Page)
	return model.ListView[model.JuanTapSurvey, model.JuanTapStats]{
		Data:       page.Items,
		Page:       page.Page,
		PerPage:    page.PerPage,
		Total:      page.Total,
		TotalPages: page.TotalPages,
		Stats:      model.JuanTapStats{Total: len(surveys)},
	}
}
