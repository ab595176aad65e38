package listing

import (
	"infinitech-web/common/constant"
	"infinitech-web/model"
	"slices"
)

func FilterInquiries(inquiries []model.Inquiry, q Query) []model.Inquiry {
	out := make([]model.Inquiry, 0, len(inquiries))
	for _, i := range inquiries {
		if matchesAny(q.Search, i.Name, i.Email, i.Message) && matchesStatus(q.Status, i.Status) {
			out = append(out, i)
		}
	}

	slices.SortStableFunc(out, func(a, b model.Inquiry) int {
		return newestFirst(a.CreatedAt, b.CreatedAt)
	})

	return out
}

func InquiryStats(inquiries []model.Inquiry) model.InquiryStats {
	stats := model.InquiryStats{Total: len(inquiries)}
	for _, i := range inquiries {
		switch i.Status {
		case constant.InquiryStatusPending:
			stats.Pending++
		case constant.InquiryStatusReplied:
			stats.Replied++
		case constant.InquiryStatusResolved:
			stats.Resolved++
		}
	}
	return stats
}

func InquiryView(inquiries []model.Inquiry, q Query) model.ListView[model.Inquiry, model.InquiryStats] {
	page := Paginate(FilterInquiries(inquiries, q), q.Page)
	return model.ListView[model.Inquiry, model.InquiryStats]{
		Data:       page.Items,
		Page:       page.Page,
		PerPage:    page.PerPage,
		Total:      page.Total,
		TotalPages: page.TotalPages,
		Stats:      InquiryStats(inquiries),
	}
}
