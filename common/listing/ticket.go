package listing

import (
	"infinitech-web/common/constant"
	"infinitech-web/model"
	"slices"
	"strings"
)

func IsVip(ticket model.SupportTicket) bool {
	return strings.Contains(strings.ToLower(ticket.Domain), constant.VipDomainMarker)
}

// FilterTickets searches subject, name and email, applies the status filter
// and orders VIP tickets first, newest first within each group.
func FilterTickets(tickets []model.SupportTicket, q Query) []model.SupportTicket {
	out := make([]model.SupportTicket, 0, len(tickets))
	for _, t := range tickets {
		if matchesAny(q.Search, t.Subject, t.Name, t.Email) && matchesStatus(q.Status, t.Status) {
			out = append(out, t)
		}
	}

	slices.SortStableFunc(out, func(a, b model.SupportTicket) int {
		aVip, bVip := IsVip(a), IsVip(b)
		if aVip != bVip {
			if aVip {
				return -1
			}
			return 1
		}
		return newestFirst(a.CreatedAt, b.CreatedAt)
	})

	return out
}

func TicketStats(tickets []model.SupportTicket) model.TicketStats {
	stats := model.TicketStats{Total: len(tickets)}
	for _, t := range tickets {
		switch t.Status {
		case constant.TicketStatusOpen:
			stats.Open++
		case constant.TicketStatusInProgress:
			stats.InProgress++
		case constant.TicketStatusResolved:
			stats.Resolved++
		case constant.TicketStatusClosed:
			stats.Closed++
		}
		if IsVip(t) {
			stats.Vip++
		}
	}
	return stats
}

func TicketView(tickets []model.SupportTicket, q Query) model.ListView[model.SupportTicket, model.TicketStats] {
	page := Paginate(FilterTickets(tickets, q), q.Page)
	return model.ListView[model.SupportTicket, model.TicketStats]{
		Data:       page.Items,
		Page:       page.Page,
		PerPage:    page.PerPage,
		Total:      page.Total,
		TotalPages: page.TotalPages,
		Stats:      TicketStats(tickets),
	}
}
