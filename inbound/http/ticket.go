package http

import (
	"encoding/json"
	"github.com/go-playground/validator/v10"
	"infinitech-web/common"
	"infinitech-web/common/constant"
	"infinitech-web/common/contract"
	"infinitech-web/common/listing"
	"infinitech-web/common/otel"
	"infinitech-web/model"
	"infinitech-web/outbound/backend"
	"infinitech-web/outbound/email"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

type TicketHttp struct {
	Backend   *backend.Client
	Mailer    contract.Mailer
	Composer  *email.Composer
	Publisher contract.Publisher
	Validate  *validator.Validate
}

func RegisterTicketHttp(
	mux *http.ServeMux,
	guards Guards,
	backendClient *backend.Client,
	mailer contract.Mailer,
	composer *email.Composer,
	publisher contract.Publisher,
	validate *validator.Validate,
) *TicketHttp {
	in := &TicketHttp{
		Backend:   backendClient,
		Mailer:    mailer,
		Composer:  composer,
		Publisher: publisher,
		Validate:  validate,
	}

	mux.Handle("POST /api/support-tickets", guards.public(in.create))
	mux.Handle("GET /api/admin/support-tickets", guards.admin(in.list))
	mux.Handle("PUT /api/admin/support-tickets/{id}", guards.admin(in.updateStatus))
	mux.Handle("POST /api/admin/support-tickets/reply", guards.admin(in.reply))

	return in
}

// isWebsiteRelated reports whether the subject or message mentions one of
// the ticket keywords.
func isWebsiteRelated(subject, message string) bool {
	subject = strings.ToLower(subject)
	message = strings.ToLower(message)

	for _, keyword := range constant.TicketKeywords {
		if strings.Contains(message, keyword) || strings.Contains(subject, keyword) {
			return true
		}
	}

	return false
}

func (in TicketHttp) create(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "TicketHttp.create")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	var req model.CreateSupportTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	slog.DebugContext(ctx, "create support ticket receive request", slog.Any(constant.LogFieldPayload, req), traceIdAttr)

	if err := in.Validate.Struct(req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	if !isWebsiteRelated(req.Subject, req.Message) {
		writeMessage(w, http.StatusBadRequest, "Please submit website-related issues or feedback only")
		return
	}

	if !slices.Contains(constant.TicketCategories, req.Category) {
		writeMessage(w, http.StatusBadRequest, "Invalid category")
		return
	}

	resp, err := in.Backend.Do(ctx, backend.Request{
		Method: http.MethodPost,
		Path:   "/api/support-tickets",
		JSON:   req.Submission(),
	})
	if err == nil && !resp.OK() {
		err = &backend.StatusError{Status: resp.Status, Body: resp.Body}
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to create support ticket in backend", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	created, err := decodeRecord[model.SupportTicket](resp.Body)
	if err != nil {
		slog.ErrorContext(ctx, "failed to decode created support ticket", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	var ticketId any
	switch {
	case created.TicketNumber != "":
		ticketId = created.TicketNumber
	case created.Id != 0:
		ticketId = created.Id
	}

	_ = common.PublishMessage(ctx, in.Publisher, constant.SubjectTicketCreated, model.TicketEventMessage{
		TicketNumber: created.TicketNumber,
		TicketId:     created.Id,
		Category:     req.Category,
		Domain:       req.Domain,
	})

	writeJSONResponse(w, http.StatusCreated, model.CreateSupportTicketResponse{
		Message:  "Support ticket created successfully",
		TicketId: ticketId,
	})
}

// list answers with one filtered page of tickets plus stats over all of them.
func (in TicketHttp) list(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "TicketHttp.list")
	defer span.End()

	tickets, err := in.Backend.ListTickets(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch tickets", common.ExtractTraceIDFromCtx(ctx), slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSONResponse(w, http.StatusOK, listing.TicketView(tickets, listQuery(r)))
}

func (in TicketHttp) updateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "TicketHttp.updateStatus")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	var req model.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request")
		return
	}

	if err := in.Validate.Struct(req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	slog.InfoContext(ctx, "update ticket status receive request", slog.String("id", r.PathValue("id")), slog.String("status", req.Status), traceIdAttr)

	resp, err := in.Backend.Do(ctx, backend.Request{
		Method: http.MethodPut,
		Path:   "/api/support-tickets/" + url.PathEscape(r.PathValue("id")),
		JSON:   req,
	})
	if err == nil {
		err = relayResponse(w, resp)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to update ticket status", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

// reply mails the answer and then stores the chosen status. A failed status
// update is logged and the reply still succeeds.
func (in TicketHttp) reply(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "TicketHttp.reply")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	var req model.TicketReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	slog.InfoContext(ctx, "ticket reply receive request",
		slog.Int64("ticket_id", req.TicketId),
		slog.String("ticket_number", req.TicketNumber),
		slog.String("status", req.Status),
		traceIdAttr,
	)

	if req.Email == "" || req.Message == "" {
		writeMessage(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	if req.TicketId == 0 {
		writeMessage(w, http.StatusBadRequest, "Ticket ID is required")
		return
	}

	msg, err := in.Composer.TicketReply(req)
	if err == nil {
		_, err = in.Mailer.Send(ctx, msg)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to send ticket reply", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := in.Backend.UpdateTicketStatus(ctx, strconv.FormatInt(req.TicketId, 10), req.Status); err != nil {
		slog.ErrorContext(ctx, "failed to update ticket status after reply", traceIdAttr, slog.Any(constant.LogFieldErr, err))
	}

	_ = common.PublishMessage(ctx, in.Publisher, constant.SubjectTicketReplied, model.TicketEventMessage{
		TicketNumber: req.TicketNumber,
		TicketId:     req.TicketId,
		Status:       req.Status,
	})

	writeMessage(w, http.StatusOK, "Reply sent successfully")
}
