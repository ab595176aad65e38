package http

import (
	"context"
	"encoding/json"
	"github.com/go-playground/validator/v10"
	"infinitech-web/common"
	"infinitech-web/common/constant"
	"infinitech-web/common/contract"
	"infinitech-web/common/errs"
	"infinitech-web/common/otel"
	"infinitech-web/model"
	"infinitech-web/outbound/backend"
	"infinitech-web/outbound/email"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
)

type InquiryHttp struct {
	Backend   *backend.Client
	Mailer    contract.Mailer
	Composer  *email.Composer
	Publisher contract.Publisher
	Validate  *validator.Validate
}

func RegisterInquiryHttp(
	mux *http.ServeMux,
	guards Guards,
	backendClient *backend.Client,
	mailer contract.Mailer,
	composer *email.Composer,
	publisher contract.Publisher,
	validate *validator.Validate,
) *InquiryHttp {
	in := &InquiryHttp{
		Backend:   backendClient,
		Mailer:    mailer,
		Composer:  composer,
		Publisher: publisher,
		Validate:  validate,
	}

	mux.Handle("POST /api/inquiries", guards.public(in.create))
	mux.Handle("GET /api/inquiries", guards.admin(in.list))
	mux.Handle("GET /api/inquiries/{id}", guards.admin(in.get))
	mux.Handle("PATCH /api/inquiries/{id}", guards.admin(in.updateStatus))
	mux.Handle("DELETE /api/inquiries/{id}", guards.admin(in.delete))
	mux.Handle("POST /api/inquiries/reply", guards.admin(in.reply))

	return in
}

func (in InquiryHttp) create(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "InquiryHttp.create")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	var req model.CreateInquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	slog.DebugContext(ctx, "create inquiry receive request", slog.Any(constant.LogFieldPayload, req), traceIdAttr)

	if err := in.Validate.Struct(req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	resp, err := in.Backend.Do(ctx, backend.Request{Method: http.MethodPost, Path: "/api/inquiries", JSON: req})
	if err != nil {
		slog.ErrorContext(ctx, "failed to submit inquiry", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		writeFailure(w, failureMessage(err, in.Backend.BaseURL, "Failed to submit inquiry"), err)
		return
	}

	if resp.OK() {
		in.notify(ctx, req)

		event := model.InquiryEventMessage{Email: req.Email, Status: constant.InquiryStatusPending}
		if created, err := decodeRecord[model.Inquiry](resp.Body); err == nil {
			event.Id = created.Id
		}
		_ = common.PublishMessage(ctx, in.Publisher, constant.SubjectInquiryCreated, event)
	}

	if err := relayResponse(w, resp); err != nil {
		slog.ErrorContext(ctx, "failed to relay inquiry response", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeFailure(w, "Failed to submit inquiry", err)
	}
}

// notify mails the new inquiry to the receiver. The inquiry is already
// stored, so a failure is only logged.
func (in InquiryHttp) notify(ctx context.Context, req model.CreateInquiryRequest) {
	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	msg, err := in.Composer.InquiryNotification(req)
	if err == nil {
		_, err = in.Mailer.Send(ctx, msg)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to send inquiry notification", traceIdAttr, slog.Any(constant.LogFieldErr, err))
	}
}

func (in InquiryHttp) list(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "InquiryHttp.list")
	defer span.End()

	err := passThrough(ctx, w, in.Backend, backend.Request{
		Method:  http.MethodGet,
		Path:    "/api/inquiries",
		Query:   pageQuery(r),
		Timeout: in.Backend.ListTimeout,
	}, "Failed to fetch inquiries")
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch inquiries", common.ExtractTraceIDFromCtx(ctx), slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
	}
}

func (in InquiryHttp) get(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "InquiryHttp.get")
	defer span.End()

	err := passThrough(ctx, w, in.Backend, backend.Request{
		Method: http.MethodGet,
		Path:   "/api/inquiries/" + url.PathEscape(r.PathValue("id")),
	}, "Failed to fetch inquiry")
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch inquiry", common.ExtractTraceIDFromCtx(ctx), slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
	}
}

func (in InquiryHttp) updateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "InquiryHttp.updateStatus")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	var body json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeFailure(w, "Failed to update inquiry status", err)
		return
	}

	slog.InfoContext(ctx, "update inquiry status receive request", slog.String("id", r.PathValue("id")), slog.String(constant.LogFieldPayload, string(body)), traceIdAttr)

	err := passThrough(ctx, w, in.Backend, backend.Request{
		Method:      http.MethodPatch,
		Path:        "/api/inquiries/" + url.PathEscape(r.PathValue("id")) + "/updatestatus",
		Body:        body,
		ContentType: "application/json",
	}, "Failed to update inquiry status")
	if err != nil {
		slog.ErrorContext(ctx, "failed to update inquiry status", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
	}
}

func (in InquiryHttp) delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "InquiryHttp.delete")
	defer span.End()

	err := passThrough(ctx, w, in.Backend, backend.Request{
		Method: http.MethodDelete,
		Path:   "/api/inquiries/" + url.PathEscape(r.PathValue("id")),
	}, "Failed to delete inquiry")
	if err != nil {
		slog.ErrorContext(ctx, "failed to delete inquiry", common.ExtractTraceIDFromCtx(ctx), slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
	}
}

// reply mails the answer first and then marks the inquiry. A failed status
// update does not undo a sent reply.
func (in InquiryHttp) reply(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "InquiryHttp.reply")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	var req model.InquiryReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	slog.InfoContext(ctx, "inquiry reply receive request", slog.Int64("inquiry_id", req.InquiryId), slog.String("status", req.Status), traceIdAttr)

	if req.Email == "" || req.Message == "" {
		writeMessage(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	if req.InquiryId == 0 {
		writeMessage(w, http.StatusBadRequest, "Inquiry ID is required")
		return
	}

	if req.Status == "" {
		req.Status = constant.InquiryStatusReplied
	}

	msg, err := in.Composer.InquiryReply(req)
	if err == nil {
		_, err = in.Mailer.Send(ctx, msg)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to send inquiry reply", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	id := strconv.FormatInt(req.InquiryId, 10)
	if err := in.Backend.UpdateInquiryStatus(ctx, id, req.Status); err != nil {
		slog.ErrorContext(ctx, "failed to update inquiry status after reply", traceIdAttr, slog.Any(constant.LogFieldErr, err))
	}

	_ = common.PublishMessage(ctx, in.Publisher, constant.SubjectInquiryReplied, model.InquiryEventMessage{
		Id:     req.InquiryId,
		Email:  req.Email,
		Status: req.Status,
	})

	writeMessage(w, http.StatusOK, "Reply sent successfully")
}
