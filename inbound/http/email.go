package http

import (
	"encoding/json"
	"errors"
	"github.com/go-playground/validator/v10"
	"infinitech-web/common"
	"infinitech-web/common/constant"
	"infinitech-web/common/contract"
	"infinitech-web/common/errs"
	"infinitech-web/common/form"
	"infinitech-web/common/otel"
	"infinitech-web/model"
	"infinitech-web/outbound/email"
	"log/slog"
	"net/http"
)

type EmailHttp struct {
	Mailer   contract.Mailer
	Composer *email.Composer
	Validate *validator.Validate
}

func RegisterEmailHttp(mux *http.ServeMux, guards Guards, mailer contract.Mailer, composer *email.Composer, validate *validator.Validate) *EmailHttp {
	in := &EmailHttp{
		Mailer:   mailer,
		Composer: composer,
		Validate: validate,
	}

	mux.Handle("POST /api/quotation", guards.public(in.quotation))
	mux.Handle("POST /api/summary-send-email", guards.public(in.orderSummary))
	mux.Handle("POST /api/send-challenge-email", guards.admin(in.challenge))
	mux.Handle("POST /api/send-juantap-email", guards.admin(in.juanTap))
	mux.Handle("POST /api/send-survey-email", guards.admin(in.surveyFollowUp))

	return in
}

func (in EmailHttp) quotation(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "EmailHttp.quotation")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	failed := model.CodeResponse{Code: http.StatusInternalServerError, Message: "Something Went Wrong"}

	var req model.QuotationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONResponse(w, http.StatusInternalServerError, failed)
		return
	}

	slog.InfoContext(ctx, "quotation receive request", slog.Int("size", len(req.Base64)), traceIdAttr)

	err := in.Validate.Struct(req)
	if err == nil {
		var msg email.Message
		if msg, err = in.Composer.Quotation(req.Base64); err == nil {
			_, err = in.Mailer.Send(ctx, msg)
		}
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to send quotation", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		writeJSONResponse(w, http.StatusInternalServerError, failed)
		return
	}

	writeJSONResponse(w, http.StatusOK, model.CodeResponse{Code: http.StatusOK, Message: "Email Sent Successfully"})
}

func (in EmailHttp) orderSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "EmailHttp.orderSummary")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	var req model.OrderSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	slog.InfoContext(ctx, "order summary receive request", slog.String("receipt_no", req.ReceiptNo), slog.Int("items", len(req.Cart)), traceIdAttr)

	if err := in.Validate.Struct(req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	msg, err := in.Composer.OrderSummary(req)
	if err != nil {
		in.writeSendFailure(w, r, err)
		return
	}

	messageId, err := in.Mailer.Send(ctx, msg)
	if err != nil {
		common.UtilSpanError(span, err)
		in.writeSendFailure(w, r, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, model.ResultResponse{Success: true, Message: "Email sent successfully", MessageId: messageId})
}

func (in EmailHttp) challenge(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "EmailHttp.challenge")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	var req model.ChallengeEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		in.writeResultFailure(w, err)
		return
	}

	slog.InfoContext(ctx, "challenge email receive request", slog.String("plan_type", req.PlanType), slog.String("survey_id", req.SurveyData.SurveyId), traceIdAttr)

	if err := in.Validate.Struct(req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	msg, err := in.Composer.Challenge(req)
	if err == nil {
		_, err = in.Mailer.Send(ctx, msg)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to send challenge email", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		in.writeResultFailure(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, model.ResultResponse{Success: true, Message: "Challenge email sent successfully"})
}

func (in EmailHttp) juanTap(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "EmailHttp.juanTap")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	var req model.JuanTapEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		in.writeResultFailure(w, err)
		return
	}

	slog.InfoContext(ctx, "juantap email receive request", slog.String("juantap_survey_id", req.JuanTapSurveyId), traceIdAttr)

	if err := in.Validate.Struct(req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	msg, err := in.Composer.JuanTapNotification(req)
	if err == nil {
		_, err = in.Mailer.Send(ctx, msg)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to send juantap email", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		in.writeResultFailure(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, model.ResultResponse{Success: true, Message: "Email sent successfully"})
}

// surveyFollowUp checks the mail credentials before the recipients, so an
// unconfigured service answers 500 even for an empty recipient list.
func (in EmailHttp) surveyFollowUp(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "EmailHttp.surveyFollowUp")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	var req model.SurveyEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		in.writeSendFailure(w, r, err)
		return
	}

	slog.InfoContext(ctx, "survey email receive request", slog.Any("survey_id", req.SurveyId), traceIdAttr)

	if !in.Mailer.Configured() {
		in.writeSendFailure(w, r, email.ErrNotConfigured)
		return
	}

	recipients := form.ParseRecipients(req.To)
	if len(recipients) == 0 {
		in.writeSendFailure(w, r, email.ErrNoRecipients)
		return
	}

	msg, err := in.Composer.SurveyFollowUp(req, recipients)
	if err != nil {
		in.writeSendFailure(w, r, err)
		return
	}

	messageId, err := in.Mailer.Send(ctx, msg)
	if err != nil {
		common.UtilSpanError(span, err)
		in.writeSendFailure(w, r, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, model.ResultResponse{Success: true, Message: "Email sent successfully", MessageId: messageId})
}

// writeSendFailure answers with the {error, details} shape.
func (in EmailHttp) writeSendFailure(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "failed to send email", common.ExtractTraceIDFromCtx(r.Context()), slog.Any(constant.LogFieldErr, err))

	switch {
	case errors.Is(err, email.ErrNotConfigured):
		writeJSONResponse(w, http.StatusInternalServerError, model.ErrorResponse{Error: "Email service not configured properly"})
	case errors.Is(err, email.ErrNoRecipients):
		writeJSONResponse(w, http.StatusBadRequest, model.ErrorResponse{Error: "No valid recipient emails provided"})
	default:
		writeJSONResponse(w, http.StatusInternalServerError, model.ErrorResponse{Error: "Failed to send email", Details: err.Error()})
	}
}

func (in EmailHttp) writeResultFailure(w http.ResponseWriter, err error) {
	if errors.Is(err, email.ErrNoRecipients) {
		writeJSONResponse(w, http.StatusBadRequest, model.ResultResponse{
			Success: false,
			Error:   "No valid recipient emails provided",
		})
		return
	}

	writeJSONResponse(w, http.StatusInternalServerError, model.ResultResponse{
		Success: false,
		Error:   "Failed to send email",
		Details: err.Error(),
	})
}
