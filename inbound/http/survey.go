package http

import (
	"encoding/json"
	"errors"
	"github.com/go-playground/validator/v10"
	"infinitech-web/common"
	"infinitech-web/common/constant"
	"infinitech-web/common/contract"
	"infinitech-web/common/form"
	"infinitech-web/common/otel"
	"infinitech-web/model"
	"infinitech-web/outbound/backend"
	"log/slog"
	"net/http"
)

type SurveyHttp struct {
	Backend   *backend.Client
	Publisher contract.Publisher
	Validate  *validator.Validate
}

var surveyFieldErrors = map[string]struct {
	key     string
	message string
}{
	"Email": {"email", form.MsgInvalidEmail},
	"Phone": {"phone", form.MsgPhoneLetters},
}

func RegisterSurveyHttp(mux *http.ServeMux, guards Guards, backendClient *backend.Client, publisher contract.Publisher, validate *validator.Validate) *SurveyHttp {
	in := &SurveyHttp{
		Backend:   backendClient,
		Publisher: publisher,
		Validate:  validate,
	}

	mux.Handle("POST /api/surveys", guards.public(in.create))
	mux.Handle("GET /api/surveys", guards.admin(in.list))

	return in
}

// create forwards only the known survey fields, with every missing value
// defaulted. A malformed email or a phone with letters is answered with 422
// and never reaches the backend.
func (in SurveyHttp) create(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "SurveyHttp.create")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	var req model.SurveySubmission
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, "Failed to submit survey", err)
		return
	}

	slog.DebugContext(ctx, "create survey receive request", slog.Any(constant.LogFieldPayload, req), traceIdAttr)

	if fieldErrs := in.fieldErrors(req); len(fieldErrs) > 0 {
		slog.WarnContext(ctx, "survey submission rejected", slog.Any("fields", fieldErrs), traceIdAttr)
		writeFieldErrors(w, fieldErrs)
		return
	}

	resp, err := in.Backend.Do(ctx, backend.Request{
		Method: http.MethodPost,
		Path:   "/api/surveys",
		JSON:   req.WithDefaults(),
	})
	if err == nil {
		err = relayResponse(w, resp)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to submit survey", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		writeFailure(w, "Failed to submit survey", err)
		return
	}

	if resp.OK() {
		_ = common.PublishMessage(ctx, in.Publisher, constant.SubjectSurveyCreated, model.SurveyEventMessage{
			CompanyName: req.CompanyName,
			Email:       req.Email,
		})
	}
}

func (in SurveyHttp) fieldErrors(req model.SurveySubmission) map[string]string {
	fieldErrs := map[string]string{}

	var validationErrs validator.ValidationErrors
	if errors.As(in.Validate.Struct(req), &validationErrs) {
		for _, fieldErr := range validationErrs {
			if known, ok := surveyFieldErrors[fieldErr.Field()]; ok {
				fieldErrs[known.key] = known.message
			}
		}
	}

	return fieldErrs
}

func (in SurveyHttp) list(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "SurveyHttp.list")
	defer span.End()

	err := passThrough(ctx, w, in.Backend, backend.Request{
		Method: http.MethodGet,
		Path:   "/api/surveys",
		Query:  pageQuery(r),
	}, "Failed to fetch surveys")
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch surveys", common.ExtractTraceIDFromCtx(ctx), slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
	}
}
