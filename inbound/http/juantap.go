package http

import (
	"encoding/json"
	"errors"
	"fmt"
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
	"net/url"
)

const (
	juanTapMaxMemory = 8 << 20
	juanTapMaxBody   = constant.MaxProfileImageSize + 2<<20
)

type JuanTapHttp struct {
	Backend   *backend.Client
	Publisher contract.Publisher
	Validate  *validator.Validate
}

func RegisterJuanTapHttp(mux *http.ServeMux, guards Guards, backendClient *backend.Client, publisher contract.Publisher, validate *validator.Validate) *JuanTapHttp {
	in := &JuanTapHttp{
		Backend:   backendClient,
		Publisher: publisher,
		Validate:  validate,
	}

	mux.Handle("POST /api/juantap-surveys", guards.public(in.create))
	mux.Handle("GET /api/juantap-surveys", guards.admin(in.list))
	mux.Handle("GET /api/juantap-surveys/{id}", guards.public(in.get))

	return in
}

// create checks the multipart submission, re-encodes it in the backend's
// field order and forwards it. Field errors are answered together with 422.
func (in JuanTapHttp) create(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "JuanTapHttp.create")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, juanTapMaxBody)

	f, socialMsg, err := form.JuanTapFormFromRequest(r, juanTapMaxMemory)
	if errors.Is(err, form.ErrImageMissing) {
		writeFieldErrors(w, map[string]string{"profile_image": form.MsgInvalidImageType})
		return
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		slog.WarnContext(ctx, "juantap submission too large", slog.Int64("limit", tooLarge.Limit), traceIdAttr)
		writeFieldErrors(w, map[string]string{"profile_image": form.MsgImageTooLarge})
		return
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to read juantap submission", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		in.writeCreateFailure(w, err)
		return
	}

	slog.DebugContext(ctx, "create juantap survey receive request",
		slog.String("email", f.Email),
		slog.String("username", f.Username),
		slog.Int("social_media", len(f.SocialMedia)),
		slog.Bool("profile_image", f.ProfileImage != nil),
		traceIdAttr,
	)

	fieldErrs := f.Validate(in.Validate)
	if socialMsg != "" {
		fieldErrs["social_media"] = socialMsg
	}
	if len(fieldErrs) > 0 {
		writeFieldErrors(w, fieldErrs)
		return
	}

	contentType, body, err := f.Encode()
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode juantap submission", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		in.writeCreateFailure(w, err)
		return
	}

	resp, err := in.Backend.Do(ctx, backend.Request{
		Method:      http.MethodPost,
		Path:        "/api/juantap-surveys",
		Body:        body,
		ContentType: contentType,
		Timeout:     in.Backend.UploadTimeout,
	})
	if err == nil && !json.Valid(resp.Body) {
		err = errNotJSON
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to submit juantap survey", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		in.writeCreateFailure(w, err)
		return
	}

	if !resp.OK() {
		slog.WarnContext(ctx, "backend refused juantap survey", slog.Int("status", resp.Status), traceIdAttr)
		_ = relayResponse(w, resp)
		return
	}

	_ = common.PublishMessage(ctx, in.Publisher, constant.SubjectJuanTapCreated, model.JuanTapEventMessage{
		Email:    f.Email,
		Username: f.Username,
	})

	writeJSONResponse(w, http.StatusCreated, model.ResultResponse{
		Success: true,
		Message: "Survey submitted successfully",
		Data:    json.RawMessage(resp.Body),
	})
}

func (in JuanTapHttp) writeCreateFailure(w http.ResponseWriter, err error) {
	writeJSONResponse(w, http.StatusInternalServerError, model.ResultResponse{
		Success: false,
		Message: failureMessage(err, in.Backend.BaseURL, "Failed to submit survey"),
		Error:   err.Error(),
		Debug: &model.DebugInfo{
			ApiUrl:    in.Backend.BaseURL,
			ErrorType: fmt.Sprintf("%T", err),
		},
	})
}

func (in JuanTapHttp) list(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "JuanTapHttp.list")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	resp, err := in.Backend.Do(ctx, backend.Request{
		Method:  http.MethodGet,
		Path:    "/api/juantap-surveys",
		Query:   pageQuery(r),
		Timeout: in.Backend.ListTimeout,
	})
	if err == nil {
		err = relayResponse(w, resp)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch juantap surveys", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		writeFailure(w, failureMessage(err, in.Backend.BaseURL, "Failed to fetch surveys"), err)
	}
}

func (in JuanTapHttp) get(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "JuanTapHttp.get")
	defer span.End()

	err := passThrough(ctx, w, in.Backend, backend.Request{
		Method: http.MethodGet,
		Path:   "/api/juantap-surveys/" + url.PathEscape(r.PathValue("id")),
	}, "Failed to fetch survey")
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch juantap survey", common.ExtractTraceIDFromCtx(ctx), slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
	}
}

func writeFieldErrors(w http.ResponseWriter, fieldErrs map[string]string) {
	out := make(map[string][]string, len(fieldErrs))
	for field, msg := range fieldErrs {
		out[field] = []string{msg}
	}

	writeJSONResponse(w, http.StatusUnprocessableEntity, model.ResultResponse{Success: false, Errors: out})
}
