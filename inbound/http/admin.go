package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"github.com/spf13/viper"
	"infinitech-web/common"
	"infinitech-web/common/constant"
	"infinitech-web/common/listing"
	"infinitech-web/common/otel"
	"infinitech-web/common/session"
	"infinitech-web/common/vars"
	"infinitech-web/model"
	"infinitech-web/outbound/backend"
	"infinitech-web/outbound/report"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

type AdminHttp struct {
	Sessions *session.Manager
	Backend  *backend.Client
	Reports  *report.Generator

	TimeNow func() time.Time

	password     string
	passwordHash string
	secureCookie bool
}

func RegisterAdminHttp(
	mux *http.ServeMux,
	cfg *viper.Viper,
	guards Guards,
	sessions *session.Manager,
	backendClient *backend.Client,
	reports *report.Generator,
) *AdminHttp {
	in := &AdminHttp{
		Sessions: sessions,
		Backend:  backendClient,
		Reports:  reports,
		TimeNow:  time.Now,

		password:     cfg.GetString("admin.password"),
		passwordHash: cfg.GetString("admin.password_hash"),
		secureCookie: cfg.GetBool("admin.secure_cookie"),
	}

	mux.Handle("POST /api/admin/login", guards.public(in.login))
	mux.Handle("POST /api/admin/logout", guards.admin(in.logout))
	mux.Handle("GET /api/admin/session", guards.admin(in.session))
	mux.Handle("GET /api/admin/dashboard", guards.admin(in.dashboard))
	mux.Handle("GET /api/admin/inquiries", guards.admin(in.inquiries))
	mux.Handle("GET /api/admin/surveys", guards.admin(in.surveys))
	mux.Handle("GET /api/admin/juantap-surveys", guards.admin(in.juanTapSurveys))
	mux.Handle("GET /api/admin/surveys/{id}/report", guards.admin(in.surveyReport))
	mux.Handle("GET /api/admin/juantap-surveys/{id}/report", guards.admin(in.juanTapReport))

	return in
}

func (in AdminHttp) login(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "AdminHttp.login")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Password required")
		return
	}

	if !session.CheckPassword(req.Password, in.password, in.passwordHash) {
		slog.WarnContext(ctx, "admin login rejected", traceIdAttr)
		writeMessage(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	token, claims, err := in.Sessions.Issue(in.TimeNow())
	if err != nil {
		slog.ErrorContext(ctx, "failed to issue admin session", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	slog.InfoContext(ctx, "admin logged in", slog.String("session_id", claims.ID), traceIdAttr)

	http.SetCookie(w, session.NewCookie(token, in.secureCookie))
	writeJSONResponse(w, http.StatusOK, model.LoginResponse{
		Message:   "Login successful",
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
	})
}

func (in AdminHttp) logout(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "AdminHttp.logout")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	claims, ok := session.FromContext(ctx)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := in.Sessions.Revoke(ctx, claims); err != nil {
		slog.ErrorContext(ctx, "failed to revoke admin session", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	slog.InfoContext(ctx, "admin logged out", slog.String("session_id", claims.ID), traceIdAttr)

	http.SetCookie(w, session.ClearCookie(in.secureCookie))
	writeMessage(w, http.StatusOK, "Logout successful")
}

func (in AdminHttp) session(w http.ResponseWriter, r *http.Request) {
	claims, ok := session.FromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	writeJSONResponse(w, http.StatusOK, model.SessionResponse{
		Subject:   claims.Subject,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	})
}

func (in AdminHttp) dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "AdminHttp.dashboard")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	tickets, err := in.Backend.ListTickets(ctx)
	if err != nil {
		in.writeListFailure(w, r, err)
		return
	}

	inquiries, err := in.Backend.ListInquiries(ctx)
	if err != nil {
		in.writeListFailure(w, r, err)
		return
	}

	surveys, err := in.Backend.ListSurveys(ctx)
	if err != nil {
		in.writeListFailure(w, r, err)
		return
	}

	slog.DebugContext(ctx, "dashboard loaded",
		slog.Int("tickets", len(tickets)),
		slog.Int("inquiries", len(inquiries)),
		slog.Int("surveys", len(surveys)),
		traceIdAttr,
	)

	writeJSONResponse(w, http.StatusOK, model.DashboardResponse{
		Tickets:   listing.TicketStats(tickets),
		Inquiries: listing.InquiryStats(inquiries),
		Surveys:   listing.SurveyStats(surveys),
		Backend:   vars.GetBackendStatus(),
	})
}

func (in AdminHttp) inquiries(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "AdminHttp.inquiries")
	defer span.End()

	inquiries, err := in.Backend.ListInquiries(ctx)
	if err != nil {
		common.UtilSpanError(span, err)
		in.writeListFailure(w, r, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, listing.InquiryView(inquiries, listQuery(r)))
}

func (in AdminHttp) surveys(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "AdminHttp.surveys")
	defer span.End()

	surveys, err := in.Backend.ListSurveys(ctx)
	if err != nil {
		common.UtilSpanError(span, err)
		in.writeListFailure(w, r, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, listing.SurveyView(surveys, listQuery(r)))
}

func (in AdminHttp) juanTapSurveys(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "AdminHttp.juanTapSurveys")
	defer span.End()

	surveys, err := in.Backend.ListJuanTapSurveys(ctx)
	if err != nil {
		common.UtilSpanError(span, err)
		in.writeListFailure(w, r, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, listing.JuanTapView(surveys, listQuery(r)))
}

func (in AdminHttp) surveyReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "AdminHttp.surveyReport")
	defer span.End()

	survey, err := in.Backend.FindSurvey(ctx, r.PathValue("id"))
	if err != nil {
		common.UtilSpanError(span, err)
		in.writeReportFailure(w, r, err)
		return
	}

	var buf bytes.Buffer
	filename, err := in.Reports.Survey(ctx, &buf, *survey)
	if err != nil {
		common.UtilSpanError(span, err)
		in.writeReportFailure(w, r, err)
		return
	}

	writePDF(w, filename, buf.Bytes())
}

func (in AdminHttp) juanTapReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "AdminHttp.juanTapReport")
	defer span.End()

	survey, err := in.Backend.GetJuanTapSurvey(ctx, r.PathValue("id"))
	if err != nil {
		common.UtilSpanError(span, err)
		in.writeReportFailure(w, r, err)
		return
	}

	var buf bytes.Buffer
	filename, err := in.Reports.JuanTap(ctx, &buf, *survey)
	if err != nil {
		common.UtilSpanError(span, err)
		in.writeReportFailure(w, r, err)
		return
	}

	writePDF(w, filename, buf.Bytes())
}

func (in AdminHttp) writeListFailure(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "failed to load admin list", common.ExtractTraceIDFromCtx(r.Context()), slog.Any(constant.LogFieldErr, err))
	writeMessage(w, http.StatusInternalServerError, "Internal server error")
}

func (in AdminHttp) writeReportFailure(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, backend.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Survey not found")
		return
	}

	slog.ErrorContext(r.Context(), "failed to generate report", common.ExtractTraceIDFromCtx(r.Context()), slog.Any(constant.LogFieldErr, err))
	writeMessage(w, http.StatusInternalServerError, "Failed to generate PDF")
}

// writePDF sends a rendered report as a download. Reports are rendered into
// memory first so a failed render never produces a truncated file.
func writePDF(w http.ResponseWriter, filename string, pdf []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", attachment(filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
