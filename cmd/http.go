package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
	"infinitech-web/common/constant"
	"infinitech-web/common/vars"
	inboundCron "infinitech-web/inbound/cron"
	inboundHttp "infinitech-web/inbound/http"
	"log"
	"log/slog"
	"net/http"
	"os"
	"runtime/pprof"
	"time"
)

func runHttpServerCmd(ctx context.Context, cfg *viper.Viper) {
	if cfg.GetString("env") == "dev" {
		cpu, err := os.Create("http-cpu.prof")
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		defer cpu.Close()

		err = pprof.StartCPUProfile(cpu)
		if err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	shutdownTracer := newTracer(ctx, cfg)
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			slog.Error("unable to flush traces", slog.Any(constant.LogFieldErr, err))
		}
	}()

	validate := newValidator()

	cacheClient := newRedis(cfg)
	if cacheClient != nil {
		defer cacheClient.Close()
	}

	natsConn := newNats(cfg)
	if natsConn != nil {
		defer natsConn.Close()
	}

	js := newJs(natsConn)
	if js != nil {
		createEventStream(ctx, js)
	}

	backendClient := newBackend(cfg)
	mailer := newMailer(cfg)
	composer := newComposer(cfg)
	sessions := newSessions(cfg, cacheClient)

	guards := inboundHttp.Guards{
		Admin: inboundHttp.AuthMiddleware(sessions),
	}
	if cacheClient != nil {
		rateLimiter := inboundHttp.NewRateLimiter(cacheClient, cfg.GetInt("ratelimit.limit"), cfg.GetDuration("ratelimit.window"))
		guards.Public = rateLimiter.Middleware
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		slog.DebugContext(r.Context(), "health check")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  "ok",
			"backend": vars.GetBackendStatus(),
		})
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	inboundHttp.RegisterSurveyHttp(mux, guards, backendClient, js, validate)
	inboundHttp.RegisterJuanTapHttp(mux, guards, backendClient, js, validate)
	inboundHttp.RegisterInquiryHttp(mux, guards, backendClient, mailer, composer, js, validate)
	inboundHttp.RegisterTicketHttp(mux, guards, backendClient, mailer, composer, js, validate)
	inboundHttp.RegisterEmailHttp(mux, guards, mailer, composer, validate)
	inboundHttp.RegisterAdminHttp(mux, cfg, guards, sessions, backendClient, newReports(cfg))

	handler := chi.Chain(
		middleware.RealIP,
		middleware.Recoverer,
		inboundHttp.CorsMiddleware(cfg.GetStringSlice("server.cors.allowed_origins")),
		inboundHttp.TimeoutMiddleware(cfg.GetDuration("server.timeout")),
		inboundHttp.MetricsMiddleware,
	).Handler(mux)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.GetInt("server.port")),
		Handler:           handler,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.GetDuration("server.timeout") + 5*time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalln("unable to start server", err)
		}
	}()

	slog.Info("http server started", slog.String("addr", srv.Addr))

	backendCron := inboundCron.BackendCron{
		Cfg:     cfg,
		Backend: backendClient,
	}

	go func() {
		if err := backendCron.Start(ctx); err != nil {
			slog.Error("unable to start backend health cron", slog.Any(constant.LogFieldErr, err))
		}
	}()

	<-ctx.Done()

	ctxShutDown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutDown); err != nil {
		log.Fatalln("unable to shutdown server", err)
	}

	slog.Info("http server stopped")
}
