package cron

import (
	"context"
	"fmt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"infinitech-web/common"
	"infinitech-web/common/constant"
	"infinitech-web/common/otel"
	"infinitech-web/common/vars"
	"infinitech-web/model"
	"log/slog"
	"time"
)

const defaultProbeSpec = "@every 30s"

var backendUp = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "backend_up",
		Help: "Whether the last backend health probe succeeded",
	},
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// BackendCron probes the external backend on a schedule and publishes the
// result through vars for /health and the admin dashboard.
type BackendCron struct {
	Cfg     *viper.Viper
	Backend Pinger
	TimeNow func() time.Time
}

func (in BackendCron) Start(ctx context.Context) error {
	spec := in.Cfg.GetString("cron.backend_health.spec")
	if spec == "" {
		spec = defaultProbeSpec
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, func() { in.probe(ctx) }); err != nil {
		return fmt.Errorf("schedule backend probe %q: %w", spec, err)
	}

	// Run initial probe
	in.probe(ctx)

	c.Start()
	slog.Info("backend health cron started", slog.String("spec", spec))

	<-ctx.Done()
	<-c.Stop().Done()

	slog.Info("backend health cron stopped")
	return nil
}

func (in BackendCron) probe(ctx context.Context) {
	ctx, span := otel.Tracer.Start(ctx, "BackendCron.probe")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	now := in.now()

	err := in.Backend.Ping(ctx)

	status := model.BackendStatus{
		Up:        err == nil,
		CheckedAt: now,
		LatencyMs: in.now().Sub(now).Milliseconds(),
	}

	if err != nil {
		status.Error = err.Error()
		backendUp.Set(0)
		common.UtilSpanError(span, err)
		slog.WarnContext(ctx, "backend health probe failed", traceIdAttr, slog.Any(constant.LogFieldErr, err))
	} else {
		backendUp.Set(1)
		slog.DebugContext(ctx, "backend health probe succeeded", traceIdAttr, slog.Int64("latency_ms", status.LatencyMs))
	}

	vars.SetBackendStatus(status)
}

func (in BackendCron) now() time.Time {
	if in.TimeNow == nil {
		return time.Now()
	}
	return in.TimeNow()
}
