package report

import (
	"context"
	"fmt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel/attribute"
	"infinitech-web/common"
	"infinitech-web/common/constant"
	"infinitech-web/common/otel"
	"infinitech-web/model"
	"io"
	"log/slog"
	"time"
)

const (
	KindSurvey  = "survey"
	KindJuanTap = "juantap"
)

var reportsGeneratedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "reports_generated_total",
		Help: "PDF reports rendered by kind and result",
	},
	[]string{"kind", "result"},
)

type Generator struct {
	Renderer *Renderer
	Location *time.Location
}

func NewGenerator(logoPath string, loc *time.Location) *Generator {
	if loc == nil {
		loc = time.UTC
	}
	return &Generator{Renderer: NewRenderer(logoPath), Location: loc}
}

// Survey writes the survey PDF to w and returns its download filename.
func (g *Generator) Survey(ctx context.Context, w io.Writer, s model.Survey) (string, error) {
	return g.generate(ctx, w, KindSurvey, SurveyDocument(s, g.Location))
}

func (g *Generator) JuanTap(ctx context.Context, w io.Writer, s model.JuanTapSurvey) (string, error) {
	return g.generate(ctx, w, KindJuanTap, JuanTapDocument(s, g.Location))
}

func (g *Generator) generate(ctx context.Context, w io.Writer, kind string, doc *Document) (string, error) {
	ctx, span := otel.Tracer.Start(ctx, "ReportGenerator.Generate")
	defer span.End()

	span.SetAttributes(attribute.String("report.kind", kind), attribute.String("report.filename", doc.Filename))
	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	pages, err := g.Renderer.Render(w, doc)
	if err != nil {
		reportsGeneratedTotal.WithLabelValues(kind, "error").Inc()
		slog.ErrorContext(ctx, "failed to render report", traceIdAttr, slog.String("kind", kind), slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		return "", fmt.Errorf("render %s report: %w", kind, err)
	}

	reportsGeneratedTotal.WithLabelValues(kind, "success").Inc()
	slog.DebugContext(ctx, "report rendered", traceIdAttr, slog.String("filename", doc.Filename), slog.Int("pages", pages))

	return doc.Filename, nil
}
