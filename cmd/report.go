package cmd

import (
	"bytes"
	"context"
	"github.com/spf13/viper"
	"infinitech-web/common/constant"
	"log"
	"log/slog"
	"os"
)

func runSurveyReportCmd(ctx context.Context, cfg *viper.Viper, args []string) {
	backendClient := newBackend(cfg)
	reports := newReports(cfg)

	survey, err := backendClient.FindSurvey(ctx, args[0])
	if err != nil {
		log.Fatalln("unable to load survey", err)
	}

	var buf bytes.Buffer
	filename, err := reports.Survey(ctx, &buf, *survey)
	if err != nil {
		log.Fatalln("unable to render survey report", err)
	}

	writeReport(buf.Bytes(), filename, args)
}

func runJuanTapReportCmd(ctx context.Context, cfg *viper.Viper, args []string) {
	backendClient := newBackend(cfg)
	reports := newReports(cfg)

	survey, err := backendClient.GetJuanTapSurvey(ctx, args[0])
	if err != nil {
		log.Fatalln("unable to load juantap survey", err)
	}

	var buf bytes.Buffer
	filename, err := reports.JuanTap(ctx, &buf, *survey)
	if err != nil {
		log.Fatalln("unable to render juantap report", err)
	}

	writeReport(buf.Bytes(), filename, args)
}

// writeReport saves to the optional second argument, or to the generated
// filename in the working directory.
func writeReport(content []byte, filename string, args []string) {
	out := filename
	if len(args) > 1 && args[1] != "" {
		out = args[1]
	}

	if err := os.WriteFile(out, content, 0o644); err != nil {
		slog.Error("unable to write report", slog.String("path", out), slog.Any(constant.LogFieldErr, err))
		os.Exit(1)
	}

	slog.Info("report written", slog.String("path", out), slog.Int("bytes", len(content)))
}
