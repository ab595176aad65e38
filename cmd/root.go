package cmd

import (
	"context"
	"github.com/spf13/cobra"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func Start() {
	cfg := newCfg("env")
	slog.SetLogLoggerLevel(slog.Level(cfg.GetInt("log.level")))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := &cobra.Command{
		Use:   "infinitech-web",
		Short: "Infinitech website service",
	}
	cmd := []*cobra.Command{
		{
			Use:   "serve-http",
			Short: "Run HTTP server",
			Run: func(cmd *cobra.Command, args []string) {
				runHttpServerCmd(ctx, cfg)
			},
		},
		{
			Use:   "report:survey <id> [output]",
			Short: "Render a discovery survey PDF report",
			Args:  cobra.RangeArgs(1, 2),
			Run: func(cmd *cobra.Command, args []string) {
				runSurveyReportCmd(ctx, cfg, args)
			},
		},
		{
			Use:   "report:juantap <id> [output]",
			Short: "Render a JuanTap profile PDF report",
			Args:  cobra.RangeArgs(1, 2),
			Run: func(cmd *cobra.Command, args []string) {
				runJuanTapReportCmd(ctx, cfg, args)
			},
		},
		newSubmitJuanTapCmd(ctx, cfg),
	}

	rootCmd.AddCommand(cmd...)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatalln(err)
	}
}
