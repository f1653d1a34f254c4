package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/site-builder-backend/config"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/bootstrap"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/logging"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/catalog"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/classifier"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/export"
)

var rootCmd = &cobra.Command{
	Use:           "worker",
	Short:         "Maintenance commands for the site builder",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var classifyCmd = &cobra.Command{
	Use:   "classify <text>",
	Short: "Print the industry labels and suggested services for a business name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		labels := classifier.Classify(text)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "labels: %s\n", strings.Join(labels, ", "))
		for _, s := range catalog.Default().Union(labels, catalog.UnionLimit) {
			fmt.Fprintf(out, "- %s\n", s)
		}
		return nil
	},
}

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <project-id>",
	Short: "Write the zip bundle of a completed project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		p, _, services, err := app.Repo.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		bundle, err := export.Build(p, services)
		if err != nil {
			return err
		}

		path := exportOut
		if path == "" {
			path = bundle.Filename
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := bundle.WriteZip(f); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Pause stale projects once",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		n, err := app.Sweeper.RunOnce(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "paused %d project(s)\n", n)
		return nil
	},
}

func openApp(ctx context.Context) (*bootstrap.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if _, err := logging.Init(cfg.App.LogLevel, cfg.App.LogFormat); err != nil {
		return nil, err
	}
	return bootstrap.NewApp(ctx, cfg)
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "output file (default <Business_Name>_website.zip)")

	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(sweepCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
