package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"UploadTimeAdvisor/internal/app"
	"UploadTimeAdvisor/internal/config"
	"UploadTimeAdvisor/internal/domain"
	"UploadTimeAdvisor/internal/logging"
	"UploadTimeAdvisor/internal/timeexpr"
)

type cli struct {
	cfgFile  string
	logLevel string
	cfg      config.Config
	logger   *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "uploadtimeadvisor",
		Short: "Upload time recommendations for Korean content creators",
		Long: `uploadtimeadvisor recommends when to publish content, based on the
Korean holiday calendar, per-category audience peak times and a language model.

Example usage:
  uploadtimeadvisor serve                          # Run the HTTP API
  uploadtimeadvisor recommend --category gaming    # Today's recommendation
  uploadtimeadvisor weekly --start 2024-02-08      # Seven-day plan
  uploadtimeadvisor extract "오후 3시가 좋습니다"     # Pull a time out of text`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			c.cfg = c.loadConfig()
			if c.logLevel != "" {
				c.cfg.Logging.Level = c.logLevel
			}
			c.logger = logging.NewWithWriter(cmd.ErrOrStderr(), c.cfg.Logging.Level)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default: $UPLOAD_ADVISOR_CONFIG)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "override logging.level")

	root.AddCommand(
		c.serveCmd(),
		c.recommendCmd(),
		c.weeklyCmd(),
		c.statsCmd(),
		c.extractCmd(),
		c.syncHolidaysCmd(),
	)
	return root
}

func (c *cli) loadConfig() config.Config {
	if c.cfgFile != "" {
		return config.LoadFrom(c.cfgFile)
	}
	return config.Load()
}

func (c *cli) open(cmd *cobra.Command) (*app.Application, error) {
	return app.New(cmd.Context(), c.cfg, c.logger)
}

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the digest scheduler",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.cfg.ValidateGeneration(); err != nil {
				return err
			}
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			return a.Serve(cmd.Context())
		},
	}
}

func (c *cli) recommendCmd() *cobra.Command {
	var date, category string

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend an upload time for one day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			day, err := resolveDate(date, a.Today())
			if err != nil {
				return err
			}
			rec, err := a.Recommender().RecommendForDate(cmd.Context(), day, domain.Category(category))
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), rec)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to plan, YYYY-MM-DD (default: today)")
	cmd.Flags().StringVarP(&category, "category", "c", string(domain.DefaultCategory), "content category")
	return cmd
}

func (c *cli) weeklyCmd() *cobra.Command {
	var start, category string

	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Recommend upload times for seven consecutive days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			day, err := resolveDate(start, a.Today())
			if err != nil {
				return err
			}
			week, err := a.Recommender().RecommendForWeek(cmd.Context(), day, domain.Category(category))
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), week)
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "first day, YYYY-MM-DD (default: today)")
	cmd.Flags().StringVarP(&category, "category", "c", string(domain.DefaultCategory), "content category")
	return cmd
}

func (c *cli) statsCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print peak-time statistics for a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			return writeJSON(cmd.OutOrStdout(), a.Recommender().StatsForCategory(domain.Category(category)))
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", string(domain.DefaultCategory), "content category")
	return cmd
}

func (c *cli) extractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <text>",
		Short: "Extract a normalized time expression from text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), map[string]*string{
				"extractedTime": timeexpr.ExtractPtr(args[0]),
			})
		},
	}
}

func (c *cli) syncHolidaysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync-holidays",
		Short: "Load configured holiday sources into Postgres",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.SyncHolidays(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "synced %d holidays\n", n)
			return nil
		},
	}
}

func resolveDate(value string, today domain.Date) (domain.Date, error) {
	if value == "" {
		return today, nil
	}
	return domain.ParseDate(value)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
