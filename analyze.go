package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/seo-analyzer/seo-analyzer/analyzer"
	"github.com/seo-analyzer/seo-analyzer/config"
	"github.com/seo-analyzer/seo-analyzer/fetch"
	"github.com/seo-analyzer/seo-analyzer/keywords"
	"github.com/seo-analyzer/seo-analyzer/logging"
	"github.com/seo-analyzer/seo-analyzer/report"
)

var (
	analyzeOutput    string
	analyzeTimeout   time.Duration
	analyzeUserAgent string
	analyzeWordlists string
	analyzeRender    bool
	analyzeLogLevel  string
	analyzeNoColor   bool
)

func init() {
	defaults := config.Defaults()

	rootCmd.Flags().StringVarP(&analyzeOutput, "output", "o", defaults.OutputPath, "Path for the JSON analysis artifact")
	rootCmd.Flags().DurationVar(&analyzeTimeout, "timeout", defaults.Timeout, "HTTP fetch timeout")
	rootCmd.Flags().StringVar(&analyzeUserAgent, "user-agent", defaults.UserAgent, "User-Agent header sent when fetching")
	rootCmd.Flags().StringVar(&analyzeWordlists, "wordlists", "", "YAML file replacing the built-in stop words and target keywords")
	rootCmd.Flags().BoolVar(&analyzeRender, "render", false, "Render the page in a headless browser before analyzing (requires Chrome)")
	rootCmd.Flags().StringVar(&analyzeLogLevel, "log-level", defaults.LogLevel, "Log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&analyzeNoColor, "no-color", false, "Disable colored report output")
}

// pipelineOptions carries everything one analysis run needs.
type pipelineOptions struct {
	URL       string
	Render    bool
	Wordlists *config.Wordlists
	Settings  config.Settings
	Logger    *slog.Logger
	Out       io.Writer
	Colored   bool
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	// Arguments are valid past this point; later failures should not
	// dump usage text.
	cmd.SilenceUsage = true

	// Flags override environment, environment overrides defaults.
	settings := config.FromEnv()
	if cmd.Flags().Changed("output") {
		settings.OutputPath = analyzeOutput
	}
	if cmd.Flags().Changed("timeout") {
		settings.Timeout = analyzeTimeout
	}
	if cmd.Flags().Changed("user-agent") {
		settings.UserAgent = analyzeUserAgent
	}
	if cmd.Flags().Changed("log-level") {
		settings.LogLevel = analyzeLogLevel
	}

	if analyzeNoColor {
		color.NoColor = true
	}

	logger := logging.New(settings.LogLevel)

	wordlists := config.DefaultWordlists()
	if analyzeWordlists != "" {
		loaded, err := config.LoadWordlists(analyzeWordlists)
		if err != nil {
			return fmt.Errorf("failed to load word lists: %w", err)
		}
		wordlists = loaded
	}

	artifact, err := runPipeline(cmd.Context(), pipelineOptions{
		URL:       args[0],
		Render:    analyzeRender,
		Wordlists: wordlists,
		Settings:  settings,
		Logger:    logger,
		Out:       os.Stdout,
		Colored:   !color.NoColor,
	})
	if err != nil {
		return err
	}

	if err := report.WriteArtifact(settings.OutputPath, artifact); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}

	logger.Info("analysis saved", "path", settings.OutputPath, "score", artifact.Report.Score)

	return nil
}

// runPipeline fetches one page, extracts its SEO signals, evaluates them
// and renders the report to opts.Out. The returned artifact has not been
// written to disk yet.
func runPipeline(ctx context.Context, opts pipelineOptions) (*report.Artifact, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	fetchOpts := &fetch.Options{
		Timeout:   opts.Settings.Timeout,
		UserAgent: opts.Settings.UserAgent,
	}
	ranker := keywords.New(keywords.Options{
		MinLength:   opts.Settings.MinWordLength,
		MaxKeywords: opts.Settings.MaxKeywords,
		StopWords:   opts.Wordlists.StopWords,
	})
	seo := analyzer.New(fetch.NewClient(fetchOpts), ranker)

	logger.Info("Analyzing website", "url", opts.URL, "render", opts.Render)
	start := time.Now()

	var (
		analysis *analyzer.PageAnalysis
		err      error
	)
	if opts.Render {
		var html string
		html, err = fetch.Rendered(ctx, opts.URL, fetchOpts)
		if err == nil {
			analysis, err = seo.Extract(html, opts.URL)
		}
	} else {
		analysis, err = seo.Analyze(ctx, opts.URL)
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching page: %w", err)
	}

	logger.Debug("page analyzed",
		"duration", time.Since(start),
		"words", analysis.WordCount,
		"images", analysis.TotalImages)

	evaluator := analyzer.NewEvaluator(opts.Wordlists.TargetKeywords)
	issues, recommendations := evaluator.Evaluate(analysis)
	rep := report.Build(issues, recommendations)

	report.NewRenderer(opts.Out, opts.Colored).Render(analysis, rep)

	return report.NewArtifact(analysis, rep), nil
}
