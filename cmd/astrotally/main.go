// Package main provides the CLI entrypoint for astrotally.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/astrotally/internal/config"
	"github.com/verte-zerg/astrotally/internal/export"
	"github.com/verte-zerg/astrotally/internal/model"
	"github.com/verte-zerg/astrotally/internal/render"
	"github.com/verte-zerg/astrotally/internal/scan"
	"github.com/verte-zerg/astrotally/internal/stats"
	"github.com/verte-zerg/astrotally/internal/statsui"
)

const (
	defaultFormat     = "text"
	defaultExportName = "campaign.csv"
)

var validFormats = []string{"text", "table", "yaml"}

var (
	analyzeTargetHours float64
	analyzePattern     string
	analyzeCSV         string
	analyzeFormat      string
	analyzeColor       bool
	analyzeVerbose     bool
)

type analyzeConfig struct {
	Root        string
	TargetHours float64
	Pattern     string
	CSVPath     string
	Format      string
	Color       bool
	Verbose     bool
}

func (c analyzeConfig) targetSeconds() float64 {
	return c.TargetHours * 3600
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "astrotally",
		Short:         "Tally imaging time across astrophotography session folders",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newViewCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func addAnalyzeFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&analyzeTargetHours, "target-hours", stats.DefaultTargetHours, "light imaging hours the campaign aims for")
	cmd.Flags().StringVar(&analyzePattern, "pattern", stats.DefaultPattern, "glob for frame file names (case-insensitive)")
	cmd.Flags().StringVar(&analyzeCSV, "csv", "", "write the report rows to this CSV file")
	cmd.Flags().BoolVar(&analyzeColor, "color", true, "style output when writing to a terminal")
	cmd.Flags().BoolVar(&analyzeVerbose, "verbose", false, "log each scanned session to stderr")
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [root]",
		Short: "Analyze a folder of session directories and print the report",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAnalyzeCmd,
	}
	addAnalyzeFlags(cmd)
	cmd.Flags().StringVar(&analyzeFormat, "format", defaultFormat, "output format: text, table or yaml")
	return cmd
}

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [root]",
		Short: "Browse the report interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runViewCmd,
	}
	addAnalyzeFlags(cmd)
	return cmd
}

func loadAnalyzeConfig(cmd *cobra.Command, args []string) (analyzeConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return analyzeConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyFloatConfig(cmd, "target-hours", &analyzeTargetHours, fileCfg.Analyze.TargetHours)
	applyStringConfig(cmd, "pattern", &analyzePattern, fileCfg.Analyze.Pattern)
	applyStringConfig(cmd, "csv", &analyzeCSV, fileCfg.Analyze.CSVPath)
	applyStringConfig(cmd, "format", &analyzeFormat, fileCfg.Analyze.Format)
	applyBoolConfig(cmd, "color", &analyzeColor, fileCfg.Analyze.Color)

	cfg := analyzeConfig{
		Root:        resolveRoot(args, fileCfg.Analyze.Root),
		TargetHours: analyzeTargetHours,
		Pattern:     analyzePattern,
		CSVPath:     analyzeCSV,
		Format:      analyzeFormat,
		Color:       analyzeColor,
		Verbose:     analyzeVerbose,
	}
	if cfg.Format == "" {
		cfg.Format = defaultFormat
	}
	if err := validateConfig(cfg); err != nil {
		return analyzeConfig{}, err
	}
	return cfg, nil
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadAnalyzeConfig(cmd, args)
	if err != nil {
		return err
	}
	result, err := analyze(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	useColor := cfg.Color && render.ShouldUseColor(out)
	progress := stats.CampaignProgress(result, cfg.targetSeconds())
	if err := writeResult(out, cfg, result, progress, useColor); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if cfg.CSVPath != "" {
		if err := export.WriteLines(cfg.CSVPath, result.CSVRows); err != nil {
			return err
		}
		logErrln("CSV file saved successfully.")
	}
	return nil
}

func writeResult(w io.Writer, cfg analyzeConfig, result model.CampaignResult, progress model.Progress, useColor bool) error {
	barWidth := render.BarWidth(render.TerminalWidth())
	switch cfg.Format {
	case "yaml":
		return render.YAML(w, render.NewSummary(result, progress, cfg.targetSeconds()))
	case "table":
		if err := stats.RenderFilterTable(w, model.FrameLight, result.Lights); err != nil {
			return err
		}
		if err := stats.RenderFilterTable(w, model.FrameFlat, result.Flats); err != nil {
			return err
		}
		if err := stats.RenderSessions(w, result.Sessions); err != nil {
			return err
		}
		return render.Progress(w, progress, barWidth, useColor)
	default:
		var sink render.Sink = render.Writer{W: w, Color: useColor}
		if err := sink.Render(result.Segments); err != nil {
			return err
		}
		return render.Progress(w, progress, barWidth, useColor)
	}
}

func runViewCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadAnalyzeConfig(cmd, args)
	if err != nil {
		return err
	}
	if _, err := analyze(cfg); err != nil {
		return err
	}
	csvPath := cfg.CSVPath
	if csvPath == "" {
		csvPath = filepath.Join(cfg.Root, defaultExportName)
	}

	ui := statsui.NewModel(statsui.Options{
		Analyze: func() (model.CampaignResult, error) {
			return analyze(cfg)
		},
		Export: func(rows []string) error {
			return export.WriteLines(csvPath, rows)
		},
		CSVPath:       csvPath,
		TargetSeconds: cfg.targetSeconds(),
	})
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run report TUI: %w", err)
	}
	return nil
}

func analyze(cfg analyzeConfig) (model.CampaignResult, error) {
	opts := stats.Options{Pattern: cfg.Pattern}
	if cfg.Verbose {
		opts.Logf = logErrf
	}
	result, err := stats.Analyze(scan.FS{}, cfg.Root, opts)
	if err != nil {
		var scanErr *scan.ScanError
		if errors.As(err, &scanErr) && scanErr.Path == cfg.Root {
			logErrln("Please select a valid directory.")
		}
		return model.CampaignResult{}, fmt.Errorf("failed to analyze %s: %w", cfg.Root, err)
	}
	return result, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# astrotally configuration
# Uncomment a value to enable it. CLI flags override config values.

[analyze]
# root = "/path/to/campaign"   # Folder holding one subdirectory per session
# target-hours = %.1f          # Light imaging hours the campaign aims for
# pattern = %q            # Glob for frame file names (case-insensitive)
# csv = "campaign.csv"         # Export the report rows after each analysis
# format = %q               # Output format: text, table or yaml
# color = true                 # Style output when writing to a terminal
`,
		stats.DefaultTargetHours,
		stats.DefaultPattern,
		defaultFormat,
	)
}

func validateConfig(cfg analyzeConfig) error {
	if strings.TrimSpace(cfg.Root) == "" {
		return fmt.Errorf("no root folder given; pass one as an argument or set root in %s", config.DefaultConfigPath())
	}
	if cfg.TargetHours <= 0 {
		return fmt.Errorf("--target-hours must be > 0")
	}
	if _, err := scan.CompilePattern(cfg.Pattern); err != nil {
		return fmt.Errorf("--pattern: %w", err)
	}
	if !isValidFormat(cfg.Format) {
		return fmt.Errorf("--format must be one of %s", strings.Join(validFormats, ", "))
	}
	return nil
}

func isValidFormat(format string) bool {
	for _, f := range validFormats {
		if f == format {
			return true
		}
	}
	return false
}

func resolveRoot(args []string, configured *string) string {
	if len(args) > 0 {
		return args[0]
	}
	if configured != nil {
		return *configured
	}
	return ""
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
