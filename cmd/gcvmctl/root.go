package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/joshuapare/gcvm/cmd/gcvmctl/logger"
	"github.com/joshuapare/gcvm/printer"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	logDir  string
	locale  string
)

var rootCmd = &cobra.Command{
	Use:   "gcvmctl",
	Short: "Drive the gcvm mark-and-sweep collector",
	Long: `gcvmctl runs demonstration programs and performance loops against the
gcvm toy VM and reports what its mark-and-sweep collector reclaims.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		return logger.Init(logger.Options{
			Enabled: verbose || logDir != "",
			LogDir:  logDir,
			Level:   level,
		})
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug logging")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Write JSON logs to this directory")
	rootCmd.PersistentFlags().StringVar(&locale, "locale", "en", "Locale for number formatting (BCP 47 tag)")
}

func execute() {
	err := rootCmd.Execute()
	if cerr := logger.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("closing log file: %w", cerr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// headingStyle renders section headings. Color is dropped automatically when
// stdout is not a terminal.
var headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

// printHeading prints a styled heading line if not in quiet mode
func printHeading(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintln(os.Stdout, headingStyle.Render(fmt.Sprintf(format, args...)))
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// stdout returns the writer for regular output, honoring --quiet
func stdout() io.Writer {
	if quiet {
		return io.Discard
	}
	return os.Stdout
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// newReporter builds a report formatter for the --locale flag.
func newReporter() (*printer.Reporter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid --locale %q: %w", locale, err)
	}
	return printer.NewReporter(tag), nil
}

// formatBytes renders a byte count with a binary unit suffix.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
