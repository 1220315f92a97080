// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayPlanSummary], [DisplayQuietResult], [DisplayVerifyProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatStats], [FormatExecutionDuration].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteSourceToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/convplan/internal/plan"
	"github.com/agbru/convplan/internal/ui"
)

// OutputConfig holds configuration for plan output.
type OutputConfig struct {
	// OutputFile is the path to save the generated source (empty for no
	// file output).
	OutputFile string
	// Quiet mode suppresses everything except the generated source.
	Quiet bool
	// Verbose includes the instruction listing in the summary.
	Verbose bool
	// ShowSource prints the generated source after the summary.
	ShowSource bool
}

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds
// for durations less than a second, and the default string representation
// otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// FormatStats returns a single-line rendering of an operation tally.
//
// Parameters:
//   - stats: The operation counts to format.
//
// Returns:
//   - string: A formatted string such as "mul=9 add=15 sub=12 neg=0 (36 ops)".
func FormatStats(stats plan.Stats) string {
	return fmt.Sprintf("mul=%d add=%d sub=%d neg=%d (%d ops)",
		stats.Mul, stats.Add, stats.Sub, stats.Neg, stats.Total())
}

// DisplayQuietResult outputs only the generated source, suitable for piping
// into another tool.
//
// Parameters:
//   - out: The output writer.
//   - p: The compiled plan.
func DisplayQuietResult(out io.Writer, p *plan.Plan) {
	fmt.Fprint(out, p.Source())
}

// DisplayPlanSummary displays a colorized summary of a compiled plan:
// problem size, output and temporary counts, the operation tally and the
// compile duration.
//
// Parameters:
//   - out: The output writer.
//   - p: The compiled plan.
//   - duration: The compile duration.
//   - verbose: When true, the full instruction listing follows the summary.
func DisplayPlanSummary(out io.Writer, p *plan.Plan, duration time.Duration, verbose bool) {
	theme := ui.GetCurrentTheme()

	fmt.Fprintf(out, "%s\n", ui.Colorize(theme.Bold, "--- Convolution Plan ---"))
	fmt.Fprintf(out, "Input length:      %s\n", ui.Colorize(theme.Primary, fmt.Sprintf("%d", p.N())))
	fmt.Fprintf(out, "Output slots:      %s\n", ui.Colorize(theme.Primary, fmt.Sprintf("%d", p.Outputs())))
	fmt.Fprintf(out, "Temporaries:       %s\n", ui.Colorize(theme.Secondary, fmt.Sprintf("%d", p.Temps())))
	fmt.Fprintf(out, "Operations:        %s\n", ui.Colorize(theme.Info, FormatStats(p.Stats())))
	fmt.Fprintf(out, "Compile time:      %s\n", ui.Colorize(theme.Secondary, FormatExecutionDuration(duration)))

	if verbose {
		fmt.Fprintf(out, "\n%s\n", ui.Colorize(theme.Bold, "Instructions:"))
		for i, instr := range p.Instructions() {
			fmt.Fprintf(out, "  %3d  %s\n", i, instr)
		}
	}
}

// DisplaySource prints the generated source preceded by a short header.
func DisplaySource(out io.Writer, p *plan.Plan) {
	theme := ui.GetCurrentTheme()
	fmt.Fprintf(out, "\n%s\n", ui.Colorize(theme.Bold, "Generated source:"))
	fmt.Fprint(out, p.Source())
}

// WriteSourceToFile writes a compiled plan's source to a file, preceded by a
// generation header.
//
// Parameters:
//   - p: The compiled plan.
//   - duration: The compile duration, recorded in the header.
//   - config: Output configuration; OutputFile selects the destination.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteSourceToFile(p *plan.Plan, duration time.Duration, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Compile time: %s\n", FormatExecutionDuration(duration))
	fmt.Fprintf(file, "# Operations: %s\n", FormatStats(p.Stats()))
	fmt.Fprintf(file, "\n")
	fmt.Fprint(file, p.Source())

	return nil
}

// DisplayPlanWithConfig displays a compiled plan according to the given
// output configuration. This is a unified function that handles all output
// modes.
//
// Parameters:
//   - out: The output writer.
//   - p: The compiled plan.
//   - duration: The compile duration.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if file output fails.
func DisplayPlanWithConfig(out io.Writer, p *plan.Plan, duration time.Duration, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, p)
	} else {
		DisplayPlanSummary(out, p, duration, config.Verbose)
		if config.ShowSource {
			DisplaySource(out, p)
		}
	}

	if config.OutputFile != "" {
		if err := WriteSourceToFile(p, duration, config); err != nil {
			return err
		}
		if !config.Quiet {
			theme := ui.GetCurrentTheme()
			fmt.Fprintf(out, "\n%s %s\n",
				ui.Colorize(theme.Success, "✓ Plan saved to:"),
				ui.Colorize(theme.Info, config.OutputFile))
		}
	}

	return nil
}
