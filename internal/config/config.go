// Package config holds the application configuration and its resolution
// chain: CLI flags take priority over CONVPLAN_-prefixed environment
// variables, which take priority over built-in defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/convplan/internal/errors"
)

// EnvPrefix is prepended to every environment variable the application
// reads.
const EnvPrefix = "CONVPLAN_"

// DefaultTimeout bounds a single CLI run, including verification.
const DefaultTimeout = 2 * time.Minute

// AppConfig holds the complete application configuration.
type AppConfig struct {
	// N is the dense-shape shorthand: input length with all positions
	// present (indexes 0..N-1 on both operands). Ignored when A or B is
	// set.
	N uint64
	// A and B are index specifications for the two operands, e.g.
	// "0,1,_,3" or "0..7".
	A string
	B string
	// Mask selects output coefficients, as a bitstring or comma list;
	// empty means all.
	Mask string
	// Raw prints the generated procedure source instead of the summary.
	Raw bool
	// Verify is the number of randomized cross-checks against the
	// reference convolution; 0 disables verification.
	Verify int
	// Seed is the base seed for verification rounds.
	Seed int64
	// OutputFile is the path to save the generated source (empty for none).
	OutputFile string
	// ServeAddr, when non-empty, starts the HTTP compile service on the
	// given address instead of compiling once.
	ServeAddr string
	// Timeout bounds a single run.
	Timeout time.Duration
	// Quiet suppresses everything except the requested artifact.
	Quiet bool
	// Verbose enables debug logging and the full statement listing.
	Verbose bool
}

// ParseConfig parses command-line arguments into an AppConfig, applying
// environment overrides for flags that were not explicitly set.
//
// Parameters:
//   - programName: The name used in usage output.
//   - args: The command-line arguments, excluding the program name.
//   - errWriter: Where usage and parse errors are written.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp if help was requested, or a ConfigError.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := AppConfig{Timeout: DefaultTimeout}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.Uint64Var(&cfg.N, "n", 0, "dense input length (power of two); shorthand for -a 0..n-1 -b 0..n-1")
	fs.StringVar(&cfg.A, "a", "", "index spec for the first operand, e.g. \"0,1,_,3\" or \"0..7\"")
	fs.StringVar(&cfg.B, "b", "", "index spec for the second operand (defaults to the spec of -a)")
	fs.StringVar(&cfg.Mask, "mask", "", "output selection mask (bitstring or comma list), length 2n")
	fs.BoolVar(&cfg.Raw, "raw", false, "print the generated procedure source")
	fs.IntVar(&cfg.Verify, "verify", 0, "cross-check the plan against the reference on N random inputs")
	fs.Int64Var(&cfg.Seed, "seed", 1, "base seed for verification rounds")
	fs.StringVar(&cfg.OutputFile, "o", "", "write the generated source to a file")
	fs.StringVar(&cfg.OutputFile, "output", "", "write the generated source to a file")
	fs.StringVar(&cfg.ServeAddr, "serve", "", "run the HTTP compile service on this address, e.g. :8080")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "run timeout")
	fs.BoolVar(&cfg.Quiet, "q", false, "suppress everything except the requested artifact")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "suppress everything except the requested artifact")
	fs.BoolVar(&cfg.Verbose, "v", false, "enable debug logging and the full statement listing")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "enable debug logging and the full statement listing")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [options]\n\n", programName)
		fmt.Fprintf(errWriter, "Compiles a shape-specific fast-convolution procedure.\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&cfg, fs)

	if err := validate(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// validate checks flag combinations that the compiler cannot resolve.
func validate(cfg AppConfig) error {
	if cfg.ServeAddr != "" {
		return nil
	}
	if cfg.N == 0 && cfg.A == "" {
		return apperrors.NewConfigError("nothing to compile: provide -n or -a (see --help)")
	}
	if cfg.Verify < 0 {
		return apperrors.NewConfigError("-verify must be non-negative, got %d", cfg.Verify)
	}
	return nil
}
