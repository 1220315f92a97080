package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"slices"
	"sync"
	"syscall"
	"time"

	"github.com/agbru/convplan/internal/cli"
	apperrors "github.com/agbru/convplan/internal/errors"
	"github.com/agbru/convplan/internal/logging"
	"github.com/agbru/convplan/internal/plan"
	"github.com/agbru/convplan/internal/ui"
)

// runCompile orchestrates the single-shot compile command: parse the shape,
// compile, optionally verify, then render the result.
func (a *Application) runCompile(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	u, v, err := a.resolveShape()
	if err != nil {
		return a.fail(err)
	}

	var opts []plan.Option
	if a.Config.Mask != "" {
		mask, err := plan.ParseMaskSpec(a.Config.Mask)
		if err != nil {
			return a.fail(err)
		}
		opts = append(opts, plan.WithMask(mask))
	}

	start := time.Now()
	p, err := plan.Compile(u, v, opts...)
	if err != nil {
		return a.fail(err)
	}
	duration := time.Since(start)

	a.Log.Debug("plan compiled",
		logging.Int("n", p.N()),
		logging.Int("outputs", p.Outputs()),
		logging.Int("ops", p.Stats().Total()))

	if a.Config.Verify > 0 {
		if code := a.runVerify(ctx, p, out); code != apperrors.ExitSuccess {
			return code
		}
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet || a.Config.Raw,
		Verbose:    a.Config.Verbose,
	}
	if err := cli.DisplayPlanWithConfig(out, p, duration, outputCfg); err != nil {
		return a.fail(err)
	}
	return apperrors.ExitSuccess
}

// runVerify cross-checks the plan against the reference convolution on
// random inputs, animating a spinner unless quiet output was requested.
func (a *Application) runVerify(ctx context.Context, p *plan.Plan, out io.Writer) int {
	rounds := a.Config.Verify

	done := make(chan struct{})
	var wg sync.WaitGroup
	if !a.Config.Quiet && !a.Config.Raw {
		wg.Add(1)
		go cli.DisplayVerifyProgress(&wg, done, rounds, out)
	}

	err := plan.Verify(ctx, p, rounds, a.Config.Seed)
	close(done)
	wg.Wait()

	if err != nil {
		if apperrors.IsContextError(err) {
			return a.fail(err)
		}
		theme := ui.GetCurrentTheme()
		fmt.Fprintf(a.ErrWriter, "%s %v\n", ui.Colorize(theme.Error, "✗ Verification failed:"), err)
		return apperrors.ExitCodeFor(err)
	}

	if !a.Config.Quiet && !a.Config.Raw {
		theme := ui.GetCurrentTheme()
		fmt.Fprintln(out, ui.Colorize(theme.Success,
			fmt.Sprintf("✓ Verified against reference (%d rounds)", rounds)))
	}
	return apperrors.ExitSuccess
}

// resolveShape turns the configured flags into the two operand index
// vectors. -a/-b take priority; -n is the dense shorthand. A missing -b
// mirrors the -a spec.
func (a *Application) resolveShape() (u, v []int, err error) {
	if a.Config.A != "" {
		u, err = plan.ParseIndexSpec(a.Config.A)
		if err != nil {
			return nil, nil, err
		}
		if a.Config.B == "" {
			return u, slices.Clone(u), nil
		}
		v, err = plan.ParseIndexSpec(a.Config.B)
		if err != nil {
			return nil, nil, err
		}
		return u, v, nil
	}

	n := int(a.Config.N)
	u = make([]int, n)
	for i := range u {
		u[i] = i
	}
	return u, slices.Clone(u), nil
}

// fail reports an error on the error writer and maps it to an exit code.
func (a *Application) fail(err error) int {
	if apperrors.IsContextError(err) {
		fmt.Fprintln(a.ErrWriter, "Operation canceled or timed out.")
		return apperrors.ExitErrorCanceled
	}
	theme := ui.GetCurrentTheme()
	fmt.Fprintf(a.ErrWriter, "%s %v\n", ui.Colorize(theme.Error, "Error:"), err)
	return apperrors.ExitCodeFor(err)
}
