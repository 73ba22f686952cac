package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/flier/poolheap/internal/debug"
	"github.com/flier/poolheap/pkg/poolheap"
	"github.com/flier/poolheap/pkg/xerrors"
)

// NewRunCommand runs one named scenario, or every scenario with --all
// (the original harness's "argument 0" meaning "run all").
func NewRunCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "Run one scenario, or every scenario with --all",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				return runAll(cmd)
			}
			if len(args) != 1 {
				return fmt.Errorf("run: specify a scenario name or pass --all")
			}
			s, err := lookup(args[0])
			if err != nil {
				return err
			}
			return runOne(cmd, s)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "run every scenario in order")

	return cmd
}

func lookup(name string) (scenario, error) {
	for _, s := range scenarios {
		if s.name == name {
			return s, nil
		}
	}
	return scenario{}, fmt.Errorf("run: no such scenario %q (see `poolharness list`)", name)
}

func runAll(cmd *cobra.Command) error {
	var failed int
	for _, s := range scenarios {
		if err := runOne(cmd, s); err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d scenario(s) failed", failed)
	}
	return nil
}

func runOne(cmd *cobra.Command, s scenario) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "  Running %s (%s) ---> ", s.name, s.desc)
	debug.Log(nil, "scenario", "start name=%s", s.name)

	p, err := s.run()
	if err != nil {
		color.New(color.FgRed).Fprintln(out, "[FAIL].")
		fmt.Fprintf(out, "    %s\n", err)
		if cause := diagnoseCause(p.LastError()); cause != "" {
			fmt.Fprintf(out, "    cause: %s\n", cause)
		}
		debug.Log(nil, "scenario", "fail name=%s err=%s", s.name, err)
		return err
	}

	color.New(color.FgGreen).Fprintln(out, "[PASS].")
	debug.Log(nil, "scenario", "pass name=%s", s.name)

	return nil
}

// diagnoseCause classifies the pool's last diagnosed error, if any, into
// a human-readable cause line. It returns "" when the failing scenario's
// expectation was violated by the allocator's return value rather than
// by a reported diagnostic (e.g. "alloc unexpectedly succeeded").
func diagnoseCause(lastErr error) string {
	if addrErr, ok := xerrors.AsA[*poolheap.InvalidAddressError](lastErr); ok {
		return addrErr.Error()
	}
	if oomErr, ok := xerrors.AsA[*poolheap.OutOfMemoryError](lastErr); ok {
		return oomErr.Error()
	}
	if sizeErr, ok := xerrors.AsA[*poolheap.DegenerateSizeError](lastErr); ok {
		return sizeErr.Error()
	}
	return ""
}
