package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rfielding/modalmu/models"
	"github.com/rfielding/modalmu/solver"
)

func newCheckCmd(opts *options, log logrus.FieldLogger) *cobra.Command {
	return &cobra.Command{
		Use:   "check <model>",
		Short: "Check every property of a model",
		Long: `Check every property of a model against its initial process and report
PASS or FAIL for properties that record an expected verdict.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := models.Load(args[0])
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			solverOpts := []solver.Option{
				solver.WithLogger(log.WithField("model", m.Name())),
				solver.WithNodeSize(opts.nodesize),
				solver.WithCacheSize(opts.cachesize),
			}
			if opts.checkInvariants {
				solverOpts = append(solverOpts, solver.WithInvariantChecks())
			}
			if opts.metrics {
				metrics, err := solver.NewMetrics(reg)
				if err != nil {
					return err
				}
				solverOpts = append(solverOpts, solver.WithMetrics(metrics))
			}

			failed, err := check(cmd.OutOrStdout(), m, solverOpts...)
			if err != nil {
				return err
			}
			if opts.metrics {
				if err := writeMetrics(cmd.OutOrStdout(), reg); err != nil {
					return err
				}
			}
			if failed > 0 {
				return errors.Errorf("%d of %d properties failed", failed, len(m.Properties()))
			}
			return nil
		},
	}
}

// check runs every property of m and returns the number of properties
// whose verdict differs from the expected one.
func check(w io.Writer, m models.ModelSpec, opts ...solver.Option) (int, error) {
	sys := m.System()
	fmt.Fprintf(w, "Model %s (initial %s)\n", m.Name(), sys.Initial())

	var failed int
	for _, p := range m.Properties() {
		holds, err := solver.Satisfies(sys, p.Formula, sys.Initial(), opts...)
		if err != nil {
			return failed, errors.Wrapf(err, "checking %s", p.Name)
		}
		switch {
		case p.Expect == nil:
			fmt.Fprintf(w, "%-5s %s\n", verdict(holds), p.Name)
		case *p.Expect == holds:
			fmt.Fprintf(w, "PASS: %s\n", p.Name)
		default:
			failed++
			fmt.Fprintf(w, "FAIL: %s\n", p.Name)
			fmt.Fprintf(w, "  (expected %s, got %s)\n", verdict(*p.Expect), verdict(holds))
		}
		if p.Description != "" {
			fmt.Fprintf(w, "  %s\n", p.Description)
		}
	}
	return failed, nil
}

func verdict(holds bool) string {
	if holds {
		return "true"
	}
	return "false"
}

func writeMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return errors.Wrap(err, "gathering metrics")
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.Wrap(err, "writing metrics")
		}
	}
	return nil
}

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the built-in models",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, m := range models.All() {
				summary := strings.SplitN(m.Description(), "\n", 2)[0]
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", m.Name(), summary)
			}
		},
	}
}
