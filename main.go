package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rfielding/modalmu/transformer"
)

type options struct {
	debug           bool
	nodesize        int
	cachesize       int
	checkInvariants bool
	metrics         bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	log := logrus.New()

	rootCmd := &cobra.Command{
		Use:   "modalmu",
		Short: "Modal mu-calculus model checker for context-free process systems",
		Long: `modalmu checks alternation-free modal mu-calculus properties of process
systems whose rules may call other processes, and renders their expansion.

A model is either the name of a built-in model (see "modalmu models") or a
YAML model file.`,
		SilenceUsage: true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(cmd.ErrOrStderr())
			if opts.debug {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.IntVar(&opts.nodesize, "nodesize", transformer.DefaultNodeSize, "initial node table size of the decision diagram")
	flags.IntVar(&opts.cachesize, "cachesize", transformer.DefaultCacheSize, "initial cache size of the decision diagram")
	flags.BoolVar(&opts.checkInvariants, "check-invariants", false, "verify that every solver update is monotone")
	flags.BoolVar(&opts.metrics, "metrics", false, "print solver metrics in Prometheus text format after checking")

	rootCmd.AddCommand(
		newCheckCmd(opts, log),
		newDotCmd(),
		newMermaidCmd(),
		newModelsCmd(),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
