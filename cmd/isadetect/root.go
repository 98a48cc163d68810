package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// corpusDir is the default reference corpus directory, relative to the
// working directory the binary is invoked from. Mirrors the teacher's
// data/corpus/ convention in cmd/keycraft/main.go.
const corpusDir = "data/corpus/"

var (
	debug      bool
	quiet      bool
	verbose    bool
	bigFile    bool
	plotCorpus bool
	plotDivs   bool
	noPlots    bool
	noOut      bool
	corpusPath string
)

var rootCmd = &cobra.Command{
	Use:   "isadetect [files...]",
	Short: "Detect machine-code architecture by byte n-gram statistics",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configureLogging()
		return runAll(cmd.Context(), args)
	},
}

// configureLogging maps the mutually-reinforcing -d/-q/-v flags onto a
// single logrus level. debug outranks verbose, which outranks quiet.
func configureLogging() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	switch {
	case debug:
		logrus.SetLevel(logrus.TraceLevel)
	case verbose:
		logrus.SetLevel(logrus.DebugLevel)
	case quiet:
		logrus.SetLevel(logrus.WarnLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVarP(&debug, "debug", "d", false, "trace-level logging")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "warn-level logging only")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug-level logging")
	rootCmd.Flags().BoolVar(&bigFile, "big-file", false, "force the big-file window formula regardless of input size")
	rootCmd.Flags().BoolVar(&plotCorpus, "plot-corpus", false, "render a bar chart of each loaded reference corpus")
	rootCmd.Flags().BoolVar(&plotDivs, "plot-divs", false, "render a line chart of per-range divergence for each input file")
	rootCmd.Flags().BoolVar(&noPlots, "no-plots", false, "suppress all plot rendering, overriding --plot-corpus/--plot-divs")
	rootCmd.Flags().BoolVar(&noOut, "no-out", false, "suppress table and JSON output to stdout")
	rootCmd.Flags().StringVar(&corpusPath, "corpus-dir", corpusDir, "directory of *.corpus reference files")
}
