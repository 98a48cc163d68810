package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/rbscholtus/isadetect/internal/corpusdata"
	"github.com/rbscholtus/isadetect/internal/detect"
	"github.com/rbscholtus/isadetect/internal/ngram"
	"github.com/rbscholtus/isadetect/internal/plotting"
)

// runAll loads the reference corpus once, then scores every input file
// independently. A single file's read or detection failure is logged with
// path context and that file is skipped (spec.md §7 policy: the core
// returns complete-or-error, the wrapper decides whether to continue), and
// the run still returns an error once every file has been tried; a
// corpus-loading failure aborts the whole run since no file can be scored
// without references.
func runAll(ctx context.Context, paths []string) error {
	entries, err := corpusdata.Load(corpusPath)
	if err != nil {
		return fmt.Errorf("loading reference corpus: %w", err)
	}
	if len(entries) == 0 {
		logrus.Warnf("no *.corpus entries found in %s; every range will be labeled None", corpusPath)
	}
	logrus.Infof("loaded %d reference corpus entries from %s", len(entries), corpusPath)

	refs, err := detect.BuildReferences(ctx, corpusdata.Map(entries))
	if err != nil {
		return fmt.Errorf("building reference statistics: %w", err)
	}

	if plotCorpus && !noPlots {
		for arch, data := range corpusdata.Map(entries) {
			stats := ngram.Build(arch, data, 0.01)
			path := filepath.Join(os.TempDir(), sanitizeName(arch)+"-corpus.pdf")
			if err := plotting.CorpusTopUnigrams(stats, 20, path); err != nil {
				logrus.Warnf("plotting corpus %s: %v", arch, err)
				continue
			}
			logrus.Debugf("wrote corpus plot for %s to %s", arch, path)
		}
	}

	failures := 0
	for _, path := range paths {
		if err := runFile(ctx, path, refs); err != nil {
			logrus.Errorf("%s: %v", path, err)
			failures++
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d input files failed", failures, len(paths))
	}
	return nil
}

// runFile scores a single file against refs and renders its output.
func runFile(ctx context.Context, path string, refs map[string]*ngram.Stats) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	det, err := detect.DetectWithOptions(ctx, data, refs, bigFile)
	if err != nil {
		return fmt.Errorf("detecting: %w", err)
	}

	processed := detect.Aggregate(det)
	runs := detect.Consolidate(processed.RangeToFinalLabel)

	if !noOut {
		printTable(path, runs)
		if err := printJSON(path, runs); err != nil {
			logrus.Warnf("%s: rendering JSON: %v", path, err)
		}
	}

	if plotDivs && !noPlots {
		base := sanitizeName(filepath.Base(path))
		bgPath := filepath.Join(os.TempDir(), base+"-bigram-divs.pdf")
		if err := plotting.DivergenceByRange(processed, "bigram", bgPath); err != nil {
			logrus.Warnf("%s: plotting bigram divergence: %v", path, err)
		}
		tgPath := filepath.Join(os.TempDir(), base+"-trigram-divs.pdf")
		if err := plotting.DivergenceByRange(processed, "trigram", tgPath); err != nil {
			logrus.Warnf("%s: plotting trigram divergence: %v", path, err)
		}
	}

	return nil
}

func sanitizeName(name string) string {
	return strings.NewReplacer("/", "_", "\\", "_", " ", "_", ".", "_").Replace(name)
}
