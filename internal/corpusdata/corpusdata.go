// Package corpusdata loads the reference corpus entries the detector builds
// its architecture statistics from: one raw byte sample per architecture
// (plus a handful of natural-language classes), read from a directory of
// *.corpus files.
//
// spec.md §6 leaves the storage mechanism open (an embedded resource is
// equally valid, as long as the loaded slices are stable for the process
// lifetime); this implementation loads from disk at startup, grounded on
// the teacher's internal/corpus.NewFromFile file-reading idiom.
package corpusdata

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rbscholtus/isadetect/internal/support"
)

// Ext is the filename suffix stripped from a corpus file's base name to
// recover its architecture name.
const Ext = ".corpus"

// Entry is one loaded reference corpus.
type Entry struct {
	Arch string
	Data []byte
}

// Load reads every *.corpus file directly inside dir and returns one Entry
// per file, sorted by architecture name so downstream indexing (see
// internal/detect.Aggregate's ArchIndex) is deterministic regardless of the
// directory's on-disk order.
func Load(dir string) ([]Entry, error) {
	descs, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("corpusdata: reading %s: %w", dir, err)
	}

	var entries []Entry
	for _, d := range descs {
		if d.IsDir() || !strings.HasSuffix(d.Name(), Ext) {
			continue
		}

		path := filepath.Join(dir, d.Name())
		data, err := readFile(path)
		if err != nil {
			return nil, fmt.Errorf("corpusdata: reading %s: %w", path, err)
		}

		arch := strings.TrimSuffix(d.Name(), Ext)
		entries = append(entries, Entry{Arch: arch, Data: data})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Arch < entries[j].Arch })
	return entries, nil
}

// readFile opens path directly (rather than os.ReadFile) so the file handle
// goes through support.CloseFile, matching the teacher's explicit-close
// idiom from internal/keycraft/common.go.
func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer support.CloseFile(f)
	return io.ReadAll(f)
}

// Map reshapes entries into the arch-name-keyed form internal/detect.
// BuildReferences consumes.
func Map(entries []Entry) map[string][]byte {
	out := make(map[string][]byte, len(entries))
	for _, e := range entries {
		out[e.Arch] = e.Data
	}
	return out
}
