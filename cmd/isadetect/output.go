package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/rbscholtus/isadetect/internal/detect"
	"github.com/rbscholtus/isadetect/internal/support"
)

// rangeResultJSON is one consolidated run in the shape spec.md §6 mandates:
// [[start, end], length, arch].
type rangeResultJSON struct {
	Range [2]int
	Len   int
	Arch  string
}

func (r rangeResultJSON) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.Range, r.Len, r.Arch})
}

type fileResult struct {
	File         string            `json:"file"`
	RangeResults []rangeResultJSON `json:"range_results"`
}

// printJSON writes the spec.md §6 JSON object for one file's consolidated
// runs to stdout.
func printJSON(path string, runs []detect.Run) error {
	fr := fileResult{File: path, RangeResults: make([]rangeResultJSON, 0, len(runs))}
	for _, r := range runs {
		fr.RangeResults = append(fr.RangeResults, rangeResultJSON{
			Range: [2]int{r.Range.Start, r.Range.End},
			Len:   r.Length,
			Arch:  r.Arch,
		})
	}

	enc := json.NewEncoder(os.Stdout)
	return enc.Encode(fr)
}

// printTable renders a human-readable summary of a file's consolidated
// runs, in the teacher's go-pretty table style (see
// internal/keycraft/ranking.go's renderTable).
func printTable(path string, runs []detect.Run) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Title.Align = text.AlignCenter
	tw.SetTitle(fmt.Sprintf("Detected architectures: %s", path))

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Start", Align: text.AlignRight},
		{Name: "End", Align: text.AlignRight},
		{Name: "Length", Align: text.AlignRight},
		{Name: "Architecture", Align: text.AlignLeft},
	})
	tw.AppendHeader(table.Row{"Start", "End", "Length", "Architecture"})

	if len(runs) == 0 {
		tw.AppendRow(table.Row{"-", "-", "-", "(none)"})
	}
	for _, r := range runs {
		tw.AppendRow(table.Row{
			fmt.Sprintf("0x%x", r.Range.Start),
			fmt.Sprintf("0x%x", r.Range.End),
			r.Length,
			r.Arch,
		})
	}

	support.MustFprintf(os.Stdout, "%s\n", tw.Render())
}
