// Package report renders benchmark result sets as comparison tables with a
// short analysis, for the terminal or as markdown. Failed entries render as
// gaps labeled with their error kind.
package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/formatbench/formatbench/internal/results"
)

// Reporter renders write and read result sets side by side. Either set may
// be nil when only one phase has run.
type Reporter struct {
	write *results.WriteSet
	read  *results.ReadSet
}

// New creates a Reporter over the given result sets.
func New(write *results.WriteSet, read *results.ReadSet) *Reporter {
	return &Reporter{write: write, read: read}
}

// Render returns the terminal rendering.
func (r *Reporter) Render() string { return r.build(false) }

// RenderMarkdown returns the markdown rendering.
func (r *Reporter) RenderMarkdown() string { return r.build(true) }

func (r *Reporter) build(md bool) string {
	var sections []string

	sections = append(sections, r.header(md))
	if r.write != nil {
		sections = append(sections, section(md, "Write Phase", r.writeTable(md)))
	}
	if r.read != nil {
		sections = append(sections, section(md, "Read Phase", r.readTable(md)))
	}
	if analysis := r.analysis(); len(analysis) > 0 {
		sections = append(sections, section(md, "Analysis", "- "+strings.Join(analysis, "\n- ")))
	}
	if failures := r.failures(); len(failures) > 0 {
		sections = append(sections, section(md, "Failures", "- "+strings.Join(failures, "\n- ")))
	}

	return strings.Join(sections, "\n\n") + "\n"
}

func (r *Reporter) header(md bool) string {
	var b strings.Builder
	if md {
		b.WriteString("# Format Benchmark Report")
	} else {
		b.WriteString("=== FORMAT BENCHMARK REPORT ===")
	}
	if r.write != nil {
		b.WriteString(fmt.Sprintf("\n\nDataset: %s records, batch size %s, seed %d (written %s)",
			humanize.Comma(r.write.Records),
			humanize.Comma(int64(r.write.BatchSize)),
			r.write.Seed,
			r.write.GeneratedAt.Format(time.RFC3339)))
	}
	if r.read != nil {
		b.WriteString(fmt.Sprintf("\nRead: %d runs per operation, filter category %q",
			r.read.Runs, r.read.FilterCategory))
	}
	return b.String()
}

func section(md bool, title, body string) string {
	if md {
		return "## " + title + "\n\n" + body
	}
	return "--- " + title + " ---\n" + body
}

func (r *Reporter) writeTable(md bool) string {
	best := math.MaxFloat64
	for _, res := range r.write.Results {
		if res.OK() && res.Seconds < best {
			best = res.Seconds
		}
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Format", "Records", "Time (s)", "Size", "Records/s", "Peak Heap", "vs Best"})
	for _, res := range r.write.Results {
		if !res.OK() {
			tbl.AppendRow(table.Row{res.Format, "-", "-", "-", "-", "-", gapLabel(res.Failure)})
			continue
		}
		tbl.AppendRow(table.Row{
			res.Format,
			humanize.Comma(res.Records),
			fmt.Sprintf("%.3f", res.Seconds),
			humanize.IBytes(uint64(res.FileSizeBytes)),
			humanize.Comma(int64(res.RecordsPerSec)),
			humanize.IBytes(res.PeakHeapBytes),
			vsBest(res.Seconds, best),
		})
	}
	return render(tbl, md)
}

func (r *Reporter) readTable(md bool) string {
	bests := make(map[string]float64)
	for _, res := range r.read.Results {
		for _, op := range res.Ops() {
			if !op.OK() {
				continue
			}
			if cur, ok := bests[op.Operation]; !ok || op.MeanSeconds < cur {
				bests[op.Operation] = op.MeanSeconds
			}
		}
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Format", "Operation", "Mean (s)", "Samples", "Result", "vs Best"})
	for _, res := range r.read.Results {
		if res.Failure != nil {
			tbl.AppendRow(table.Row{res.Format, "-", "-", "-", "-", gapLabel(res.Failure)})
			continue
		}
		for _, op := range res.Ops() {
			if !op.OK() {
				tbl.AppendRow(table.Row{res.Format, op.Operation, "-", 0, "-", "failed all runs"})
				continue
			}
			tbl.AppendRow(table.Row{
				res.Format,
				op.Operation,
				fmt.Sprintf("%.4f", op.MeanSeconds),
				len(op.RunSeconds),
				opResult(op),
				vsBest(op.MeanSeconds, bests[op.Operation]),
			})
		}
	}
	return render(tbl, md)
}

func (r *Reporter) analysis() []string {
	var lines []string

	if r.write != nil {
		var ok []results.WriteResult
		for _, res := range r.write.Results {
			if res.OK() {
				ok = append(ok, res)
			}
		}
		if len(ok) > 0 {
			fastest, smallest, hungriest := ok[0], ok[0], ok[0]
			for _, res := range ok[1:] {
				if res.Seconds < fastest.Seconds {
					fastest = res
				}
				if res.FileSizeBytes < smallest.FileSizeBytes {
					smallest = res
				}
				if res.PeakHeapBytes > hungriest.PeakHeapBytes {
					hungriest = res
				}
			}
			lines = append(lines,
				fmt.Sprintf("fastest write: %s (%.3fs)", fastest.Format, fastest.Seconds),
				fmt.Sprintf("smallest file: %s (%s)", smallest.Format, humanize.IBytes(uint64(smallest.FileSizeBytes))),
				fmt.Sprintf("highest write heap: %s (%s)", hungriest.Format, humanize.IBytes(hungriest.PeakHeapBytes)),
			)
		}
	}

	if r.read != nil {
		for _, opName := range []string{results.OpFullScan, results.OpFilteredCount, results.OpGroupedSum} {
			bestFormat := ""
			best := math.MaxFloat64
			for _, res := range r.read.Results {
				for _, op := range res.Ops() {
					if op.Operation == opName && op.OK() && op.MeanSeconds < best {
						best = op.MeanSeconds
						bestFormat = res.Format
					}
				}
			}
			if bestFormat != "" {
				lines = append(lines, fmt.Sprintf("fastest %s: %s (%.4fs)", opName, bestFormat, best))
			}
		}
	}

	return lines
}

func (r *Reporter) failures() []string {
	var lines []string
	add := func(f *results.Failure) {
		if f == nil {
			return
		}
		var loc strings.Builder
		loc.WriteString(f.Phase + "/" + f.Format)
		if f.Operation != "" {
			loc.WriteString("/" + f.Operation)
		}
		if f.Run > 0 {
			fmt.Fprintf(&loc, " run %d", f.Run)
		}
		lines = append(lines, fmt.Sprintf("%s: %s", loc.String(), f.Message))
	}

	if r.write != nil {
		for _, res := range r.write.Results {
			add(res.Failure)
		}
	}
	if r.read != nil {
		for _, res := range r.read.Results {
			add(res.Failure)
			for _, op := range res.Ops() {
				for i := range op.Failures {
					add(&op.Failures[i])
				}
			}
		}
	}
	return lines
}

func gapLabel(f *results.Failure) string {
	return "failed: " + f.Kind
}

func opResult(op *results.OpStats) string {
	switch op.Operation {
	case results.OpFullScan:
		return humanize.Comma(op.Records) + " rows"
	case results.OpFilteredCount:
		return humanize.Comma(op.Records) + " matches"
	case results.OpGroupedSum:
		return fmt.Sprintf("%d groups", op.Groups)
	}
	return ""
}

func vsBest(seconds, best float64) string {
	if best <= 0 || best == math.MaxFloat64 {
		return ""
	}
	if seconds <= best {
		return "best"
	}
	return fmt.Sprintf("+%.1f%%", (seconds/best-1)*100)
}

func render(tbl table.Writer, md bool) string {
	if md {
		return tbl.RenderMarkdown()
	}
	return tbl.Render()
}
