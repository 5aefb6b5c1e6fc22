package tutorial

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/kbukum/rddkit/errors"
)

// Render writes the report in the given format.
func Render(w io.Writer, report *Report, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case FormatText, "":
		return renderText(w, report)
	}
	return errors.InvalidArgument("format", fmt.Sprintf("unsupported format %q", format))
}

func renderText(w io.Writer, report *Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if b := report.Basics; b != nil {
		section(tw, ScenarioBasics)
		row(tw, "collected", joinInts(b.Collected))
		row(tw, "count", humanize.Comma(int64(len(b.Collected))))
		row(tw, "first", strconv.Itoa(b.First))
		row(tw, "take(2)", joinInts(b.TakeTwo))
		row(tw, "sum", humanize.Comma(int64(b.Sum)))
		row(tw, "default partitions", strconv.Itoa(b.DefaultPartitions))
		row(tw, "explicit partitions", strconv.Itoa(b.ExplicitPartitions))
		row(tw, "empty partitions", strconv.Itoa(b.EmptyPartitions))
		row(tw, "empty count", humanize.Comma(int64(b.EmptyCount)))
		if b.EmptyFirstError != "" {
			row(tw, "empty first", b.EmptyFirstError)
		}
		row(tw, "emptyRDD partitions", strconv.Itoa(b.EmptyRDDPartitions))
	}
	if t := report.Temperatures; t != nil {
		section(tw, ScenarioTemperatures)
		row(tw, "partitions", strconv.Itoa(t.Partitions))
		row(tw, "fahrenheit", joinFloats(t.Fahrenheit))
		row(tw, "celsius", joinFloats(t.Celsius))
		row(tw, ">= "+formatFloat(t.MinCelsius), joinFloats(t.AtLeast))
	}
	if s := report.Students; s != nil {
		section(tw, ScenarioStudents)
		for _, m := range s.Sample {
			row(tw, "sample", fmt.Sprintf("%s %s %s %s", m.StudentID, m.Year, formatFloat(m.Semester1), formatFloat(m.Semester2)))
		}
		row(tw, "averages", humanize.Comma(int64(len(s.Averages))))
		row(tw, s.Year, humanize.Comma(int64(len(s.YearAverages))))
		averages(tw, "ranked", s.Ranked)
		averages(tw, "top", s.Top)
		averages(tw, "bottom", s.Bottom)
		averages(tw, "above "+formatFloat(s.Threshold), s.AboveThreshold)
		if s.Lineage != "" {
			if err := tw.Flush(); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "lineage:\n%s\n", s.Lineage); err != nil {
				return err
			}
		}
	}
	return tw.Flush()
}

func section(w io.Writer, name string) {
	fmt.Fprintf(w, "== %s ==\n", name)
}

func row(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s\t%s\n", label, value)
}

func averages(w io.Writer, label string, as []Average) {
	if len(as) == 0 {
		row(w, label, "-")
		return
	}
	for _, a := range as {
		row(w, label, a.StudentID+"\t"+humanize.FtoaWithDigits(a.Mean, 3))
	}
}

func joinInts(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func joinFloats(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = formatFloat(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// formatFloat prints the shortest representation that round-trips.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
