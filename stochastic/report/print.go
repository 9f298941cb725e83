// Copyright 2024 Fantom Foundation
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package report

import (
	"fmt"
	"io"
	"log"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrintSummary sends the formatted summary to the output writer.
func PrintSummary(w io.Writer, s *Summary) {
	bold := color.New(color.Bold).SprintfFunc()
	colored := color.New(color.FgBlue, color.Bold).SprintfFunc()
	m := message.NewPrinter(language.English)

	output(w, "Run:\t\t%s\n", colored(s.RunID))
	output(w, "Distribution:\t%s\n", colored(s.Distribution))
	output(w, "Paths (M):\t%s\n", bold(m.Sprintf("%d", s.Paths)))
	output(w, "Samples (N):\t%s\n", bold(m.Sprintf("%d", s.Samples)))
	output(w, "Epsilon:\t%s\n", bold("%g", s.Epsilon))
	output(w, "Seed:\t\t%s\n", bold("%d", s.Seed))
	output(w, "Mean (μ):\t%s\n", bold("%g", s.Mean))
	output(w, "Variance (σ²):\t%s\n", bold("%g", s.Variance))
	output(w, "Elapsed:\t%s\n\n", bold(s.Elapsed.String()))

	printCheckpoints(w, s.Checkpoints)
	output(w, "\n")
	printFinalColumn(w, s)
}

// printCheckpoints sends the table of checkpoint statistics to the output writer.
func printCheckpoints(w io.Writer, checkpoints []Checkpoint) {
	m := message.NewPrinter(language.English)

	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"n", "Mean", "Variance", "σ²/n", "P(|X̄-μ|>ε)", "Chebyshev"})
	tbl.SetBorder(true)
	tbl.SetAutoFormatHeaders(false)
	tbl.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, c := range checkpoints {
		tbl.Append([]string{
			m.Sprintf("%d", c.N),
			fmt.Sprintf("%.6f", c.Mean),
			fmt.Sprintf("%.3e", c.EmpiricalVariance),
			fmt.Sprintf("%.3e", c.TheoreticalVariance),
			fmt.Sprintf("%.4f", c.DeviationProbability),
			fmt.Sprintf("%.4f", c.ChebyshevBound),
		})
	}

	tbl.Render()
}

// printFinalColumn sends the distribution of the final running averages to the output writer.
func printFinalColumn(w io.Writer, s *Summary) {
	bold := color.New(color.Bold).SprintfFunc()
	m := message.NewPrinter(language.English)
	f := s.Final

	output(w, "Running averages at n=%s:\n", bold(m.Sprintf("%d", s.Samples)))
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Mean", "Std Dev", "Min", "Q25", "Median", "Q75", "Max", "|Mean-μ|"})
	tbl.SetBorder(true)
	tbl.SetAutoFormatHeaders(false)
	row := make([]string, 0, 8)
	for _, v := range []float64{f.Mean, f.StdDev, f.Min, f.Q25, f.Median, f.Q75, f.Max, f.AbsError} {
		row = append(row, fmt.Sprintf("%.6f", v))
	}
	tbl.Append(row)
	tbl.Render()
}

// output the given message with formatting.
func output(w io.Writer, format string, a ...any) {
	_, err := fmt.Fprintf(w, format, a...)
	if err != nil {
		log.Println("output error", err.Error())
	}
}
