/*
Copyright 2026 The varqe Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package report renders finished runs: convergence traces as CSV or
// JSON, a plotted energy curve, and Prometheus metrics for long-running
// scans.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/varqe-dev/varqe/internal/history"
)

// WriteCSV streams the trace as one row per evaluation. Parameter
// vectors are joined with semicolons so the row width stays fixed.
func WriteCSV(w io.Writer, evals []history.Evaluation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"evaluation", "energy", "best", "params", "timestamp"}); err != nil {
		return err
	}
	for _, ev := range evals {
		params := make([]string, len(ev.Params))
		for i, p := range ev.Params {
			params[i] = strconv.FormatFloat(p, 'g', -1, 64)
		}
		row := []string{
			strconv.Itoa(ev.Index),
			strconv.FormatFloat(ev.Energy, 'g', -1, 64),
			strconv.FormatFloat(ev.Best, 'g', -1, 64),
			strings.Join(params, ";"),
			ev.Timestamp.Format("2006-01-02T15:04:05.000Z07:00"),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON renders the trace as an indented JSON array.
func WriteJSON(w io.Writer, evals []history.Evaluation) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if evals == nil {
		evals = []history.Evaluation{}
	}
	return enc.Encode(evals)
}

// Summary is the human-readable tail of a run.
type Summary struct {
	RunID       string  `json:"runId" yaml:"runId"`
	Molecule    string  `json:"molecule" yaml:"molecule"`
	BondLength  float64 `json:"bondLengthAngstrom" yaml:"bondLengthAngstrom"`
	BestEnergy  float64 `json:"bestEnergy" yaml:"bestEnergy"`
	ExactEnergy float64 `json:"exactEnergy,omitempty" yaml:"exactEnergy,omitempty"`
	Iterations  int     `json:"iterations" yaml:"iterations"`
	Evaluations int     `json:"evaluations" yaml:"evaluations"`
	Converged   bool    `json:"converged" yaml:"converged"`
	DurationSec float64 `json:"durationSeconds" yaml:"durationSeconds"`
}

// WriteSummary prints the summary in a fixed-width text block.
func WriteSummary(w io.Writer, s Summary) error {
	lines := []string{
		fmt.Sprintf("run          %s", s.RunID),
		fmt.Sprintf("molecule     %s @ %.4f A", s.Molecule, s.BondLength),
		fmt.Sprintf("best energy  %.8f Ha", s.BestEnergy),
	}
	if s.ExactEnergy != 0 {
		lines = append(lines,
			fmt.Sprintf("exact energy %.8f Ha", s.ExactEnergy),
			fmt.Sprintf("error        %.3e Ha", s.BestEnergy-s.ExactEnergy),
		)
	}
	lines = append(lines,
		fmt.Sprintf("iterations   %d", s.Iterations),
		fmt.Sprintf("evaluations  %d", s.Evaluations),
		fmt.Sprintf("converged    %t", s.Converged),
		fmt.Sprintf("duration     %.2fs", s.DurationSec),
	)
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}
