package report

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varqe-dev/varqe/internal/history"
)

func sampleTrace() []history.Evaluation {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []history.Evaluation{
		{Index: 0, Params: []float64{0.1, 0.2}, Energy: -0.5, Best: -0.5, Timestamp: ts},
		{Index: 1, Params: []float64{0.3, 0.1}, Energy: -1.1, Best: -1.1, Timestamp: ts.Add(time.Second)},
		{Index: 2, Params: []float64{0.2, 0.15}, Energy: -0.9, Best: -1.1, Timestamp: ts.Add(2 * time.Second)},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleTrace()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "evaluation,energy,best,params,timestamp", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "0,-0.5,-0.5,0.1;0.2,"))
	assert.True(t, strings.HasPrefix(lines[3], "2,-0.9,-1.1,"))
}

func TestWriteCSVEmptyTrace(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "evaluation,energy,best,params,timestamp\n", buf.String())
}

func TestWriteJSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleTrace()))

	var got []history.Evaluation
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, -1.1, got[1].Energy)
	assert.Equal(t, []float64{0.2, 0.15}, got[2].Params)
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	s := Summary{
		RunID:       "abc123",
		Molecule:    "H2",
		BondLength:  0.7414,
		BestEnergy:  -1.13728,
		ExactEnergy: -1.13730,
		Iterations:  40,
		Evaluations: 85,
		Converged:   true,
		DurationSec: 1.5,
	}
	require.NoError(t, WriteSummary(&buf, s))

	out := buf.String()
	assert.Contains(t, out, "H2 @ 0.7414")
	assert.Contains(t, out, "best energy  -1.13728000 Ha")
	assert.Contains(t, out, "error")
	assert.Contains(t, out, "converged    true")
}

func TestSaveConvergencePlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "convergence.png")
	exact := -1.137
	require.NoError(t, SaveConvergencePlot(path, "H2", sampleTrace(), &exact))
	assert.FileExists(t, path)
}

func TestSaveConvergencePlotEmpty(t *testing.T) {
	err := SaveConvergencePlot(filepath.Join(t.TempDir(), "x.png"), "t", nil, nil)
	assert.Error(t, err)
}

func TestSaveScanPlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.png")
	lengths := []float64{0.5, 0.74, 1.0, 1.5}
	energies := []float64{-1.05, -1.137, -1.12, -1.05}
	require.NoError(t, SaveScanPlot(path, "H2 dissociation", lengths, energies))
	assert.FileExists(t, path)

	err := SaveScanPlot(path, "bad", lengths, energies[:2])
	assert.Error(t, err)
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()

	m.Evaluations.Inc()
	m.Evaluations.Inc()
	m.BestEnergy.Set(-1.137)
	m.ObserveRun(true)
	m.ObserveRun(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Evaluations))
	assert.Equal(t, -1.137, testutil.ToFloat64(m.BestEnergy))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues("converged")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues("exhausted")))
}
