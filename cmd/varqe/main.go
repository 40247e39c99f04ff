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

// Command varqe runs variational ground-state calculations described by
// an experiment document.
//
//	varqe run   -f experiment.yaml    solve one geometry
//	varqe scan  -f experiment.yaml    sweep the bond length
//	varqe exact -f experiment.yaml    dense reference energy only
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"

	"github.com/varqe-dev/varqe/api/v1alpha1"
	"github.com/varqe-dev/varqe/internal/config"
	"github.com/varqe-dev/varqe/internal/driver"
	"github.com/varqe-dev/varqe/internal/logging"
	"github.com/varqe-dev/varqe/internal/report"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		usage()
		return 2
	}
	switch args[0] {
	case "run", "scan", "exact":
		return runCommand(args[0], args[1:])
	case "help", "-h", "--help":
		usage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		usage()
		return 2
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: varqe <command> [flags]

commands:
  run     solve the experiment at its configured bond length
  scan    sweep bond lengths and trace the dissociation curve
  exact   compute the dense reference energy, no optimization

common flags:
  -f, --experiment path   experiment document (default "experiment.yaml")
      --log-level level   info, debug, or trace
      --output-dir dir    where traces and plots are written
      --metrics-addr a    serve Prometheus metrics on this address
      --trace-format f    csv or json
      --plot              write convergence and scan plots
      --config path       settings file`)
}

func runCommand(name string, args []string) int {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	expPath := fs.StringP("experiment", "f", "experiment.yaml", "experiment document")
	fs.String("log-level", "info", "info, debug, or trace")
	fs.String("output-dir", "out", "output directory")
	fs.String("metrics-addr", "", "Prometheus listen address")
	fs.String("trace-format", "csv", "csv or json")
	fs.Bool("plot", true, "write plots")
	fs.String("config", "", "settings file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	settings, err := config.Load(fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	log := logging.Setup(settings.LogLevel)

	exp, err := v1alpha1.Load(*expPath)
	if err != nil {
		log.Error(err, "Loading experiment failed")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var metrics *report.Metrics
	if settings.MetricsAddr != "" {
		metrics = report.NewMetrics()
		go serveMetrics(log, settings.MetricsAddr, metrics)
	}

	p := driver.New(log, metrics)
	switch name {
	case "run":
		return cmdRun(ctx, log, p, exp, settings)
	case "scan":
		return cmdScan(ctx, log, p, exp, settings)
	case "exact":
		return cmdExact(ctx, log, p, exp)
	}
	return 2
}

func serveMetrics(log logr.Logger, addr string, m *report.Metrics) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	log.Info("Serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error(err, "Metrics server failed")
	}
}

func cmdRun(ctx context.Context, log logr.Logger, p *driver.Pipeline, exp *v1alpha1.Experiment, settings config.Settings) int {
	res, err := p.Run(ctx, exp)
	if err != nil {
		log.Error(err, "Run failed")
		return 1
	}

	if err := writeRunArtifacts(exp.Metadata.Name, res, settings); err != nil {
		log.Error(err, "Writing artifacts failed")
		return 1
	}

	summary := report.Summary{
		RunID:       res.RunID,
		Molecule:    res.Molecule,
		BondLength:  res.BondLength,
		BestEnergy:  res.BestEnergy,
		Iterations:  res.Iterations,
		Evaluations: res.Evaluations,
		Converged:   res.Converged,
		DurationSec: res.Duration.Seconds(),
	}
	if res.ExactKnown {
		summary.ExactEnergy = res.ExactEnergy
	}
	if err := report.WriteSummary(os.Stdout, summary); err != nil {
		log.Error(err, "Writing summary failed")
		return 1
	}
	if !res.Converged {
		log.Info("Iteration budget exhausted before convergence, reporting best iterate")
	}
	return 0
}

func cmdScan(ctx context.Context, log logr.Logger, p *driver.Pipeline, exp *v1alpha1.Experiment, settings config.Settings) int {
	res, err := p.Scan(ctx, exp)
	if err != nil {
		log.Error(err, "Scan failed")
		return 1
	}

	if err := os.MkdirAll(settings.OutputDir, 0o755); err != nil {
		log.Error(err, "Creating output directory failed")
		return 1
	}
	for _, r := range res.Runs {
		if err := writeRunArtifacts(exp.Metadata.Name, r, settings); err != nil {
			log.Error(err, "Writing artifacts failed", "run", r.RunID)
			return 1
		}
	}
	if settings.Plot {
		path := filepath.Join(settings.OutputDir, exp.Metadata.Name+"-scan.png")
		title := fmt.Sprintf("%s dissociation curve", exp.Spec.Molecule.Symbol+"2")
		if err := report.SaveScanPlot(path, title, res.Lengths, res.Energies); err != nil {
			log.Error(err, "Writing scan plot failed")
			return 1
		}
	}

	for i := range res.Lengths {
		line := fmt.Sprintf("%8.4f  %14.8f", res.Lengths[i], res.Energies[i])
		if len(res.ExactEnergies) == len(res.Lengths) {
			line += fmt.Sprintf("  (exact %14.8f)", res.ExactEnergies[i])
		}
		fmt.Println(line)
	}
	return 0
}

func cmdExact(ctx context.Context, log logr.Logger, p *driver.Pipeline, exp *v1alpha1.Experiment) int {
	energy, err := p.Exact(ctx, exp)
	if err != nil {
		log.Error(err, "Diagonalization failed")
		return 1
	}
	fmt.Printf("%.8f\n", energy)
	return 0
}

func writeRunArtifacts(name string, res *driver.RunResult, settings config.Settings) error {
	if err := os.MkdirAll(settings.OutputDir, 0o755); err != nil {
		return err
	}

	base := fmt.Sprintf("%s-%s", name, res.RunID[:8])
	tracePath := filepath.Join(settings.OutputDir, base+"-trace."+settings.TraceFormat)
	f, err := os.Create(tracePath)
	if err != nil {
		return err
	}
	defer f.Close()

	if settings.TraceFormat == "json" {
		err = report.WriteJSON(f, res.Trace)
	} else {
		err = report.WriteCSV(f, res.Trace)
	}
	if err != nil {
		return err
	}

	if settings.Plot {
		var exact *float64
		if res.ExactKnown {
			e := res.ExactEnergy
			exact = &e
		}
		title := fmt.Sprintf("%s @ %.4f A", res.Molecule, res.BondLength)
		plotPath := filepath.Join(settings.OutputDir, base+"-convergence.png")
		if err := report.SaveConvergencePlot(plotPath, title, res.Trace, exact); err != nil {
			return err
		}
	}
	return nil
}
