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

package report

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes run progress to Prometheus. Each instance owns its
// registry so parallel runs in tests do not collide.
type Metrics struct {
	registry *prometheus.Registry

	// Evaluations counts objective evaluations across the process.
	Evaluations prometheus.Counter

	// BestEnergy tracks the lowest energy seen in the current run.
	BestEnergy prometheus.Gauge

	// RunsTotal counts finished runs by outcome.
	RunsTotal *prometheus.CounterVec
}

// NewMetrics builds and registers the metric set.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Evaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "varqe_estimator_evaluations_total",
			Help: "Number of objective evaluations performed.",
		}),
		BestEnergy: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "varqe_best_energy_hartree",
			Help: "Lowest energy seen in the current run.",
		}),
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "varqe_runs_total",
			Help: "Finished optimization runs by outcome.",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(m.Evaluations, m.BestEnergy, m.RunsTotal)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRun records a finished run.
func (m *Metrics) ObserveRun(converged bool) {
	outcome := "converged"
	if !converged {
		outcome = "exhausted"
	}
	m.RunsTotal.WithLabelValues(outcome).Inc()
}
