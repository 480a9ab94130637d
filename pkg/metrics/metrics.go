// Package metrics expõe os contadores do painel no formato Prometheus
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sales_dashboard"

var (
	datasetLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loads_total",
		Help:      "Cargas de dataset por origem (sample, upload, fallback).",
	}, []string{"source"})

	droppedRows = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dropped_rows_total",
		Help:      "Linhas descartadas por mês inválido.",
	})

	retentionDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "retention_deleted_datasets_total",
		Help:      "Datasets removidos pela rotina de retenção.",
	})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Requisições HTTP por método e status.",
	}, []string{"method", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duração das requisições HTTP.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})
)

// ObserveLoad registra uma carga de dataset
func ObserveLoad(source string, dropped int) {
	datasetLoads.WithLabelValues(source).Inc()
	if dropped > 0 {
		droppedRows.Add(float64(dropped))
	}
}

// ObserveRetention registra os datasets removidos pela retenção
func ObserveRetention(deleted int64) {
	if deleted > 0 {
		retentionDeleted.Add(float64(deleted))
	}
}

// ObserveRequest registra uma requisição HTTP finalizada
func ObserveRequest(method, status string, seconds float64) {
	httpRequests.WithLabelValues(method, status).Inc()
	httpDuration.WithLabelValues(method).Observe(seconds)
}

// Handler retorna o handler HTTP do endpoint /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
