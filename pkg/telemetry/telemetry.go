package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the operational metrics of the service. The pipeline is
// batch and boot-time, so most of these are set once per boot; the HTTP
// and audit metrics move afterwards.
type Registry struct {
	reg *prometheus.Registry

	BootSeconds    prometheus.Gauge
	StageSeconds   *prometheus.GaugeVec
	OrdersIngested prometheus.Gauge
	InsightsTotal  *prometheus.GaugeVec
	AlertsActive   prometheus.Gauge

	HTTPRequests *prometheus.CounterVec

	AuditRuns       prometheus.Counter
	AuditMismatches prometheus.Counter
}

// NewRegistry creates the metric set on a private prometheus registry.
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	boot := prometheus.NewGauge(prometheus.GaugeOpts{Name: "grovyn_pipeline_boot_seconds"})
	stage := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "grovyn_pipeline_stage_seconds"}, []string{"stage"})
	orders := prometheus.NewGauge(prometheus.GaugeOpts{Name: "grovyn_orders_ingested"})
	insights := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "grovyn_insights_total"}, []string{"domain"})
	alerts := prometheus.NewGauge(prometheus.GaugeOpts{Name: "grovyn_alerts_active"})

	httpReqs := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "grovyn_http_requests_total"}, []string{"method", "path", "status"})

	auditRuns := prometheus.NewCounter(prometheus.CounterOpts{Name: "grovyn_audit_runs_total"})
	auditMismatches := prometheus.NewCounter(prometheus.CounterOpts{Name: "grovyn_audit_mismatches_total"})

	r.MustRegister(boot, stage, orders, insights, alerts, httpReqs, auditRuns, auditMismatches)

	return &Registry{
		reg:             r,
		BootSeconds:     boot,
		StageSeconds:    stage,
		OrdersIngested:  orders,
		InsightsTotal:   insights,
		AlertsActive:    alerts,
		HTTPRequests:    httpReqs,
		AuditRuns:       auditRuns,
		AuditMismatches: auditMismatches,
	}
}

// Handler exposes the registry in prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
