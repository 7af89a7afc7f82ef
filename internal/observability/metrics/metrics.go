package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

// Metrics carries the engine's prometheus instruments.
type Metrics struct {
	MileageRecorded    *prometheus.CounterVec
	MileageRejected    *prometheus.CounterVec
	CipherPassthrough  *prometheus.CounterVec
	DuplicateAdmission *prometheus.CounterVec
	AdvisoryTriggered  prometheus.Counter
	AdvisoryConfirm    prometheus.Counter
}

// Module provides Metrics registered on its own registry, plus the registry
// for the /metrics handler.
var Module = fx.Provide(New)

type Result struct {
	fx.Out

	Metrics  *Metrics
	Registry *prometheus.Registry
}

func New() Result {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	m := &Metrics{
		MileageRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "motorbill",
			Name:      "mileage_entries_recorded_total",
			Help:      "Mileage ledger appends by source tag.",
		}, []string{"source"}),
		MileageRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "motorbill",
			Name:      "mileage_entries_rejected_total",
			Help:      "Mileage writes refused by the policy or validation.",
		}, []string{"reason"}),
		CipherPassthrough: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "motorbill",
			Name:      "field_cipher_passthrough_total",
			Help:      "Field cipher operations that degraded to plaintext passthrough.",
		}, []string{"op"}),
		DuplicateAdmission: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "motorbill",
			Name:      "duplicate_admissions_rejected_total",
			Help:      "Writes rejected by a duplicate-admission guard.",
		}, []string{"entity"}),
		AdvisoryTriggered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "motorbill",
			Name:      "duplicate_service_advisories_total",
			Help:      "Invoice saves that required duplicate-service confirmation.",
		}),
		AdvisoryConfirm: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "motorbill",
			Name:      "duplicate_service_confirmed_total",
			Help:      "Invoice saves forced through after confirmation.",
		}),
	}

	reg.MustRegister(
		m.MileageRecorded,
		m.MileageRejected,
		m.CipherPassthrough,
		m.DuplicateAdmission,
		m.AdvisoryTriggered,
		m.AdvisoryConfirm,
	)

	return Result{Metrics: m, Registry: reg}
}

// NewNop returns unregistered instruments for tests.
func NewNop() *Metrics {
	return New().Metrics
}
