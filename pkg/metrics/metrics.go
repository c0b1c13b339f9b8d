package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ServiceMetrics records counters for the record subscription, gateway
// calls and the event stream.
type ServiceMetrics struct {
	storePushes   prometheus.Counter
	records       prometheus.Gauge
	gatewayCalls  *prometheus.CounterVec
	streamClients prometheus.Gauge
}

// NewServiceMetrics registers the service metrics on the provided registerer.
func NewServiceMetrics(reg prometheus.Registerer) *ServiceMetrics {
	if reg == nil {
		return &ServiceMetrics{}
	}
	storePushes := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "record_store_pushes_total",
		Help: "Snapshots delivered by the record store subscription.",
	})
	records := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "records_current",
		Help: "Records in the latest snapshot.",
	})
	gatewayCalls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_requests_total",
		Help: "CRUD gateway requests by operation and outcome.",
	}, []string{"op", "outcome"})
	streamClients := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "stream_clients_current",
		Help: "Connected event stream clients.",
	})
	reg.MustRegister(storePushes, records, gatewayCalls, streamClients)
	return &ServiceMetrics{
		storePushes:   storePushes,
		records:       records,
		gatewayCalls:  gatewayCalls,
		streamClients: streamClients,
	}
}

// IncStorePush counts one delivered snapshot.
func (m *ServiceMetrics) IncStorePush() {
	if m == nil || m.storePushes == nil {
		return
	}
	m.storePushes.Inc()
}

// SetRecordCount records the size of the latest snapshot.
func (m *ServiceMetrics) SetRecordCount(n int) {
	if m == nil || m.records == nil {
		return
	}
	m.records.Set(float64(n))
}

// IncGatewayCall counts one gateway request for the named operation.
func (m *ServiceMetrics) IncGatewayCall(op string, err error) {
	if m == nil || m.gatewayCalls == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.gatewayCalls.WithLabelValues(normalizeLabel(op), outcome).Inc()
}

// SetStreamClients records the connected client count.
func (m *ServiceMetrics) SetStreamClients(n int) {
	if m == nil || m.streamClients == nil {
		return
	}
	m.streamClients.Set(float64(n))
}

func normalizeLabel(op string) string {
	if op == "" {
		return "unknown"
	}
	return op
}
