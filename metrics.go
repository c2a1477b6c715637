package gimbal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts rig activity. One Metrics may be shared by many rigs; every
// series is labelled with the rig name.
type Metrics struct {
	frames        *prometheus.CounterVec
	operations    *prometheus.CounterVec
	fullyConsumed *prometheus.CounterVec
	cameraCuts    *prometheus.CounterVec
	shakeTimeLeft *prometheus.GaugeVec
}

// NewMetrics creates the rig collectors and registers them with reg. A nil
// reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		frames: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gimbal_rig_frames_total",
			Help: "Number of frames evaluated",
		}, []string{"rig"}),
		operations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gimbal_rig_operations_total",
			Help: "Number of operations pushed through a rig, by type",
		}, []string{"rig", "type"}),
		fullyConsumed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gimbal_rig_operations_consumed_total",
			Help: "Number of operations fully absorbed by a rig, by type",
		}, []string{"rig", "type"}),
		cameraCuts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gimbal_rig_camera_cuts_total",
			Help: "Number of frames evaluated as camera cuts",
		}, []string{"rig"}),
		shakeTimeLeft: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gimbal_rig_shake_time_left_seconds",
			Help: "Remaining shake time after the last frame; -1 for unbounded shakes",
		}, []string{"rig"}),
	}
}

func (m *Metrics) observeFrame(rig string, cut bool) {
	if m == nil {
		return
	}
	m.frames.WithLabelValues(rig).Inc()
	if cut {
		m.cameraCuts.WithLabelValues(rig).Inc()
	}
}

func (m *Metrics) observeOperation(rig string, op Operation) {
	if m == nil {
		return
	}
	typ := op.OperationType().String()
	m.operations.WithLabelValues(rig, typ).Inc()
	if isOperationConsumed(op) {
		m.fullyConsumed.WithLabelValues(rig, typ).Inc()
	}
}

func (m *Metrics) observeShake(rig string, timeLeft float64) {
	if m == nil {
		return
	}
	m.shakeTimeLeft.WithLabelValues(rig).Set(timeLeft)
}
