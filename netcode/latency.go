package netcode

// MaxSimulatedLatencyMs is the upper bound for operator-configured simulated
// latency.
const MaxSimulatedLatencyMs = 500

// LatencyModel holds the operator-configured simulated extra latency. Values
// are clamped to [0, max] on write; the clamp is the only logic here.
type LatencyModel struct {
	simulatedMs int64
	max         int64
}

func NewLatencyModel(max int64) *LatencyModel {
	if max < 0 {
		max = 0
	}
	return &LatencyModel{max: max}
}

func (m *LatencyModel) Set(ms int64) {
	if ms < 0 {
		ms = 0
	}
	if ms > m.max {
		ms = m.max
	}
	m.simulatedMs = ms
}

func (m *LatencyModel) Get() int64 {
	return m.simulatedMs
}

// Max returns the clamp bound, for slider scaling.
func (m *LatencyModel) Max() int64 {
	return m.max
}
