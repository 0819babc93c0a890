// Package quota estimates free-tier usage for compute requests, storage
// and AI neurons.
package quota

import "fmt"

// Resource is a metered free-tier resource.
type Resource string

const (
	ResourceRequests Resource = "requests"
	ResourceStorage  Resource = "storage"
	ResourceNeurons  Resource = "neurons"
)

// Daily and monthly free-tier limits.
const (
	RequestLimit = 100_000 // requests per day
	StorageLimit = 10.0    // GB
	NeuronLimit  = 10_000  // neurons per day
)

// alertThreshold is the usage percentage above which a resource is
// flagged.
const alertThreshold = 80

// Severity buckets the aggregate load.
type Severity string

const (
	SeverityOK       Severity = "ok"
	SeverityWarn     Severity = "warn"
	SeverityCritical Severity = "critical"
)

// Usage is the planned consumption to evaluate.
type Usage struct {
	Requests  float64 // per day
	StorageGB float64
	Neurons   float64 // per day
}

// DefaultUsage is the calculator's starting point.
func DefaultUsage() Usage {
	return Usage{Requests: 50_000, StorageGB: 5, Neurons: 5_000}
}

// Line is the evaluation of one resource.
type Line struct {
	Resource Resource
	Value    float64
	Limit    float64
	Percent  float64
	Label    string
}

// Alert reports whether the line is above the alert threshold.
func (l Line) Alert() bool {
	return l.Percent > alertThreshold
}

// Report is the full evaluation.
type Report struct {
	Lines    []Line
	Total    float64
	Severity Severity
}

// Evaluate computes per-resource usage, the mean load and its severity.
// Negative values are rejected.
func Evaluate(u Usage) (Report, error) {
	if u.Requests < 0 || u.StorageGB < 0 || u.Neurons < 0 {
		return Report{}, fmt.Errorf("usage values must not be negative")
	}

	lines := []Line{
		line(ResourceRequests, u.Requests, RequestLimit, "CRITICAL"),
		line(ResourceStorage, u.StorageGB, StorageLimit, "CAPACITY"),
		line(ResourceNeurons, u.Neurons, NeuronLimit, "BURSTING"),
	}

	var sum float64
	for _, l := range lines {
		sum += l.Percent
	}
	total := sum / float64(len(lines))

	return Report{Lines: lines, Total: total, Severity: SeverityFor(total)}, nil
}

func line(r Resource, value, limit float64, alertLabel string) Line {
	l := Line{Resource: r, Value: value, Limit: limit, Percent: value / limit * 100}
	l.Label = "STABLE"
	if l.Alert() {
		l.Label = alertLabel
	}
	return l
}

// SeverityFor buckets a load percentage: ok up to 50, warn up to 85,
// critical above.
func SeverityFor(percent float64) Severity {
	switch {
	case percent > 85:
		return SeverityCritical
	case percent > 50:
		return SeverityWarn
	default:
		return SeverityOK
	}
}
