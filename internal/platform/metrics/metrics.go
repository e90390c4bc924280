package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps process-lifetime counters for HTTP traffic and payroll
// activity.
type Collector struct {
	totalRequests   atomic.Uint64
	errorRequests   atomic.Uint64
	totalDurationMs atomic.Uint64

	payslipsWritten atomic.Uint64
	noClaim         atomic.Uint64
	generationRuns  atomic.Uint64
	progressionRuns atomic.Uint64
	claimsSubmitted atomic.Uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	c.totalRequests.Add(1)
	if status >= 500 {
		c.errorRequests.Add(1)
	}
	c.totalDurationMs.Add(uint64(duration.Milliseconds()))
}

func (c *Collector) GenerationRun(written, noClaim int) {
	c.generationRuns.Add(1)
	c.payslipsWritten.Add(uint64(written))
	c.noClaim.Add(uint64(noClaim))
}

func (c *Collector) ProgressionRun() {
	c.progressionRuns.Add(1)
}

func (c *Collector) ClaimSubmitted() {
	c.claimsSubmitted.Add(1)
}

func (c *Collector) Snapshot() map[string]any {
	total := c.totalRequests.Load()
	totalMs := c.totalDurationMs.Load()
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":        total,
		"errorsTotal":          c.errorRequests.Load(),
		"avgDurationMs":        avg,
		"totalDurationMs":      totalMs,
		"payslipsWrittenTotal": c.payslipsWritten.Load(),
		"payslipsNoClaimTotal": c.noClaim.Load(),
		"generationRunsTotal":  c.generationRuns.Load(),
		"progressionRunsTotal": c.progressionRuns.Load(),
		"claimsSubmittedTotal": c.claimsSubmitted.Load(),
	}
}
