package analyzer

import (
	"time"

	"grammarbot/pkg/types"
)

// Status builds a detailed status response for /status.
func (a *Analyzer) Status() types.StatusResponse {
	a.mu.RLock()
	lastErr := a.lastError
	a.mu.RUnlock()

	resp := types.StatusResponse{
		State:          "ready",
		Labels:         a.Labels(),
		QueueLen:       len(a.queueCh) - len(a.genCh),
		Inflight:       len(a.genCh),
		MaxQueueDepth:  cap(a.queueCh),
		AnalysesTotal:  a.analysesTotal.Load(),
		CacheHitsTotal: a.cacheHitsTotal.Load(),
		CacheEnabled:   a.cache != nil,
		LastError:      lastErr,
		UptimeSeconds:  int64(time.Since(a.startTime).Seconds()),
		ServerTimeUnix: time.Now().Unix(),
	}
	if resp.QueueLen < 0 {
		resp.QueueLen = 0
	}
	resp.Backends = make([]types.BackendStatus, 0, 2)
	if a.corrector != nil {
		resp.Backends = append(resp.Backends, types.BackendStatus{Task: "correction", Backend: a.corrector.Name(), Model: a.corrector.Model()})
	}
	if a.classifier != nil {
		resp.Backends = append(resp.Backends, types.BackendStatus{Task: "classification", Backend: a.classifier.Name(), Model: a.classifier.Model()})
	}
	switch {
	case !a.Ready():
		resp.State = "error"
	case lastErr != "":
		resp.State = "degraded"
	}
	return resp
}
