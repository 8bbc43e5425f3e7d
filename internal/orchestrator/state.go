// Package orchestrator implements the Orchestrator: a small state
// machine that runs Supervisor -> agents -> Aggregate for a single query,
// threading state and building the final response.
package orchestrator

import (
	"medbridge/internal/supervisor"
)

// TraceEntry is one step of the pipeline's execution trace, in strict
// execution order.
type TraceEntry struct {
	Step       string `json:"step"` // "supervisor", the agent name, or "aggregate"
	Action     string `json:"action,omitempty"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

// Citation is one agent-attributed citation, accumulated in execution
// order.
type Citation struct {
	Agent      string `json:"agent"`
	PKUniqueID string `json:"pk_unique_id"`
	Field      string `json:"field"`
}

// QueryState is the per-request state threaded through the pipeline.
type QueryState struct {
	Utterance      string
	Context        map[string]any
	Intent         supervisor.Intent
	RequiredAgents []supervisor.Agent
	Cursor         int
	// Results holds each executed agent's raw payload, keyed by agent name,
	// available to later agents as derived context.
	Results   map[supervisor.Agent]any
	Trace     []TraceEntry
	Citations []Citation
}

// Response is the final payload returned to the caller.
type Response struct {
	Query           string     `json:"query"`
	Intent          string     `json:"intent"`
	Response        any        `json:"response"`
	Summary         string     `json:"summary"`
	Trace           []TraceEntry `json:"trace"`
	Citations       []Citation   `json:"citations"`
	AgentsUsed      []string     `json:"agents_used"`
	TotalDurationMS int64        `json:"total_duration_ms"`
}
