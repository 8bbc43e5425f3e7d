package orchestrator

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"medbridge/internal/logging"
	"medbridge/internal/supervisor"
	"medbridge/internal/synthesis"
)

const (
	minUtteranceLen = 1
	maxUtteranceLen = 2000
)

// ValidationError reports a client-visible input_validation failure.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string { return e.Message }

// AgentFunc runs one agent against state and returns its raw payload plus
// any citations it produced. Agents never abort the pipeline themselves: a
// non-nil error is caught by the orchestrator and turned into an {error,
// action} payload.
type AgentFunc func(ctx context.Context, state *QueryState) (payload any, citations []Citation, err error)

// Orchestrator wires the Supervisor, the five agents, and the external
// synthesizer into the orchestration state machine.
type Orchestrator struct {
	supervisor  *supervisor.Supervisor
	agents      map[supervisor.Agent]AgentFunc
	synthesizer synthesis.Synthesizer
	logger      logging.Logger
}

// New builds an Orchestrator. synthesizer may be nil, in which case the
// deterministic fallback summary is always used.
func New(sup *supervisor.Supervisor, agents map[supervisor.Agent]AgentFunc, synthesizer synthesis.Synthesizer, logger logging.Logger) *Orchestrator {
	if logger == nil {
		logger = &logging.NoOpLogger{}
	}
	return &Orchestrator{supervisor: sup, agents: agents, synthesizer: synthesizer, logger: logger}
}

// Run executes the full Supervisor -> Dispatch -> Aggregate pipeline for a
// single query.
func (o *Orchestrator) Run(ctx context.Context, utterance string, reqContext map[string]any) (*Response, error) {
	start := time.Now()

	if len(utterance) < minUtteranceLen || len(utterance) > maxUtteranceLen {
		return nil, ValidationError{Message: "query must be between 1 and 2000 characters"}
	}

	// System self-description questions are answered directly without
	// running any analytic agent.
	if isMetaQuery(utterance) {
		return o.metaResponse(utterance, start), nil
	}

	state := &QueryState{
		Utterance: utterance,
		Context:   reqContext,
		Results:   make(map[supervisor.Agent]any),
	}

	// 1. Supervisor.
	supStart := time.Now()
	plan := o.supervisor.Plan(ctx, utterance)
	state.Intent = plan.Intent
	state.RequiredAgents = plan.Agents
	state.Cursor = 0
	state.Trace = append(state.Trace, TraceEntry{
		Step:       "supervisor",
		Action:     string(plan.Intent),
		DurationMS: time.Since(supStart).Milliseconds(),
	})

	// 2-3. Dispatch each required agent in order, isolating failures.
	// Cancellation between agents discards all partial results.
	for state.Cursor < len(state.RequiredAgents) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		agentName := state.RequiredAgents[state.Cursor]
		o.dispatch(ctx, state, agentName)
		state.Cursor++
	}

	// 4. Aggregate.
	response := o.aggregate(state)

	summary := o.synthesize(ctx, state, response)

	agentsUsed := make([]string, len(state.RequiredAgents))
	for i, a := range state.RequiredAgents {
		agentsUsed[i] = string(a)
	}

	return &Response{
		Query:           utterance,
		Intent:          string(state.Intent),
		Response:        response,
		Summary:         summary,
		Trace:           state.Trace,
		Citations:       state.Citations,
		AgentsUsed:      agentsUsed,
		TotalDurationMS: time.Since(start).Milliseconds(),
	}, nil
}

var metaQueryCues = []string{
	"what can you do", "what do you do", "list agents", "which agents",
	"who are you", "how do you work",
}

func isMetaQuery(utterance string) bool {
	lower := strings.ToLower(utterance)
	for _, cue := range metaQueryCues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}

func (o *Orchestrator) metaResponse(utterance string, start time.Time) *Response {
	capabilities := map[string]any{
		"action": "system_capabilities",
		"agents": []string{"tabular", "semantic", "validator", "geospatial", "planner"},
		"description": "Ask about facility counts, services in a region, nearby facilities, " +
			"coverage gaps, medical deserts, capability verification, or routing and rotation plans.",
	}
	return &Response{
		Query:    utterance,
		Intent:   "meta",
		Response: capabilities,
		Summary:  "I analyze the Ghana facility catalog with five agents: tabular, semantic, validator, geospatial, and planner.",
		// Even with no agents the trace carries the supervisor and aggregate
		// steps, so |trace| >= 1 + |agents_used| + 1 holds on this path too.
		Trace: []TraceEntry{
			{
				Step:       "supervisor",
				Action:     "meta",
				DurationMS: time.Since(start).Milliseconds(),
			},
			{Step: "aggregate"},
		},
		Citations:       nil,
		AgentsUsed:      []string{},
		TotalDurationMS: time.Since(start).Milliseconds(),
	}
}

func (o *Orchestrator) dispatch(ctx context.Context, state *QueryState, agentName supervisor.Agent) {
	agentStart := time.Now()
	fn, known := o.agents[agentName]
	if !known {
		state.Results[agentName] = map[string]any{"error": "agent not wired", "action": string(agentName)}
		state.Trace = append(state.Trace, TraceEntry{
			Step:       string(agentName),
			DurationMS: time.Since(agentStart).Milliseconds(),
			Error:      "agent not wired",
		})
		return
	}

	payload, citations, err := fn(ctx, state)
	durationMS := time.Since(agentStart).Milliseconds()

	if err != nil {
		o.logger.Warn("agent failed", "agent", string(agentName), "error", err.Error())
		state.Results[agentName] = map[string]any{"error": err.Error(), "action": string(agentName)}
		state.Trace = append(state.Trace, TraceEntry{Step: string(agentName), DurationMS: durationMS, Error: err.Error()})
		return
	}

	state.Results[agentName] = payload
	state.Citations = append(state.Citations, citations...)
	state.Trace = append(state.Trace, TraceEntry{Step: string(agentName), Action: actionOf(payload), DurationMS: durationMS})
}

// aggregate builds the response payload: a single agent's payload passes
// through directly; more than one is wrapped with a deduplicated map
// overlay.
func (o *Orchestrator) aggregate(state *QueryState) map[string]any {
	aggStart := time.Now()
	defer func() {
		state.Trace = append(state.Trace, TraceEntry{Step: "aggregate", DurationMS: time.Since(aggStart).Milliseconds()})
	}()

	if len(state.RequiredAgents) == 1 {
		only := state.RequiredAgents[0]
		if m, ok := toMap(state.Results[only]); ok {
			return m
		}
		return map[string]any{"result": state.Results[only]}
	}

	results := make(map[string]any, len(state.RequiredAgents))
	for _, a := range state.RequiredAgents {
		results[string(a)] = state.Results[a]
	}

	overlay := buildOverlay(state.Results, state.RequiredAgents)
	response := map[string]any{
		"multi_agent": true,
		"results":     results,
	}
	for k, v := range overlay {
		response[k] = v
	}
	return response
}

func (o *Orchestrator) synthesize(ctx context.Context, state *QueryState, response map[string]any) string {
	req := synthesis.Request{
		Query:        state.Utterance,
		AgentResults: toAgentResultsMap(state.Results),
		Trace:        toSynthesisTrace(state.Trace),
		Citations:    toSynthesisCitations(state.Citations),
		Intent:       string(state.Intent),
	}

	if o.synthesizer == nil {
		return synthesis.FallbackSummary(req)
	}

	summary, err := o.synthesizer.Synthesize(ctx, req)
	if err != nil {
		o.logger.Warn("synthesizer failed, using fallback summary", "error", err.Error())
		return synthesis.FallbackSummary(req)
	}
	return summary
}

func toAgentResultsMap(results map[supervisor.Agent]any) map[string]any {
	out := make(map[string]any, len(results))
	for agent, payload := range results {
		out[string(agent)] = payload
	}
	return out
}

func toSynthesisTrace(trace []TraceEntry) []synthesis.TraceEntry {
	out := make([]synthesis.TraceEntry, len(trace))
	for i, t := range trace {
		out[i] = synthesis.TraceEntry{Agent: t.Step, Action: t.Action, DurationMS: t.DurationMS, Error: t.Error}
	}
	return out
}

func toSynthesisCitations(citations []Citation) []synthesis.Citation {
	out := make([]synthesis.Citation, len(citations))
	for i, c := range citations {
		out[i] = synthesis.Citation{Agent: c.Agent, PKUniqueID: c.PKUniqueID, Field: c.Field}
	}
	return out
}

func actionOf(payload any) string {
	m, ok := toMap(payload)
	if !ok {
		return ""
	}
	action, _ := m["action"].(string)
	return action
}

// toMap round-trips payload through JSON to get a generic map, the same
// technique used by buildOverlay to stay agnostic of each agent's
// concrete result type.
func toMap(payload any) (map[string]any, bool) {
	if payload == nil {
		return nil, false
	}
	if m, ok := payload.(map[string]any); ok {
		return m, true
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, false
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, false
	}
	return m, true
}
