// Package synthesis defines the external synthesizer contract and a
// deterministic fallback used whenever the synthesizer is unavailable.
package synthesis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
)

// TraceEntry mirrors one orchestrator pipeline step, passed into the
// synthesizer for context.
type TraceEntry struct {
	Agent      string
	Action     string
	DurationMS int64
	Error      string
}

// Citation mirrors one agent-produced citation.
type Citation struct {
	Agent      string
	PKUniqueID string
	Field      string
}

// Request bundles everything the synthesizer needs to produce a natural
// language summary.
type Request struct {
	Query        string
	AgentResults map[string]any
	Trace        []TraceEntry
	Citations    []Citation
	Intent       string
}

// Synthesizer is the external-collaborator seam for natural-language
// summarization, kept as an interface so the concrete LLM call stays out
// of this module.
type Synthesizer interface {
	Synthesize(ctx context.Context, req Request) (string, error)
}

// FallbackSummary derives a deterministic per-agent one-liner from action
// and result counts when no synthesizer is configured or the synthesizer
// call fails.
func FallbackSummary(req Request) string {
	if len(req.AgentResults) == 0 {
		return ""
	}

	agents := make([]string, 0, len(req.AgentResults))
	for agent := range req.AgentResults {
		agents = append(agents, agent)
	}
	sort.Strings(agents)

	lines := make([]string, 0, len(agents))
	for _, agent := range agents {
		lines = append(lines, summarizeOne(agent, req.AgentResults[agent]))
	}

	summary := lines[0]
	for _, l := range lines[1:] {
		summary += " " + l
	}
	return summary
}

func summarizeOne(agent string, payload any) string {
	m, ok := payloadAsMap(payload)
	if !ok {
		return fmt.Sprintf("%s: responded.", agent)
	}
	if errMsg, hasErr := m["error"]; hasErr {
		return fmt.Sprintf("%s: failed (%v).", agent, errMsg)
	}

	action, _ := m["action"].(string)
	count := countEntries(m)
	switch {
	case count > 0 && action != "":
		return fmt.Sprintf("%s (%s) returned %d result(s).", agent, action, count)
	case action != "":
		return fmt.Sprintf("%s (%s) completed.", agent, action)
	default:
		return fmt.Sprintf("%s: responded.", agent)
	}
}

// payloadAsMap views a payload generically, round-tripping concrete result
// structs through JSON so the summary can read their action and list
// fields without knowing each agent's type.
func payloadAsMap(payload any) (map[string]any, bool) {
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

// countEntries counts entries across the common list-shaped result
// fields, summed, to give the fallback a rough "result(s)" count without
// any synthesizer-specific knowledge of the payload's schema.
func countEntries(m map[string]any) int {
	listFields := []string{
		"facilities", "results", "stops", "placements", "suggestions",
		"worst_cold_spots", "alternatives", "regions", "anomalies", "gaps",
		"deserts", "recommendations", "candidates",
	}
	total := 0
	for _, field := range listFields {
		if v, ok := m[field]; ok {
			if list, ok := v.([]any); ok {
				total += len(list)
			}
		}
	}
	if countVal, ok := m["count"]; ok {
		if f, ok := countVal.(float64); ok {
			total += int(f)
		}
	}
	return total
}
