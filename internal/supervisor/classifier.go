package supervisor

import "context"

// LLMClassification is the structured result an external LLM classifier
// must return.
type LLMClassification struct {
	Intent Intent
	Agents []Agent
}

// LLMClassifier is the external-collaborator seam for ambiguous utterances,
// kept as an interface so the concrete LLM integration stays out of this
// module and no vendor wiring leaks into the classifier.
type LLMClassifier interface {
	Classify(ctx context.Context, utterance string) (LLMClassification, error)
}

// Plan is the Supervisor's output: an intent and the ordered agent list
// to run for it.
type Plan struct {
	Intent Intent
	Agents []Agent
	// Source records which stage produced the plan: "pattern", "llm", or
	// "semantic_fallback" — useful for tracing, never asserted on by
	// callers beyond logging.
	Source string
}

// Supervisor classifies utterances into a Plan.
type Supervisor struct {
	llm LLMClassifier
}

// New builds a Supervisor. llm may be nil, in which case ambiguous
// utterances fall straight through to the semantic-retriever fallback.
func New(llm LLMClassifier) *Supervisor {
	return &Supervisor{llm: llm}
}

// Plan classifies utterance: weighted pattern matching first; on an
// uncertain or empty result it defers to the LLM classifier (if any); on
// total failure (no classifier, or the classifier errors) it routes to the
// semantic retriever alone.
func (s *Supervisor) Plan(ctx context.Context, utterance string) Plan {
	if intent, ok := Classify(utterance); ok {
		if agents := RouteFor(intent); len(agents) > 0 {
			return Plan{Intent: intent, Agents: agents, Source: "pattern"}
		}
	}

	if s.llm != nil {
		if result, err := s.llm.Classify(ctx, utterance); err == nil && len(result.Agents) > 0 {
			if validAgents(result.Agents) {
				return Plan{Intent: result.Intent, Agents: result.Agents, Source: "llm"}
			}
		}
	}

	return Plan{
		Intent: IntentGeneralSearch,
		Agents: []Agent{AgentSemantic},
		Source: "semantic_fallback",
	}
}

func validAgents(agents []Agent) bool {
	known := map[Agent]bool{
		AgentTabular: true, AgentSemantic: true, AgentValidator: true,
		AgentGeospatial: true, AgentPlanner: true,
	}
	for _, a := range agents {
		if !known[a] {
			return false
		}
	}
	return true
}
