package supervisor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_NoPatternMatchIsUncertain(t *testing.T) {
	_, ok := Classify("xyzzy plugh")
	assert.False(t, ok)
}

func TestClassify_TieBrokenByEnumOrder(t *testing.T) {
	// "number of" (counting, weight 2) and "region" (region, weight 2)
	// score identically; counting precedes region in orderedIntents, so
	// counting must win the tie.
	intent, ok := Classify("number of facilities in this region")
	require.True(t, ok)
	assert.Equal(t, IntentCounting, intent)
}

func TestClassify_HowManyHospitalsOffer_ScoresCountingAboveServices(t *testing.T) {
	intent, ok := Classify("How many hospitals offer cardiology services?")
	require.True(t, ok)
	assert.Equal(t, IntentCounting, intent)
	assert.Equal(t, []Agent{AgentTabular}, RouteFor(intent))
}

func TestRouteFor_KnownIntentReturnsNonEmptyAgents(t *testing.T) {
	agents := RouteFor(IntentCounting)
	assert.Equal(t, []Agent{AgentTabular}, agents)
}

func TestRouteFor_AllRoutedAgentsAreFromKnownSet(t *testing.T) {
	known := map[Agent]bool{
		AgentTabular: true, AgentSemantic: true, AgentValidator: true,
		AgentGeospatial: true, AgentPlanner: true,
	}
	for _, intent := range orderedIntents {
		for _, a := range RouteFor(intent) {
			assert.True(t, known[a], "unknown agent %q routed for intent %q", a, intent)
		}
	}
}

type stubLLM struct {
	result LLMClassification
	err    error
}

func (s stubLLM) Classify(ctx context.Context, utterance string) (LLMClassification, error) {
	return s.result, s.err
}

func TestPlan_PatternMatchTakesPrecedenceOverLLM(t *testing.T) {
	s := New(stubLLM{result: LLMClassification{Intent: IntentNGO, Agents: []Agent{AgentSemantic}}})
	plan := s.Plan(context.Background(), "how many facilities have an ICU")
	assert.Equal(t, "pattern", plan.Source)
}

func TestPlan_FallsBackToLLMOnAmbiguousUtterance(t *testing.T) {
	s := New(stubLLM{result: LLMClassification{Intent: IntentNGO, Agents: []Agent{AgentSemantic}}})
	plan := s.Plan(context.Background(), "xyzzy plugh")
	assert.Equal(t, "llm", plan.Source)
	assert.Equal(t, []Agent{AgentSemantic}, plan.Agents)
}

func TestPlan_FallsBackToSemanticOnLLMError(t *testing.T) {
	s := New(stubLLM{err: errors.New("boom")})
	plan := s.Plan(context.Background(), "xyzzy plugh")
	assert.Equal(t, "semantic_fallback", plan.Source)
	assert.Equal(t, []Agent{AgentSemantic}, plan.Agents)
}

func TestPlan_FallsBackToSemanticWhenLLMReturnsUnknownAgent(t *testing.T) {
	s := New(stubLLM{result: LLMClassification{Intent: IntentNGO, Agents: []Agent{"bogus"}}})
	plan := s.Plan(context.Background(), "xyzzy plugh")
	assert.Equal(t, "semantic_fallback", plan.Source)
}

func TestPlan_NoLLMConfiguredFallsBackToSemantic(t *testing.T) {
	s := New(nil)
	plan := s.Plan(context.Background(), "xyzzy plugh")
	assert.Equal(t, "semantic_fallback", plan.Source)
	assert.Equal(t, IntentGeneralSearch, plan.Intent)
}

func TestClassify_MedicalDesertsRouteIncludesGeospatial(t *testing.T) {
	intent, ok := Classify("Where are the medical deserts in Ghana?")
	require.True(t, ok)
	assert.Equal(t, IntentDesertDetection, intent)
	assert.Contains(t, RouteFor(intent), AgentGeospatial)
}

func TestClassify_SpecialistRotationRoutesToPlannerAlone(t *testing.T) {
	intent, ok := Classify("plan a specialist rotation for ophthalmology")
	require.True(t, ok)
	assert.Equal(t, IntentResourceDistribution, intent)
	assert.Equal(t, []Agent{AgentPlanner}, RouteFor(intent))
}

func TestClassify_CapabilityClaimRoutesToValidator(t *testing.T) {
	intent, ok := Classify("facilities claiming neurosurgery without CT scanner")
	require.True(t, ok)
	assert.Equal(t, IntentEquipmentVerification, intent)
	assert.Equal(t, []Agent{AgentValidator}, RouteFor(intent))
}

func TestClassify_WithinRadiusRoutesToGeospatial(t *testing.T) {
	intent, ok := Classify("hospitals within 30 km of 5.60,-0.19 with cardiology")
	require.True(t, ok)
	assert.Equal(t, IntentNearby, intent)
	assert.Equal(t, []Agent{AgentGeospatial}, RouteFor(intent))
}
