// Package supervisor implements the Supervisor: it classifies an
// utterance into an intent from a closed set and maps that intent onto an
// ordered list of agents to run.
package supervisor

// Intent is one member of the closed classification set.
type Intent string

// The closed intent enum, in the fixed tie-break order used when two
// intents score equally.
const (
	IntentCounting               Intent = "counting"
	IntentServices                Intent = "services"
	IntentRegion                  Intent = "region"
	IntentNearby                  Intent = "nearby"
	IntentCoverageGap             Intent = "coverage_gap"
	IntentEquipmentVerification   Intent = "equipment_verification"
	IntentSuspiciousClaims        Intent = "suspicious_claims"
	IntentCorrelation             Intent = "correlation"
	IntentWorkforce               Intent = "workforce"
	IntentResourceDistribution    Intent = "resource_distribution"
	IntentDesertDetection         Intent = "desert_detection"
	IntentNGO                     Intent = "ngo"
	IntentGeneralSearch           Intent = "general_search"
)

// orderedIntents fixes the enum order used for deterministic tie-breaks.
var orderedIntents = []Intent{
	IntentCounting,
	IntentServices,
	IntentRegion,
	IntentNearby,
	IntentCoverageGap,
	IntentEquipmentVerification,
	IntentSuspiciousClaims,
	IntentCorrelation,
	IntentWorkforce,
	IntentResourceDistribution,
	IntentDesertDetection,
	IntentNGO,
	IntentGeneralSearch,
}

// Agent names the closed set of executable agents.
type Agent string

const (
	AgentTabular    Agent = "tabular"
	AgentSemantic   Agent = "semantic"
	AgentValidator  Agent = "validator"
	AgentGeospatial Agent = "geospatial"
	AgentPlanner    Agent = "planner"
)

// routingTable maps each intent onto its fixed ordered agent list.
var routingTable = map[Intent][]Agent{
	IntentCounting:             {AgentTabular},
	IntentServices:             {AgentTabular, AgentSemantic},
	IntentRegion:               {AgentTabular},
	IntentNearby:               {AgentGeospatial},
	IntentCoverageGap:          {AgentGeospatial},
	IntentEquipmentVerification: {AgentValidator},
	IntentSuspiciousClaims:     {AgentValidator},
	IntentCorrelation:          {AgentValidator, AgentGeospatial},
	IntentWorkforce:            {AgentTabular, AgentPlanner},
	IntentResourceDistribution: {AgentPlanner},
	IntentDesertDetection:      {AgentGeospatial, AgentPlanner},
	IntentNGO:                  {AgentSemantic},
	IntentGeneralSearch:        {AgentSemantic},
}

// RouteFor returns the agents the fixed routing table assigns to intent.
func RouteFor(intent Intent) []Agent {
	return routingTable[intent]
}
