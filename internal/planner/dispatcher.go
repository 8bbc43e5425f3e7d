package planner

import (
	"context"
	"strings"
)

var (
	rotationCues   = []string{"rotation", "rotate", "tour", "circuit"}
	equipmentCues  = []string{"equipment distribution", "lacking equipment", "missing equipment", "equipment gap"}
	placementCues  = []string{"new facility", "where to build", "placement", "build a"}
	capacityCues   = []string{"capacity planning", "bed capacity", "staffing capacity"}
)

// equipmentKindLexemes are the recognizable equipment phrases the
// dispatcher can pull out of an utterance when the caller did not name a
// kind explicitly. Longest match wins.
var equipmentKindLexemes = []string{
	"dialysis machine", "ct scanner", "x-ray", "mri", "ultrasound",
	"ventilator", "incubator", "defibrillator", "oxygen",
}

// DispatchInput bundles the inputs the dispatcher needs to pick a handler.
type DispatchInput struct {
	Utterance   string
	Specialty   string
	OriginLat   float64
	OriginLng   float64
	Max         int
	UseQuantum  bool
	EquipmentKind string
}

// Result is a dispatch-agnostic envelope so the orchestrator can treat any
// planner handler's output uniformly.
type Result struct {
	Action string `json:"action"`
	Data   any    `json:"data"`
}

// Dispatch picks exactly one handler by phrase cues, defaulting to
// emergency_routing. ctx is observed by the 2-opt and grid loops.
func (p *Planner) Dispatch(ctx context.Context, in DispatchInput) Result {
	lower := strings.ToLower(in.Utterance)

	switch {
	case containsAny(lower, rotationCues):
		r := p.SpecialistRotation(ctx, in.Specialty, in.Max, in.UseQuantum)
		r.Utterance = in.Utterance
		return Result{Action: r.Action, Data: r}
	case containsAny(lower, equipmentCues):
		kind := in.EquipmentKind
		if kind == "" {
			kind = extractEquipmentKind(lower)
		}
		r := p.EquipmentDistribution(kind)
		r.Utterance = in.Utterance
		return Result{Action: r.Action, Data: r}
	case containsAny(lower, placementCues):
		r := p.NewFacilityPlacement(ctx, in.Specialty)
		r.Utterance = in.Utterance
		return Result{Action: r.Action, Data: r}
	case containsAny(lower, capacityCues):
		r := p.CapacityPlanning()
		r.Utterance = in.Utterance
		return Result{Action: r.Action, Data: r}
	default:
		r := p.EmergencyRouting(in.Specialty, in.OriginLat, in.OriginLng)
		r.Utterance = in.Utterance
		return Result{Action: r.Action, Data: r}
	}
}

func extractEquipmentKind(lower string) string {
	best := ""
	for _, lexeme := range equipmentKindLexemes {
		if strings.Contains(lower, lexeme) && len(lexeme) > len(best) {
			best = lexeme
		}
	}
	return best
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
