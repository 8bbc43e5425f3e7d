package main

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"medbridge/internal/config"
	"medbridge/internal/geodata"
	"medbridge/internal/geospatial"
	"medbridge/internal/orchestrator"
	"medbridge/internal/planner"
	"medbridge/internal/semantic"
	"medbridge/internal/supervisor"
	"medbridge/internal/tabular"
	"medbridge/internal/validator"
)

// tabularAgent adapts the Tabular Analyst to orchestrator.AgentFunc.
func tabularAgent(analyst *tabular.Analyst) orchestrator.AgentFunc {
	return func(_ context.Context, state *orchestrator.QueryState) (any, []orchestrator.Citation, error) {
		result := analyst.Answer(state.Utterance)
		citations := make([]orchestrator.Citation, len(result.Citations))
		for i, c := range result.Citations {
			citations[i] = orchestrator.Citation{Agent: string(supervisor.AgentTabular), PKUniqueID: c.PKUniqueID, Field: c.Field}
		}
		return result, citations, nil
	}
}

// semanticAgent adapts the Semantic Retriever to orchestrator.AgentFunc.
func semanticAgent(retriever *semantic.Retriever) orchestrator.AgentFunc {
	const defaultTopK = 10
	return func(ctx context.Context, state *orchestrator.QueryState) (any, []orchestrator.Citation, error) {
		docs := retriever.Search(ctx, state.Utterance, defaultTopK)
		return map[string]any{
			"action":  "semantic_search",
			"results": docs,
			"top_k":   defaultTopK,
		}, nil, nil
	}
}

// validatorAgent adapts the Validator to orchestrator.AgentFunc, extracting
// the specialty the utterance names (if any) via the same keyword
// extraction the tabular analyst uses.
func validatorAgent(checker *validator.Validator, knownPlaces []string) orchestrator.AgentFunc {
	return func(_ context.Context, state *orchestrator.QueryState) (any, []orchestrator.Citation, error) {
		filters := tabular.ExtractFilters(state.Utterance, knownPlaces)
		report := checker.Answer(state.Utterance, filters.Specialty)
		return report, nil, nil
	}
}

// geospatialAgent adapts the Geospatial Analyst to orchestrator.AgentFunc,
// resolving the query center from the caller-supplied context or by
// geocoding a recognized city named in the utterance.
func geospatialAgent(analyst *geospatial.Analyst, geo *geodata.Table, cfg config.Config, knownPlaces []string) orchestrator.AgentFunc {
	return func(ctx context.Context, state *orchestrator.QueryState) (any, []orchestrator.Citation, error) {
		filters := tabular.ExtractFilters(state.Utterance, knownPlaces)
		lat, lng, hasCenter := contextCenter(state.Context)
		if !hasCenter && filters.Region != "" {
			if cLat, cLng, ok := geo.CityCoords(filters.Region); ok {
				lat, lng, hasCenter = cLat, cLng, true
			}
		}

		cityA, cityB := firstTwoPlaces(state.Utterance, knownPlaces)

		in := geospatial.DispatchInput{
			Utterance:   state.Utterance,
			CenterLat:   lat,
			CenterLng:   lng,
			HasCenter:   hasCenter,
			Specialty:   filters.Specialty,
			K:           5,
			CityA:       cityA,
			CityB:       cityB,
			BoundingBox: [4]float64{cfg.BoundingBox.MinLat, cfg.BoundingBox.MaxLat, cfg.BoundingBox.MinLng, cfg.BoundingBox.MaxLng},
		}
		result := analyst.Dispatch(ctx, in)
		return result, nil, nil
	}
}

// plannerAgent adapts the Planner to orchestrator.AgentFunc.
func plannerAgent(p *planner.Planner, knownPlaces []string) orchestrator.AgentFunc {
	return func(ctx context.Context, state *orchestrator.QueryState) (any, []orchestrator.Citation, error) {
		filters := tabular.ExtractFilters(state.Utterance, knownPlaces)
		useQuantum, _ := contextBool(state.Context, "use_quantum")
		originLat, originLng, hasOrigin := contextCenter(state.Context)
		if !hasOrigin {
			originLat, originLng = planner.AccraLat, planner.AccraLng
		}

		in := planner.DispatchInput{
			Utterance:  state.Utterance,
			Specialty:  filters.Specialty,
			OriginLat:  originLat,
			OriginLng:  originLng,
			Max:        8,
			UseQuantum: useQuantum,
		}
		result := p.Dispatch(ctx, in)
		return result, nil, nil
	}
}

// firstTwoPlaces finds the first two distinct known place names appearing
// in the utterance as whole words, in textual order, for the
// distance-between-cities handler.
func firstTwoPlaces(utterance string, knownPlaces []string) (string, string) {
	lower := strings.ToLower(utterance)

	type hit struct {
		place string
		pos   int
	}
	var hits []hit
	for _, place := range knownPlaces {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(place)) + `\b`)
		if loc := re.FindStringIndex(lower); loc != nil {
			hits = append(hits, hit{place: place, pos: loc[0]})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].pos != hits[j].pos {
			return hits[i].pos < hits[j].pos
		}
		// Same start position means one place name prefixes another
		// ("accra" inside "greater accra"); prefer the longer one.
		return len(hits[i].place) > len(hits[j].place)
	})

	var a, b string
	for _, h := range hits {
		switch {
		case a == "":
			a = h.place
		case b == "" && h.place != a && !strings.Contains(a, h.place):
			b = h.place
		}
	}
	if b == "" {
		return "", ""
	}
	return a, b
}

func contextCenter(ctx map[string]any) (lat, lng float64, ok bool) {
	if ctx == nil {
		return 0, 0, false
	}
	latV, latOK := toFloat(ctx["lat"])
	lngV, lngOK := toFloat(ctx["lng"])
	if latOK && lngOK {
		return latV, lngV, true
	}
	return 0, 0, false
}

func contextBool(ctx map[string]any, key string) (bool, bool) {
	if ctx == nil {
		return false, false
	}
	v, ok := ctx[key]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
