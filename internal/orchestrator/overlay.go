package orchestrator

import (
	"fmt"

	"medbridge/internal/supervisor"
)

// overlayListKeys are the known list-shaped keys collected across every
// agent payload into one deduplicated overlay.
var overlayListKeys = []string{
	"facilities", "results", "stops", "placements", "suggestions",
	"worst_cold_spots", "alternatives", "regions", "anomalies", "gaps", "deserts",
}

// overlaySingletonKeys are copied from the first agent payload that
// carries them, in execution order.
var overlaySingletonKeys = []string{"primary_facility", "backup_facility"}

// coordinateAliasPairs lists the recognized lat/lng key-name pairs an entry
// may use.
var coordinateAliasPairs = [][2]string{
	{"lat", "lng"},
	{"latitude", "longitude"},
	{"center_lat", "center_lng"},
	{"suggested_lat", "suggested_lng"},
	{"grid_lat", "grid_lng"},
}

// buildOverlay collects every dict under the known list keys across all
// agent payloads (in execution order), normalizes coordinate aliases, drops
// entries missing either coordinate, and dedupes by entity name.
func buildOverlay(results map[supervisor.Agent]any, order []supervisor.Agent) map[string]any {
	overlay := map[string]any{}
	lists := map[string][]any{}
	seen := map[string]map[string]bool{}

	for _, agent := range order {
		m, ok := toMap(results[agent])
		if !ok {
			continue
		}

		for _, key := range overlayListKeys {
			raw, present := m[key]
			if !present {
				continue
			}
			entries, ok := raw.([]any)
			if !ok {
				continue
			}
			if seen[key] == nil {
				seen[key] = map[string]bool{}
			}
			for _, entry := range entries {
				entryMap, ok := entry.(map[string]any)
				if !ok {
					continue
				}
				normalized, hasCoords := normalizeCoordinates(entryMap)
				if !hasCoords {
					continue
				}
				name := entityName(normalized)
				if seen[key][name] {
					continue
				}
				seen[key][name] = true
				lists[key] = append(lists[key], normalized)
			}
		}

		for _, key := range overlaySingletonKeys {
			if _, already := overlay[key]; already {
				continue
			}
			if v, present := m[key]; present {
				overlay[key] = v
			}
		}
	}

	for key, entries := range lists {
		overlay[key] = entries
	}
	return overlay
}

// normalizeCoordinates copies entry, rewriting any recognized coordinate
// alias pair into lat/lng, and reports whether both coordinates resolved.
func normalizeCoordinates(entry map[string]any) (map[string]any, bool) {
	out := make(map[string]any, len(entry))
	for k, v := range entry {
		out[k] = v
	}

	if _, hasLat := out["lat"]; !hasLat {
		for _, pair := range coordinateAliasPairs {
			latKey, lngKey := pair[0], pair[1]
			if lat, ok := out[latKey]; ok {
				if lng, ok := out[lngKey]; ok {
					out["lat"] = lat
					out["lng"] = lng
					break
				}
			}
		}
	}

	_, hasLat := out["lat"]
	_, hasLng := out["lng"]
	return out, hasLat && hasLng
}

// entityName derives the dedup key for an overlay entry: its "name" field
// if present, else a stable fallback built from its coordinates.
func entityName(entry map[string]any) string {
	if name, ok := entry["name"].(string); ok && name != "" {
		return name
	}
	return fmt.Sprintf("%v,%v", entry["lat"], entry["lng"])
}
