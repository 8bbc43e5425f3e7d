package planner

import (
	"context"
	"fmt"
	"time"

	domain "medbridge/internal/facility/domain"
)

// RotationStop is a single stop on a specialist rotation tour.
type RotationStop struct {
	Facility   domain.Facility `json:"facility"`
	LegKM      float64         `json:"leg_km"`
}

// RotationResult is the specialist-rotation handler's payload. The route
// comparison is exposed under both "comparison" (winner, saving) and
// "quantum" (feasibility) so map clients can read either facet.
type RotationResult struct {
	Action          string          `json:"action"`
	Stops           []RotationStop  `json:"stops"`
	TotalDistanceKM float64         `json:"total_distance_km"`
	EstimatedDays   int             `json:"estimated_days"`
	QUBOComparison  *QUBOComparison `json:"comparison,omitempty"`
	Quantum         *QUBOComparison `json:"quantum,omitempty"`
	ActionSteps     []string        `json:"action_steps,omitempty"`
	Utterance       string          `json:"utterance"`
	DurationMS      int64           `json:"duration_ms"`
}

// SpecialistRotation targets facilities lacking specialty, builds a greedy-
// nearest-neighbor tour from the Accra hub, improves it with 2-opt over the
// full cyclic tour (hub as node 0), and reports per-leg distances. ctx is
// observed between 2-opt sweeps.
func (p *Planner) SpecialistRotation(ctx context.Context, specialty string, max int, useQuantum bool) RotationResult {
	start := time.Now()
	if max <= 0 {
		max = 8
	}

	var targets []domain.Facility
	for _, f := range p.table.WithCoords() {
		if !f.HasSpecialty(specialty) {
			targets = append(targets, f)
		}
		if len(targets) >= max {
			break
		}
	}

	tour := greedyNearestNeighborTour(targets)
	tour = twoOpt(ctx, tour, targets)

	result := RotationResult{Action: "specialist_rotation"}

	if useQuantum {
		coords := make([][2]float64, 0, len(targets)+1)
		coords = append(coords, [2]float64{AccraLat, AccraLng})
		for _, idx := range tour {
			coords = append(coords, [2]float64{targets[idx].Lat, targets[idx].Lng})
		}
		comparison := CompareRoutes(coords)
		if comparison.Winner == "quantum" && len(comparison.Order) == len(tour) {
			// The recommended stops must match the winning tour. Order holds
			// positions into coords, where coords[i] is tour[i-1]'s facility.
			reordered := make([]int, len(tour))
			for i, node := range comparison.Order {
				reordered[i] = tour[node-1]
			}
			tour = reordered
		}
		result.QUBOComparison = &comparison
		result.Quantum = &comparison
		result.ActionSteps = rotationActionSteps(comparison)
	}

	stops, totalKM := tourStops(tour, targets)
	result.Stops = stops
	result.TotalDistanceKM = totalKM
	result.EstimatedDays = estimatedDays(len(stops))

	result.DurationMS = time.Since(start).Milliseconds()
	return result
}

// tourStops expands a tour (indices into targets) into per-leg stops from
// the Accra hub, returning the open-path total distance.
func tourStops(tour []int, targets []domain.Facility) ([]RotationStop, float64) {
	stops := make([]RotationStop, len(tour))
	totalKM := 0.0
	prevLat, prevLng := AccraLat, AccraLng
	for i, idx := range tour {
		f := targets[idx]
		leg := haversine(prevLat, prevLng, f.Lat, f.Lng)
		totalKM += leg
		stops[i] = RotationStop{Facility: f, LegKM: leg}
		prevLat, prevLng = f.Lat, f.Lng
	}
	return stops, totalKM
}

// rotationActionSteps turns the route comparison into follow-up steps,
// calling out the km saving whenever the quantum-style tour won.
func rotationActionSteps(c QUBOComparison) []string {
	if !c.Feasible {
		return []string{"Route exceeds the quantum comparison size limit; proceed with the classical tour."}
	}
	if c.Winner == "quantum" {
		return []string{
			fmt.Sprintf("Adopt the quantum-optimized tour: it saves %.1f km (%.1f%%) over the classical route.", c.SavingKM, c.SavingPct),
			"Schedule specialists along the reordered stops.",
		}
	}
	return []string{"Proceed with the classical tour; the comparison found no shorter cyclic route."}
}

func estimatedDays(stops int) int {
	if stops < 1 {
		return 1
	}
	return stops
}

// greedyNearestNeighborTour builds an initial tour starting from the
// Accra hub, always stepping to the nearest unvisited target.
func greedyNearestNeighborTour(targets []domain.Facility) []int {
	n := len(targets)
	if n == 0 {
		return nil
	}
	visited := make([]bool, n)
	tour := make([]int, 0, n)

	curLat, curLng := AccraLat, AccraLng
	for len(tour) < n {
		best := -1
		bestDist := 0.0
		for i, f := range targets {
			if visited[i] {
				continue
			}
			d := haversine(curLat, curLng, f.Lat, f.Lng)
			if best == -1 || d < bestDist {
				best = i
				bestDist = d
			}
		}
		visited[best] = true
		tour = append(tour, best)
		curLat, curLng = targets[best].Lat, targets[best].Lng
	}
	return tour
}

// twoOpt improves tour (indices into targets) by repeatedly reversing
// segments that shorten the full cyclic path, the Accra hub included as
// node 0, until no improving swap remains. The sweep observes ctx between
// iterations and returns the best tour found so far on cancellation.
func twoOpt(ctx context.Context, tour []int, targets []domain.Facility) []int {
	if len(tour) < 3 {
		return tour
	}

	improved := true
	for improved && ctx.Err() == nil {
		improved = false
		best := cyclicTourDistance(tour, targets)
		for i := 0; i < len(tour)-1; i++ {
			for j := i + 1; j < len(tour); j++ {
				candidate := swapSegment(tour, i, j)
				d := cyclicTourDistance(candidate, targets)
				if d < best {
					tour = candidate
					best = d
					improved = true
				}
			}
		}
	}
	return tour
}

// cyclicTourDistance sums leg distances starting and ending at the Accra
// hub: hub -> tour[0] -> ... -> tour[n-1] -> hub.
func cyclicTourDistance(tour []int, targets []domain.Facility) float64 {
	if len(tour) == 0 {
		return 0
	}
	total := 0.0
	prevLat, prevLng := AccraLat, AccraLng
	for _, idx := range tour {
		f := targets[idx]
		total += haversine(prevLat, prevLng, f.Lat, f.Lng)
		prevLat, prevLng = f.Lat, f.Lng
	}
	total += haversine(prevLat, prevLng, AccraLat, AccraLng)
	return total
}

func swapSegment(tour []int, i, j int) []int {
	out := make([]int, len(tour))
	copy(out, tour)
	for lo, hi := i, j; lo < hi; lo, hi = lo+1, hi-1 {
		out[lo], out[hi] = out[hi], out[lo]
	}
	return out
}
