package semantic

import "sort"

// rrfK is the Reciprocal Rank Fusion smoothing constant.
const rrfK = 60

// Fuse combines per-vector ranked lists into one ranking by Reciprocal
// Rank Fusion: for each document d at 0-based rank r in vector v,
// score[d] += weight[v] / (K + r + 1). Ties are broken by first-seen
// (insertion) order, with the vectors walked in a fixed order:
// full_document, clinical_detail, specialties_context, then any other
// vector names sorted by name.
func Fuse(perVector map[VectorName][]Document, weights map[VectorName]float64, topK int) []Document {
	scores := map[string]float64{}
	payload := map[string]Document{}
	order := map[string]int{}
	seq := 0

	vectors := []VectorName{VectorFullDocument, VectorClinicalDetail, VectorSpecialtiesContext}
	var extra []VectorName
	for v := range perVector {
		if v != VectorFullDocument && v != VectorClinicalDetail && v != VectorSpecialtiesContext {
			extra = append(extra, v)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	vectors = append(vectors, extra...)

	for _, vector := range vectors {
		docs := perVector[vector]
		w := weights[vector]
		for rank, d := range docs {
			scores[d.ID] += w / float64(rrfK+rank+1)
			if existing, ok := payload[d.ID]; !ok || richerPayload(d, existing) {
				payload[d.ID] = d
			}
			if _, seen := order[d.ID]; !seen {
				order[d.ID] = seq
				seq++
			}
		}
	}

	ids := make([]string, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sortByScoreThenOrder(ids, scores, order)

	if topK > 0 && len(ids) > topK {
		ids = ids[:topK]
	}

	out := make([]Document, 0, len(ids))
	for _, id := range ids {
		out = append(out, payload[id])
	}
	return out
}

// richerPayload prefers the candidate with more populated list fields, so
// fusion "preserves the richest payload seen" across vectors.
func richerPayload(candidate, existing Document) bool {
	return fieldCount(candidate) > fieldCount(existing)
}

func fieldCount(d Document) int {
	n := len(d.Specialties) + len(d.Procedures) + len(d.Equipment) + len(d.Capabilities)
	if d.DocumentText != "" {
		n++
	}
	if d.HasCoords {
		n++
	}
	return n
}

func sortByScoreThenOrder(ids []string, scores map[string]float64, order map[string]int) {
	sort.Slice(ids, func(i, j int) bool {
		a, b := ids[i], ids[j]
		if scores[a] != scores[b] {
			return scores[a] > scores[b]
		}
		return order[a] < order[b]
	})
}
