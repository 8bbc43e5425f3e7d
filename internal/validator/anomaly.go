package validator

import (
	"math"
	"math/rand"
	"sort"

	domain "medbridge/internal/facility/domain"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

const isolationForestTrees = 200

// featureVector is the per-facility feature set for anomaly detection:
// list-field sizes plus median-imputed beds and doctors.
type featureVector []float64

const featureCount = 6

func buildFeatures(facilities []domain.Facility) []featureVector {
	beds := make([]float64, 0, len(facilities))
	doctors := make([]float64, 0, len(facilities))
	for _, f := range facilities {
		if f.Beds != nil {
			beds = append(beds, float64(*f.Beds))
		}
		if f.Doctors != nil {
			doctors = append(doctors, float64(*f.Doctors))
		}
	}
	medianBeds := medianOrZero(beds)
	medianDoctors := medianOrZero(doctors)

	vectors := make([]featureVector, len(facilities))
	for i, f := range facilities {
		bedsVal := medianBeds
		if f.Beds != nil {
			bedsVal = float64(*f.Beds)
		}
		doctorsVal := medianDoctors
		if f.Doctors != nil {
			doctorsVal = float64(*f.Doctors)
		}
		vectors[i] = featureVector{
			float64(len(f.Specialties)),
			float64(len(f.Procedures)),
			float64(len(f.Equipment)),
			float64(len(f.Capabilities)),
			bedsVal,
			doctorsVal,
		}
	}
	return vectors
}

func medianOrZero(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m, err := stats.Median(stats.Float64Data(values))
	if err != nil {
		return 0
	}
	return m
}

// zScore standardizes each feature column independently; a zero-variance
// column yields all zeros instead of dividing by zero.
func zScore(vectors []featureVector) []featureVector {
	n := len(vectors)
	if n == 0 {
		return nil
	}
	means := make([]float64, featureCount)
	stdevs := make([]float64, featureCount)
	for col := 0; col < featureCount; col++ {
		column := make([]float64, n)
		for i, v := range vectors {
			column[i] = v[col]
		}
		mean, _ := stats.Mean(stats.Float64Data(column))
		sd, _ := stats.StandardDeviation(stats.Float64Data(column))
		means[col] = mean
		stdevs[col] = sd
	}

	out := make([]featureVector, n)
	for i, v := range vectors {
		fv := make(featureVector, featureCount)
		for col := 0; col < featureCount; col++ {
			if stdevs[col] == 0 {
				fv[col] = 0
			} else {
				fv[col] = (v[col] - means[col]) / stdevs[col]
			}
		}
		out[i] = fv
	}
	return out
}

// AnomalyReport is the per-facility two-stage detection result: reported
// only when both stages flag the facility.
type AnomalyReport struct {
	PKUniqueID string   `json:"pk_unique_id"`
	Reasons    []string `json:"reasons"`
}

// DetectAnomalies runs the isolation-forest-style stage followed by the
// Mahalanobis/chi-squared stage, reporting only facilities both stages
// flag.
func DetectAnomalies(facilities []domain.Facility) []AnomalyReport {
	if len(facilities) < 2 {
		return nil
	}

	raw := buildFeatures(facilities)
	standardized := zScore(raw)

	stage1 := isolationForestLabels(standardized)
	stage2 := mahalanobisLabels(standardized)

	var reports []AnomalyReport
	for i, f := range facilities {
		if stage1[i] && stage2[i] {
			reports = append(reports, AnomalyReport{
				PKUniqueID: f.PKUniqueID,
				Reasons:    explain(raw[i], standardized[i]),
			})
		}
	}
	return reports
}

// explain derives human-readable reasons from feature thresholds.
func explain(raw, z featureVector) []string {
	var reasons []string
	if raw[1] > 5 && raw[2] < 2 {
		reasons = append(reasons, "high procedure count but minimal equipment")
	}
	if raw[5] > 0 && raw[4]/raw[5] > 100 {
		reasons = append(reasons, "extreme bed/doctor ratio")
	}
	if raw[0] > 8 {
		reasons = append(reasons, "excessive specialty breadth")
	}
	for i, val := range z {
		if math.Abs(val) > 3 {
			reasons = append(reasons, "feature "+featureName(i)+" is a statistical outlier")
		}
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "flagged by combined anomaly score")
	}
	return reasons
}

func featureName(i int) string {
	names := []string{"specialty_count", "procedure_count", "equipment_count", "capability_count", "beds", "doctors"}
	if i < len(names) {
		return names[i]
	}
	return "unknown"
}

// isolationForestLabels implements a simplified isolation forest: 200
// trees over random feature/split partitions, contamination estimated
// from the fraction of points whose max-abs z-score already exceeds 2.5,
// clamped to a sane range.
func isolationForestLabels(vectors []featureVector) []bool {
	n := len(vectors)
	contamination := dataDrivenContamination(vectors)
	rng := rand.New(rand.NewSource(1))

	subsampleSize := n
	if subsampleSize > 256 {
		subsampleSize = 256
	}
	heightLimit := int(math.Ceil(math.Log2(float64(subsampleSize))))
	if heightLimit < 1 {
		heightLimit = 1
	}

	pathLengths := make([]float64, n)
	for t := 0; t < isolationForestTrees; t++ {
		sampleIdx := sampleIndices(rng, n, subsampleSize)
		tree := buildIsolationTree(rng, vectors, sampleIdx, 0, heightLimit)
		for i, v := range vectors {
			pathLengths[i] += pathLength(tree, v, 0)
		}
	}
	for i := range pathLengths {
		pathLengths[i] /= float64(isolationForestTrees)
	}

	c := averagePathLengthNormalizer(float64(subsampleSize))
	scores := make([]float64, n)
	for i, pl := range pathLengths {
		scores[i] = math.Pow(2, -pl/c)
	}

	return topFractionFlagged(scores, contamination)
}

func dataDrivenContamination(vectors []featureVector) float64 {
	n := len(vectors)
	if n == 0 {
		return 0.05
	}
	outliers := 0
	for _, v := range vectors {
		maxAbs := 0.0
		for _, val := range v {
			if math.Abs(val) > maxAbs {
				maxAbs = math.Abs(val)
			}
		}
		if maxAbs > 2.5 {
			outliers++
		}
	}
	frac := float64(outliers) / float64(n)
	if frac < 0.01 {
		frac = 0.01
	}
	if frac > 0.2 {
		frac = 0.2
	}
	return frac
}

type isolationNode struct {
	feature    int
	splitValue float64
	left       *isolationNode
	right      *isolationNode
	size       int
	isLeaf     bool
}

func sampleIndices(rng *rand.Rand, n, size int) []int {
	if size >= n {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	perm := rng.Perm(n)
	return perm[:size]
}

func buildIsolationTree(rng *rand.Rand, vectors []featureVector, idx []int, depth, heightLimit int) *isolationNode {
	if depth >= heightLimit || len(idx) <= 1 {
		return &isolationNode{isLeaf: true, size: len(idx)}
	}

	feature := rng.Intn(featureCount)
	minV, maxV := math.Inf(1), math.Inf(-1)
	for _, i := range idx {
		v := vectors[i][feature]
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	if minV == maxV {
		return &isolationNode{isLeaf: true, size: len(idx)}
	}

	splitValue := minV + rng.Float64()*(maxV-minV)
	var leftIdx, rightIdx []int
	for _, i := range idx {
		if vectors[i][feature] < splitValue {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}
	if len(leftIdx) == 0 || len(rightIdx) == 0 {
		return &isolationNode{isLeaf: true, size: len(idx)}
	}

	return &isolationNode{
		feature:    feature,
		splitValue: splitValue,
		left:       buildIsolationTree(rng, vectors, leftIdx, depth+1, heightLimit),
		right:      buildIsolationTree(rng, vectors, rightIdx, depth+1, heightLimit),
	}
}

func pathLength(n *isolationNode, v featureVector, depth int) float64 {
	if n.isLeaf {
		return float64(depth) + averagePathLengthNormalizer(float64(n.size))
	}
	if v[n.feature] < n.splitValue {
		return pathLength(n.left, v, depth+1)
	}
	return pathLength(n.right, v, depth+1)
}

// averagePathLengthNormalizer is the standard isolation-forest c(n)
// normalization constant for unsuccessful search path length in a BST.
func averagePathLengthNormalizer(n float64) float64 {
	if n <= 1 {
		return 0
	}
	const eulerGamma = 0.5772156649
	return 2*(math.Log(n-1)+eulerGamma) - 2*(n-1)/n
}

func topFractionFlagged(scores []float64, contamination float64) []bool {
	n := len(scores)
	k := int(math.Ceil(contamination * float64(n)))
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}

	type scored struct {
		idx   int
		score float64
	}
	ranked := make([]scored, n)
	for i, s := range scores {
		ranked[i] = scored{idx: i, score: s}
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	flagged := make([]bool, n)
	for i := 0; i < k; i++ {
		flagged[ranked[i].idx] = true
	}
	return flagged
}

// mahalanobisLabels flags points whose squared Mahalanobis distance from
// the feature mean exceeds the chi-squared critical value at p=0.99 with
// degrees of freedom equal to the feature count. Falls back to the
// Moore-Penrose pseudo-inverse when the covariance matrix is singular.
func mahalanobisLabels(vectors []featureVector) []bool {
	n := len(vectors)
	flagged := make([]bool, n)
	if n == 0 {
		return flagged
	}

	mean := make([]float64, featureCount)
	for _, v := range vectors {
		for c := 0; c < featureCount; c++ {
			mean[c] += v[c]
		}
	}
	for c := range mean {
		mean[c] /= float64(n)
	}

	cov := mat.NewDense(featureCount, featureCount, nil)
	for _, v := range vectors {
		diff := make([]float64, featureCount)
		for c := 0; c < featureCount; c++ {
			diff[c] = v[c] - mean[c]
		}
		for r := 0; r < featureCount; r++ {
			for c := 0; c < featureCount; c++ {
				cov.Set(r, c, cov.At(r, c)+diff[r]*diff[c])
			}
		}
	}
	for r := 0; r < featureCount; r++ {
		for c := 0; c < featureCount; c++ {
			cov.Set(r, c, cov.At(r, c)/float64(n))
		}
	}

	covInv, ok := invertOrPseudoInverse(cov)
	if !ok {
		return flagged
	}

	threshold := chiSquaredQuantile99(featureCount)

	for i, v := range vectors {
		diff := mat.NewDense(1, featureCount, nil)
		for c := 0; c < featureCount; c++ {
			diff.Set(0, c, v[c]-mean[c])
		}
		var tmp mat.Dense
		tmp.Mul(diff, covInv)
		var result mat.Dense
		result.Mul(&tmp, diff.T())
		dist2 := result.At(0, 0)
		if dist2 > threshold {
			flagged[i] = true
		}
	}
	return flagged
}

// invertOrPseudoInverse inverts m, falling back to the Moore-Penrose
// pseudo-inverse via SVD when m is singular.
func invertOrPseudoInverse(m *mat.Dense) (*mat.Dense, bool) {
	var inv mat.Dense
	if err := inv.Inverse(m); err == nil {
		return &inv, true
	}

	var svd mat.SVD
	ok := svd.Factorize(m, mat.SVDFull)
	if !ok {
		return nil, false
	}
	values := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	rows, cols := m.Dims()
	sigmaPlus := mat.NewDense(cols, rows, nil)
	const tolerance = 1e-10
	for i, s := range values {
		if s > tolerance {
			sigmaPlus.Set(i, i, 1/s)
		}
	}

	var vSigma mat.Dense
	vSigma.Mul(&v, sigmaPlus)
	var pseudo mat.Dense
	pseudo.Mul(&vSigma, u.T())
	return &pseudo, true
}

// chiSquaredQuantile99 is the chi-squared inverse CDF at p=0.99 with df
// degrees of freedom.
func chiSquaredQuantile99(df int) float64 {
	return distuv.ChiSquared{K: float64(df)}.Quantile(0.99)
}
