package validator

import (
	"strings"
	"time"

	domain "medbridge/internal/facility/domain"
)

var (
	anomalyCues    = []string{"anomaly", "suspicious", "unusual", "outlier"}
	redFlagCues    = []string{"red flag", "temporary", "visiting", "camp", "mission"}
	coverageCues   = []string{"coverage gap", "underserved", "gap in"}
	spofCues       = []string{"single point of failure", "spof"}
)

// Report is the uniform envelope the dispatcher returns.
type Report struct {
	Action      string              `json:"action"`
	Constraints []ConstraintReport  `json:"constraints,omitempty"`
	Anomalies   []AnomalyReport     `json:"anomalies,omitempty"`
	RedFlags    []RedFlagReport     `json:"red_flags,omitempty"`
	CoverageGap *CoverageGapReport  `json:"coverage_gap,omitempty"`
	SPOF        []SPOFEntry         `json:"spof,omitempty"`
	Utterance   string              `json:"utterance"`
	DurationMS  int64               `json:"duration_ms"`
}

// Validator is the Validator agent: it dispatches an utterance to
// exactly one of its rule-based, anomaly-detection, red-flag, or rollup
// handlers, defaulting to running both constraint validation and anomaly
// detection.
type Validator struct {
	table     *domain.FacilityTable
	centroids RegionCentroidLookup
}

// New builds a Validator over table. centroids may be nil; when absent,
// coverage-gap regions are reported without lat/lng.
func New(table *domain.FacilityTable, centroids RegionCentroidLookup) *Validator {
	return &Validator{table: table, centroids: centroids}
}

// Answer dispatches utterance to the matching handler.
func (v *Validator) Answer(utterance, specialty string) Report {
	start := time.Now()
	lower := strings.ToLower(utterance)

	var report Report
	switch {
	case containsAny(lower, spofCues):
		report = Report{Action: "single_point_of_failure", SPOF: SinglePointOfFailure(v.table)}
	case containsAny(lower, coverageCues):
		gap := CoverageGap(v.table, specialty, v.centroids)
		report = Report{Action: "coverage_gap", CoverageGap: &gap}
	case containsAny(lower, redFlagCues):
		report = Report{Action: "red_flag_scan", RedFlags: v.scanAllRedFlags()}
	case containsAny(lower, anomalyCues):
		report = Report{Action: "anomaly_detection", Anomalies: DetectAnomalies(v.table.All())}
	default:
		report = Report{
			Action:      "validate_and_detect",
			Constraints: v.validateAll(),
			Anomalies:   DetectAnomalies(v.table.All()),
		}
	}

	report.Utterance = utterance
	report.DurationMS = time.Since(start).Milliseconds()
	return report
}

func (v *Validator) validateAll() []ConstraintReport {
	facilities := v.table.All()
	reports := make([]ConstraintReport, len(facilities))
	for i := range facilities {
		reports[i] = ValidateConstraints(&facilities[i])
	}
	return reports
}

func (v *Validator) scanAllRedFlags() []RedFlagReport {
	facilities := v.table.All()
	reports := make([]RedFlagReport, len(facilities))
	for i := range facilities {
		reports[i] = ScanRedFlags(&facilities[i])
	}
	return RankByFlagCount(reports)
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
