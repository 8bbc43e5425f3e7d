package tabular

import (
	"sort"
	"strings"

	domain "medbridge/internal/facility/domain"

	"github.com/montanaflynn/stats"
)

func facilityRecord(f domain.Facility) map[string]any {
	rec := map[string]any{
		"pk_unique_id":  f.PKUniqueID,
		"name":          f.Name,
		"facility_type": f.FacilityType,
		"city":          f.City,
		"region":        f.Region,
		"specialties":   f.Specialties,
		"procedures":    f.Procedures,
	}
	if f.Beds != nil {
		rec["beds"] = *f.Beds
	}
	if f.Doctors != nil {
		rec["doctors"] = *f.Doctors
	}
	return rec
}

// CountWithSpecialty counts facilities carrying (or, if negated, lacking)
// spec among their specialties, optionally narrowed to a facility type.
func CountWithSpecialty(table *domain.FacilityTable, spec, facilityType string, negated bool) Result {
	matches := table.Select(func(f *domain.Facility) bool {
		has := f.HasSpecialty(spec)
		if negated {
			has = !has
		}
		if !has {
			return false
		}
		if facilityType != "" && !strings.EqualFold(f.FacilityType, facilityType) {
			return false
		}
		return true
	})

	citations := make([]Citation, 0, len(matches))
	for _, f := range matches {
		citations = append(citations, Citation{PKUniqueID: f.PKUniqueID, Field: "specialties"})
	}
	count := len(matches)

	op := "IN"
	if negated {
		op = "NOT IN"
	}
	sql := "SELECT COUNT(*) FROM facilities WHERE '" + spec + "' " + op + " specialties"
	if facilityType != "" {
		sql += " AND facility_type = '" + facilityType + "'"
	}

	return Result{
		Action:    "count_with_specialty",
		PseudoSQL: sql,
		Count:     &count,
		Citations: citations,
	}
}

// FacilitiesInRegion matches facilities whose city or region contains
// region as a case-insensitive substring, with optional specialty,
// procedure, and facility-type narrowing.
func FacilitiesInRegion(table *domain.FacilityTable, region, spec, proc, facilityType string) Result {
	lowerRegion := strings.ToLower(region)
	matches := table.Select(func(f *domain.Facility) bool {
		if !strings.Contains(strings.ToLower(f.City), lowerRegion) &&
			!strings.Contains(strings.ToLower(f.Region), lowerRegion) {
			return false
		}
		if spec != "" && !f.HasSpecialty(spec) {
			return false
		}
		if proc != "" && !f.HasProcedure(proc) {
			return false
		}
		if facilityType != "" && !strings.EqualFold(f.FacilityType, facilityType) {
			return false
		}
		return true
	})

	records := make([]map[string]any, 0, len(matches))
	for _, f := range matches {
		records = append(records, facilityRecord(f))
	}

	return Result{
		Action:    "facilities_in_region",
		PseudoSQL: "SELECT * FROM facilities WHERE city ILIKE '%" + region + "%' OR region ILIKE '%" + region + "%'",
		Records:   records,
	}
}

// RegionAggregation groups facility counts by region, descending.
func RegionAggregation(table *domain.FacilityTable) Result {
	return groupCount(table, "region_aggregation", "SELECT region, COUNT(*) FROM facilities GROUP BY region ORDER BY COUNT(*) DESC",
		func(f domain.Facility) string { return f.Region })
}

// CityAggregation groups facility counts by city, descending.
func CityAggregation(table *domain.FacilityTable) Result {
	return groupCount(table, "city_aggregation", "SELECT city, COUNT(*) FROM facilities GROUP BY city ORDER BY COUNT(*) DESC",
		func(f domain.Facility) string { return f.City })
}

func groupCount(table *domain.FacilityTable, action, sql string, key func(domain.Facility) string) Result {
	counts := map[string]int{}
	for _, f := range table.All() {
		k := key(f)
		if k == "" {
			continue
		}
		counts[k]++
	}

	var top *KV
	if len(counts) > 0 {
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			if counts[keys[i]] != counts[keys[j]] {
				return counts[keys[i]] > counts[keys[j]]
			}
			return keys[i] < keys[j]
		})
		top = &KV{Key: keys[0], Count: counts[keys[0]]}
	}

	return Result{
		Action:      action,
		PseudoSQL:   sql,
		Aggregation: counts,
		Top:         top,
	}
}

// SpecialtyDistribution returns a multiset count of specialties across all
// facilities, limited to the top 30.
func SpecialtyDistribution(table *domain.FacilityTable) Result {
	counts := map[string]int{}
	for _, f := range table.All() {
		for _, s := range f.Specialties {
			counts[s]++
		}
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > 30 {
		keys = keys[:30]
	}
	top30 := make(map[string]int, len(keys))
	for _, k := range keys {
		top30[k] = counts[k]
	}

	var top *KV
	if len(keys) > 0 {
		top = &KV{Key: keys[0], Count: counts[keys[0]]}
	}

	return Result{
		Action:      "specialty_distribution",
		PseudoSQL:   "SELECT unnest(specialties), COUNT(*) FROM facilities GROUP BY 1 ORDER BY 2 DESC LIMIT 30",
		Aggregation: top30,
		Top:         top,
	}
}

// FacilitiesWithProcedure matches proc case-insensitively against any
// element of procedures OR capabilities, optionally intersected with a
// region substring.
func FacilitiesWithProcedure(table *domain.FacilityTable, proc, region string) Result {
	lowerRegion := strings.ToLower(region)
	matches := table.Select(func(f *domain.Facility) bool {
		if !f.HasProcedure(proc) && !f.HasCapability(proc) {
			return false
		}
		if region != "" &&
			!strings.Contains(strings.ToLower(f.City), lowerRegion) &&
			!strings.Contains(strings.ToLower(f.Region), lowerRegion) {
			return false
		}
		return true
	})

	citations := make([]Citation, 0, len(matches))
	records := make([]map[string]any, 0, len(matches))
	for _, f := range matches {
		citations = append(citations, Citation{PKUniqueID: f.PKUniqueID, Field: "procedures"})
		records = append(records, facilityRecord(f))
	}

	sql := "SELECT * FROM facilities WHERE '" + proc + "' IN procedures OR '" + proc + "' IN capabilities"
	if region != "" {
		sql += " AND (city ILIKE '%" + region + "%' OR region ILIKE '%" + region + "%')"
	}

	return Result{
		Action:    "facilities_with_procedure",
		PseudoSQL: sql,
		Records:   records,
		Citations: citations,
	}
}

// AnomalyBedDoctorRatio flags facilities whose bed/doctor ratio sits above
// max(Q3 + 1.5*IQR, 20), computed over rows with beds>0 and doctors>0.
func AnomalyBedDoctorRatio(table *domain.FacilityTable) Result {
	type ratioRow struct {
		facility domain.Facility
		ratio    float64
	}

	var rows []ratioRow
	var ratios []float64
	for _, f := range table.All() {
		if f.Beds == nil || f.Doctors == nil || *f.Beds <= 0 || *f.Doctors <= 0 {
			continue
		}
		r := float64(*f.Beds) / float64(*f.Doctors)
		rows = append(rows, ratioRow{facility: f, ratio: r})
		ratios = append(ratios, r)
	}

	sql := "SELECT *, beds::float/doctors AS ratio FROM facilities WHERE beds > 0 AND doctors > 0"

	if len(ratios) == 0 {
		return Result{
			Action:    "anomaly_bed_doctor_ratio",
			PseudoSQL: sql,
			Anomaly:   &AnomalyStats{},
			Records:   []map[string]any{},
		}
	}

	data := stats.Float64Data(ratios)
	q1, _ := stats.Percentile(data, 25)
	q3, _ := stats.Percentile(data, 75)
	mean, _ := stats.Mean(data)
	iqr := q3 - q1
	threshold := q3 + 1.5*iqr
	if threshold < 20 {
		threshold = 20
	}

	var records []map[string]any
	for _, row := range rows {
		if row.ratio > threshold {
			rec := facilityRecord(row.facility)
			rec["bed_doctor_ratio"] = row.ratio
			records = append(records, rec)
		}
	}
	if records == nil {
		records = []map[string]any{}
	}

	return Result{
		Action:    "anomaly_bed_doctor_ratio",
		PseudoSQL: sql,
		Records:   records,
		Anomaly: &AnomalyStats{
			Q1:        &q1,
			Q3:        &q3,
			IQR:       &iqr,
			Mean:      &mean,
			Threshold: &threshold,
		},
	}
}

// SinglePointOfFailure reports specialties held by two or fewer facilities.
func SinglePointOfFailure(table *domain.FacilityTable) Result {
	counts := map[string]int{}
	for _, f := range table.All() {
		for _, s := range f.Specialties {
			counts[s]++
		}
	}
	spof := map[string]int{}
	for s, c := range counts {
		if c <= 2 {
			spof[s] = c
		}
	}

	return Result{
		Action:      "single_point_of_failure",
		PseudoSQL:   "SELECT specialty, COUNT(*) FROM (SELECT unnest(specialties) AS specialty FROM facilities) t GROUP BY specialty HAVING COUNT(*) <= 2",
		Aggregation: spof,
	}
}
