package infrastructure

import (
	"fmt"
	"sync"

	domain "medbridge/internal/facility/domain"
	"medbridge/internal/logging"
)

// RawRow is a single source record as delivered by the (external, out of
// scope) CSV loader: every field is still a raw string, including
// JSON/python-literal encoded list columns.
type RawRow struct {
	PKUniqueID      string
	UniqueID        string
	Name            string
	OrganizationType string
	FacilityType    string
	City            string
	Region          string
	Lat             string
	Lng             string
	Beds            string
	Doctors         string
	YearEstablished string
	Area            string
	Specialties     string
	Procedures      string
	Equipment       string
	Capabilities    string
}

// BuildRawFacility parses tolerant list/numeric columns and resolves
// coordinates via the external geocode table when the row itself has none.
func BuildRawFacility(row RawRow, geo GeocodeTable) domain.RawFacility {
	f := domain.Facility{
		PKUniqueID:   row.PKUniqueID,
		UniqueID:     row.UniqueID,
		Name:         row.Name,
		OrgType:      domain.OrganizationType(normalizeOrgType(row.OrganizationType)),
		FacilityType: normalizeFacilityType(row.FacilityType),
		City:         row.City,
		Region:       row.Region,
		Specialties:  ParseList(row.Specialties),
		Procedures:   ParseList(row.Procedures),
		Equipment:    ParseList(row.Equipment),
		Capabilities: ParseList(row.Capabilities),
	}

	if lat, ok := ParseFloat(row.Lat); ok {
		if lng, ok := ParseFloat(row.Lng); ok {
			f.Lat, f.Lng, f.HasCoords = lat, lng, true
		}
	}
	if !f.HasCoords && geo != nil {
		if lat, lng, ok := Geocode(geo, f.City, f.Region); ok {
			f.Lat, f.Lng, f.HasCoords = lat, lng, true
		}
	}

	if beds, ok := ParseInt(row.Beds); ok {
		f.Beds = &beds
	}
	if doctors, ok := ParseInt(row.Doctors); ok {
		f.Doctors = &doctors
	}
	if year, ok := ParseInt(row.YearEstablished); ok {
		f.YearEstablished = &year
	}
	if area, ok := ParseFloat(row.Area); ok {
		f.Area = &area
	}

	f.Document = BuildDocument(&f)

	return domain.RawFacility{Facility: f}
}

func normalizeOrgType(raw string) string {
	if raw == "" {
		return string(domain.OrganizationTypeFacility)
	}
	return raw
}

func normalizeFacilityType(raw string) string {
	if raw == "farmacy" {
		return "pharmacy"
	}
	return raw
}

// BuildTable parses, dedupes, and validates a batch of raw rows into a
// frozen FacilityTable.
func BuildTable(rows []RawRow, geo GeocodeTable) (*domain.FacilityTable, error) {
	raw := make([]domain.RawFacility, len(rows))
	for i, row := range rows {
		raw[i] = BuildRawFacility(row, geo)
	}
	merged := domain.Deduplicate(raw)
	// Document text must reflect the merged (post-dedup) capability lists.
	for i := range merged {
		merged[i].Document = BuildDocument(&merged[i])
	}
	return domain.NewFacilityTable(merged)
}

// Store is the process-lifetime, once-guarded holder for the frozen
// FacilityTable.
type Store struct {
	once   sync.Once
	table  *domain.FacilityTable
	err    error
	logger logging.Logger
	load   func() ([]RawRow, error)
	geo    GeocodeTable
}

// NewStore creates a store that will lazily build its table from load() on
// first access. The build error, if any, is surfaced to every caller until
// the next process restart.
func NewStore(load func() ([]RawRow, error), geo GeocodeTable, logger logging.Logger) *Store {
	return &Store{load: load, geo: geo, logger: logger}
}

// Table returns the frozen, shared FacilityTable, building it on first
// call.
func (s *Store) Table() (*domain.FacilityTable, error) {
	s.once.Do(func() {
		rows, err := s.load()
		if err != nil {
			s.err = fmt.Errorf("loading facility rows: %w", err)
			return
		}
		table, err := BuildTable(rows, s.geo)
		if err != nil {
			s.err = fmt.Errorf("building facility table: %w", err)
			return
		}
		s.table = table
		if s.logger != nil {
			s.logger.Info("facility table built", "count", table.Len())
		}
	})
	return s.table, s.err
}
