package infrastructure

import (
	"encoding/csv"
	"fmt"
	"io"
)

// csvColumns lists the source column names the CSV loader reads. LoadCSV
// matches columns by header name, not position, so a reordered source file
// still loads correctly.
var csvColumns = []string{
	"pk_unique_id", "unique_id", "name", "organization_type", "facility_type",
	"city", "region", "lat", "lng", "beds", "doctors", "year_established",
	"area", "specialties", "procedures", "equipment", "capabilities",
}

// LoadCSV reads RawRow records from r. This is the thinnest possible
// adapter over the external facility catalog file; the real ingestion
// pipeline (validation, provenance, refresh scheduling) lives outside the
// core.
func LoadCSV(r io.Reader) ([]RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[name] = i
	}

	var rows []RawRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv record: %w", err)
		}
		rows = append(rows, RawRow{
			PKUniqueID:       field(record, colIndex, "pk_unique_id"),
			UniqueID:         field(record, colIndex, "unique_id"),
			Name:             field(record, colIndex, "name"),
			OrganizationType: field(record, colIndex, "organization_type"),
			FacilityType:     field(record, colIndex, "facility_type"),
			City:             field(record, colIndex, "city"),
			Region:           field(record, colIndex, "region"),
			Lat:              field(record, colIndex, "lat"),
			Lng:              field(record, colIndex, "lng"),
			Beds:             field(record, colIndex, "beds"),
			Doctors:          field(record, colIndex, "doctors"),
			YearEstablished:  field(record, colIndex, "year_established"),
			Area:             field(record, colIndex, "area"),
			Specialties:      field(record, colIndex, "specialties"),
			Procedures:       field(record, colIndex, "procedures"),
			Equipment:        field(record, colIndex, "equipment"),
			Capabilities:     field(record, colIndex, "capabilities"),
		})
	}
	return rows, nil
}

func field(record []string, colIndex map[string]int, name string) string {
	i, ok := colIndex[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}
