// Package semantic implements the Semantic Retriever: multi-vector
// query routing, fusion, and ranking over facility documents.
package semantic

import "context"

// VectorName identifies one of the three named vectors the retriever
// queries in parallel.
type VectorName string

const (
	VectorFullDocument        VectorName = "full_document"
	VectorClinicalDetail      VectorName = "clinical_detail"
	VectorSpecialtiesContext  VectorName = "specialties_context"
)

// Filters narrows a vector search to a subset of facilities.
type Filters struct {
	OrgType      string
	FacilityType string
	City         string
	Specialties  []string
}

func (f Filters) empty() bool {
	return f.OrgType == "" && f.FacilityType == "" && f.City == "" && len(f.Specialties) == 0
}

// Document is a single candidate returned by the vector backend.
type Document struct {
	ID           string
	Score        float64
	Name         string
	OrgType      string
	FacilityType string
	City         string
	Region       string
	Specialties  []string
	Procedures   []string
	Equipment    []string
	Capabilities []string
	Beds         *int
	Doctors      *int
	Lat          float64
	Lng          float64
	HasCoords    bool
	DocumentText string
}

// Backend is the external vector store collaborator: it may be the local
// in-memory store or a remote model-serving endpoint. cmd/server always
// wires the local store; internal/config.VectorBackendName is not
// consulted. This interface is the seam a real backend plugs into.
type Backend interface {
	Search(ctx context.Context, query string, vector VectorName, topK int, filters Filters) ([]Document, error)
}
