// Package httpapi exposes the orchestrator and the facility catalog over
// the service's plain HTTP/JSON surface. It is the transport boundary,
// not part of the query-orchestration engine: handlers translate requests
// into core calls and marshal core results back to JSON.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	domain "medbridge/internal/facility/domain"
	"medbridge/internal/logging"
	"medbridge/internal/orchestrator"
	"medbridge/internal/planner"
)

// QueryRunner is the seam the HTTP layer needs from the orchestrator.
type QueryRunner interface {
	Run(ctx context.Context, utterance string, reqContext map[string]any) (*orchestrator.Response, error)
}

// PlanningRunner is the seam the /planning/* and /routing-map endpoints
// need from the planner agent directly, bypassing full Supervisor
// classification when the caller already knows the scenario.
type PlanningRunner interface {
	Dispatch(ctx context.Context, in planner.DispatchInput) planner.Result
}

// CityLocator resolves origin_city to coordinates for /planning/execute and
// /routing-map, falling back to the Accra hub when unresolved.
type CityLocator interface {
	CityCoords(city string) (lat, lng float64, ok bool)
}

// Server binds the core engine to the public HTTP endpoints.
type Server struct {
	orchestrator QueryRunner
	planner      PlanningRunner
	table        *domain.FacilityTable
	geo          CityLocator
	logger       logging.Logger
	startedAt    time.Time
	llmEnabled   bool
}

// New builds a Server. table backs /facilities, /stats, /specialties. geo
// may be nil, in which case origin_city always resolves to the Accra hub.
func New(orch QueryRunner, plan PlanningRunner, table *domain.FacilityTable, geo CityLocator, logger logging.Logger, llmEnabled bool) *Server {
	if logger == nil {
		logger = &logging.NoOpLogger{}
	}
	return &Server{
		orchestrator: orch,
		planner:      plan,
		table:        table,
		geo:          geo,
		logger:       logger,
		startedAt:    time.Now(),
		llmEnabled:   llmEnabled,
	}
}

func (s *Server) resolveOrigin(city string) (lat, lng float64) {
	if city != "" && s.geo != nil {
		if lat, lng, ok := s.geo.CityCoords(city); ok {
			return lat, lng
		}
	}
	return planner.AccraLat, planner.AccraLng
}

// Mux builds the *http.ServeMux with every public route registered.
func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/query", s.handleQuery)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/facilities", s.handleFacilities)
	mux.HandleFunc("/stats", s.handleStats)
	mux.HandleFunc("/specialties", s.handleSpecialties)
	mux.HandleFunc("/planning/scenarios", s.handlePlanningScenarios)
	mux.HandleFunc("/planning/execute", s.handlePlanningExecute)
	mux.HandleFunc("/routing-map", s.handleRoutingMap)
	mux.HandleFunc("/mlops/status", s.handleMLOpsStatus)
	mux.HandleFunc("/mlops/pipeline", s.handleMLOpsPipeline)
	mux.Handle("/ws", s.handleTraceStream())

	return mux
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// errorBody never leaks stack traces.
func errorBody(message string) map[string]string {
	return map[string]string{"error": message}
}
