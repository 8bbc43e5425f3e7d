package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/websocket"

	domain "medbridge/internal/facility/domain"
	"medbridge/internal/orchestrator"
	"medbridge/internal/planner"
	"medbridge/internal/transport/wsstream"
)

// queryRequest mirrors the POST /query contract: `{query, context?}`.
type queryRequest struct {
	Query   string         `json:"query"`
	Context map[string]any `json:"context,omitempty"`
}

// handleQuery implements the query contract: empty/overlong query is a
// client error, an internal failure is a generic server error, and every
// successful response carries the full Response envelope.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("method not allowed"))
		return
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("malformed request body"))
		return
	}

	resp, err := s.orchestrator.Run(r.Context(), req.Query, req.Context)
	if err != nil {
		var ve orchestrator.ValidationError
		if errors.As(err, &ve) {
			s.logger.Warn("query rejected", "error", err.Error())
			writeJSON(w, http.StatusBadRequest, errorBody(ve.Message))
			return
		}
		s.logger.Error("query failed", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleHealth implements GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"facility_count": s.table.Len(),
		"uptime_seconds": int64(time.Since(s.startedAt).Seconds()),
	})
}

// handleFacilities implements GET /facilities (tabular shape).
func (s *Server) handleFacilities(w http.ResponseWriter, r *http.Request) {
	all := s.table.All()
	rows := make([]map[string]any, len(all))
	for i, f := range all {
		rows[i] = facilityRow(&f)
	}
	writeJSON(w, http.StatusOK, map[string]any{"facilities": rows, "count": len(rows)})
}

func facilityRow(f *domain.Facility) map[string]any {
	row := map[string]any{
		"pk_unique_id":      f.PKUniqueID,
		"name":              f.Name,
		"organization_type": f.OrgType,
		"facility_type":     f.FacilityType,
		"city":              f.City,
		"region":            f.Region,
		"specialties":       f.Specialties,
		"procedures":        f.Procedures,
		"equipment":         f.Equipment,
		"capabilities":      f.Capabilities,
	}
	if f.HasCoords {
		row["lat"] = f.Lat
		row["lng"] = f.Lng
	}
	if f.Beds != nil {
		row["beds"] = *f.Beds
	}
	if f.Doctors != nil {
		row["doctors"] = *f.Doctors
	}
	return row
}

// handleStats implements GET /stats: simple tabular rollups over the
// facility table, independent of the Tabular Analyst agent (this is a
// direct catalog summary, not a query-orchestration answer).
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	byRegion := map[string]int{}
	byType := map[string]int{}
	totalBeds, totalDoctors := 0, 0
	for _, f := range s.table.All() {
		if f.Region != "" {
			byRegion[f.Region]++
		}
		if f.FacilityType != "" {
			byType[f.FacilityType]++
		}
		if f.Beds != nil {
			totalBeds += *f.Beds
		}
		if f.Doctors != nil {
			totalDoctors += *f.Doctors
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_facilities": s.table.Len(),
		"by_region":        byRegion,
		"by_facility_type": byType,
		"total_beds":       totalBeds,
		"total_doctors":    totalDoctors,
	})
}

// handleSpecialties implements GET /specialties: the distinct specialty set
// with facility counts, sorted descending.
func (s *Server) handleSpecialties(w http.ResponseWriter, r *http.Request) {
	counts := map[string]int{}
	for _, f := range s.table.All() {
		for _, sp := range f.Specialties {
			counts[sp]++
		}
	}
	type entry struct {
		Specialty string `json:"specialty"`
		Count     int    `json:"count"`
	}
	entries := make([]entry, 0, len(counts))
	for sp, c := range counts {
		entries = append(entries, entry{sp, c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Specialty < entries[j].Specialty
	})
	writeJSON(w, http.StatusOK, map[string]any{"specialties": entries})
}

// planningScenarios is the scenario list GET /planning/scenarios returns,
// matching the Planner's dispatch handlers. /planning/execute and
// /routing-map run emergency routing for any name not in this list.
var planningScenarios = []string{
	"emergency_routing", "specialist_deployment", "equipment_distribution",
	"new_facility_placement", "capacity_planning",
}

// handlePlanningScenarios implements GET /planning/scenarios.
func (s *Server) handlePlanningScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"scenarios": planningScenarios})
}

// planningExecuteRequest mirrors the POST /planning/execute {scenario,
// specialty?, equipment_type?, origin_city?, use_quantum} contract.
type planningExecuteRequest struct {
	Scenario      string `json:"scenario"`
	Specialty     string `json:"specialty,omitempty"`
	EquipmentType string `json:"equipment_type,omitempty"`
	OriginCity    string `json:"origin_city,omitempty"`
	UseQuantum    bool   `json:"use_quantum,omitempty"`
}

func (s *Server) handlePlanningExecute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("method not allowed"))
		return
	}
	var req planningExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("malformed request body"))
		return
	}
	if req.Scenario == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("scenario is required"))
		return
	}

	originLat, originLng := s.resolveOrigin(req.OriginCity)
	result := s.planner.Dispatch(r.Context(), planner.DispatchInput{
		Utterance:     scenarioUtterance(req.Scenario),
		Specialty:     req.Specialty,
		UseQuantum:    req.UseQuantum,
		EquipmentKind: req.EquipmentType,
		OriginLat:     originLat,
		OriginLng:     originLng,
	})
	writeJSON(w, http.StatusOK, result)
}

// scenarioUtterance maps a named scenario onto the phrase cue its
// dispatcher already recognizes, so /planning/execute reuses the same
// handler selection as the natural-language path.
func scenarioUtterance(scenario string) string {
	switch scenario {
	case "specialist_deployment":
		return "plan a specialist rotation"
	case "equipment_distribution":
		return "equipment distribution gap"
	case "new_facility_placement":
		return "where to build a new facility"
	case "capacity_planning":
		return "capacity planning review"
	default:
		return "emergency routing"
	}
}

// handleRoutingMap implements POST /routing-map {scenario, specialty?,
// origin_city?}: same planner dispatch, shaped for a map client
// (facility+coordinate heavy payload, already present on every planner
// Result).
func (s *Server) handleRoutingMap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("method not allowed"))
		return
	}
	var req planningExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("malformed request body"))
		return
	}
	originLat, originLng := s.resolveOrigin(req.OriginCity)
	result := s.planner.Dispatch(r.Context(), planner.DispatchInput{
		Utterance: scenarioUtterance(req.Scenario),
		Specialty: req.Specialty,
		OriginLat: originLat,
		OriginLng: originLng,
	})
	writeJSON(w, http.StatusOK, result)
}

// handleMLOpsStatus implements GET /mlops/status. MLflow logging itself is
// out of scope; this reports the core's own readiness so a caller polling
// this endpoint gets a real signal.
func (s *Server) handleMLOpsStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ready",
		"facility_count": s.table.Len(),
		"llm_enabled":    s.llmEnabled,
	})
}

// handleMLOpsPipeline implements GET /mlops/pipeline: the fixed five-agent
// dataflow, not a live MLflow run (evaluation harnesses and MLflow logging
// are out of scope).
func (s *Server) handleMLOpsPipeline(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"stages": []string{"supervisor", "tabular", "semantic", "validator", "geospatial", "planner", "aggregate"},
	})
}

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleTraceStream streams one query's trace entries and final response
// over a websocket (demo-only ambient feature; 's contract is satisfied by
// /query alone). ?q=<utterance> selects the query to run.
func (s *Server) handleTraceStream() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := wsUpgrader.Upgrade(w, r, nil)
		if err != nil {
			s.logger.Warn("websocket upgrade failed", "error", err.Error())
			return
		}
		defer conn.Close()

		stream := wsstream.NewConnection(conn, s.logger)
		utterance := r.URL.Query().Get("q")
		if utterance == "" {
			stream.PublishError(errMissingQuery)
			return
		}

		resp, err := s.orchestrator.Run(r.Context(), utterance, nil)
		if err != nil {
			stream.PublishError(err)
			return
		}
		for _, t := range resp.Trace {
			stream.PublishTraceEntry(t.Step, t.Action, t.Error)
		}
		stream.PublishComplete(resp)
	})
}

var errMissingQuery = queryParamError("q query parameter is required")

type queryParamError string

func (e queryParamError) Error() string { return string(e) }
