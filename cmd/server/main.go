// Command server wires the facility intelligence engine's five agents,
// the Supervisor, and the Orchestrator into a runnable HTTP service:
// env-driven config, logger built first, dependencies constructed
// top-down, graceful shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"medbridge/internal/config"
	domain "medbridge/internal/facility/domain"
	infrastructure "medbridge/internal/facility/infrastructure"
	"medbridge/internal/geodata"
	"medbridge/internal/geospatial"
	"medbridge/internal/logging"
	"medbridge/internal/orchestrator"
	"medbridge/internal/planner"
	"medbridge/internal/semantic"
	semanticinfra "medbridge/internal/semantic/infrastructure"
	"medbridge/internal/supervisor"
	"medbridge/internal/tabular"
	"medbridge/internal/transport/httpapi"
	"medbridge/internal/validator"
)

func main() {
	logger, err := logging.New(false)
	if err != nil {
		logger = logging.NewPlainLogger(logging.LevelInfo)
		logger.Warn("zap logger unavailable, using plain logging", "error", err.Error())
	}

	cfg := config.FromEnv()

	geo := geodata.New()

	store := infrastructure.NewStore(loadRows(cfg, logger), geo.AsGeocodeTable(), logger)
	table, err := store.Table()
	if err != nil {
		log.Fatalf("failed to build facility table: %v", err)
	}
	logger.Info("facility table ready", "facilities", table.Len())

	knownPlaces := knownPlaceNames(table, geo)
	knownSpecialties := distinctSpecialties(table)

	analyst := tabular.New(table, knownPlaces)
	retriever := semantic.New(semanticinfra.NewLocalBackend(table), knownPlaces, knownSpecialties, cfg.VectorSearchTimeout, logger)
	checker := validator.New(table, geo)
	geoAnalyst := geospatial.New(table, geo, geo)
	bounds := [4]float64{cfg.BoundingBox.MinLat, cfg.BoundingBox.MaxLat, cfg.BoundingBox.MinLng, cfg.BoundingBox.MaxLng}
	planningAgent := planner.New(table, bounds)

	// No concrete LLM classifier is wired here: pattern matching plus the
	// semantic-retriever fallback covers every utterance without needing the
	// external LLM collaborator.
	sup := supervisor.New(nil)

	agents := map[supervisor.Agent]orchestrator.AgentFunc{
		supervisor.AgentTabular:    tabularAgent(analyst),
		supervisor.AgentSemantic:   semanticAgent(retriever),
		supervisor.AgentValidator:  validatorAgent(checker, knownPlaces),
		supervisor.AgentGeospatial: geospatialAgent(geoAnalyst, geo, cfg, knownPlaces),
		supervisor.AgentPlanner:    plannerAgent(planningAgent, knownPlaces),
	}

	orch := orchestrator.New(sup, agents, nil, logger)

	server := httpapi.New(orch, planningAgent, table, geo, logger, cfg.SupervisorLLMEnabled)

	addr := os.Getenv("MEDBRIDGE_HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	httpServer := &http.Server{Addr: addr, Handler: server.Mux()}

	go func() {
		logger.Info("starting HTTP server", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", err)
	}
}

// loadRows resolves the facility catalog: a CSV at cfg.DataSourcePath when
// one exists, otherwise the built-in demo fixture.
func loadRows(cfg config.Config, logger logging.Logger) func() ([]infrastructure.RawRow, error) {
	return func() ([]infrastructure.RawRow, error) {
		f, err := os.Open(cfg.DataSourcePath)
		if err != nil {
			logger.Info("no external data source found, using built-in fixture", "path", cfg.DataSourcePath)
			return builtinFixture(), nil
		}
		defer f.Close()
		return infrastructure.LoadCSV(f)
	}
}

func knownPlaceNames(table *domain.FacilityTable, geo *geodata.Table) []string {
	seen := map[string]bool{}
	var out []string
	add := func(s string) {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		out = append(out, s)
	}
	for _, f := range table.All() {
		add(f.City)
		add(f.Region)
	}
	for _, c := range geo.KnownCities() {
		add(c)
	}
	return out
}

func distinctSpecialties(table *domain.FacilityTable) []string {
	seen := map[string]bool{}
	var out []string
	for _, f := range table.All() {
		for _, sp := range f.Specialties {
			key := strings.ToLower(sp)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, sp)
		}
	}
	return out
}
