package semantic

import (
	"context"
	"sync"
	"time"

	"medbridge/internal/logging"
)

// Retriever is the Semantic Retriever agent: it fans a query out to
// the three named vectors, fuses the results, and returns a ranked list.
type Retriever struct {
	backend          Backend
	knownCities      []string
	knownSpecialties []string
	timeout          time.Duration
	logger           logging.Logger
}

// New builds a Retriever over backend. timeout bounds each per-vector
// search call.
func New(backend Backend, knownCities, knownSpecialties []string, timeout time.Duration, logger logging.Logger) *Retriever {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	return &Retriever{
		backend:          backend,
		knownCities:      knownCities,
		knownSpecialties: knownSpecialties,
		timeout:          timeout,
		logger:           logger,
	}
}

// Search runs the full retrieval pipeline: extract filters, compute weights, fan
// out to each vector with rewritten queries and a per-call deadline, fuse
// by Reciprocal Rank Fusion, and return the top_k ranked documents. A per-
// vector failure or timeout yields an empty list for that vector and never
// aborts the overall request. When the filtered fan-out comes back empty,
// one unfiltered retry is issued before giving up.
func (r *Retriever) Search(ctx context.Context, utterance string, topK int) []Document {
	filters := ExtractFilters(utterance, r.knownCities, r.knownSpecialties).toFilters()
	weights := Weights(utterance)
	fetchK := FetchK(topK)

	out := Fuse(r.fanOut(ctx, utterance, fetchK, filters), weights, topK)
	if len(out) == 0 && !filters.empty() {
		r.logger.Debug("filtered retrieval empty, retrying unfiltered", "utterance", utterance)
		out = Fuse(r.fanOut(ctx, utterance, fetchK, Filters{}), weights, topK)
	}
	return out
}

func (r *Retriever) fanOut(ctx context.Context, utterance string, fetchK int, filters Filters) map[VectorName][]Document {
	vectors := []VectorName{VectorFullDocument, VectorClinicalDetail, VectorSpecialtiesContext}
	perVector := make(map[VectorName][]Document, len(vectors))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, v := range vectors {
		v := v
		wg.Add(1)
		go func() {
			defer wg.Done()
			docs := r.searchOneVector(ctx, utterance, v, fetchK, filters)
			mu.Lock()
			perVector[v] = docs
			mu.Unlock()
		}()
	}
	wg.Wait()
	return perVector
}

func (r *Retriever) searchOneVector(ctx context.Context, utterance string, vector VectorName, fetchK int, filters Filters) []Document {
	callCtx := ctx
	var cancel context.CancelFunc
	if r.timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	rewritten := RewriteQuery(utterance, vector)
	docs, err := r.backend.Search(callCtx, rewritten, vector, fetchK, filters)
	if err != nil {
		r.logger.Warn("semantic vector search failed", "vector", string(vector), "error", err.Error())
		return nil
	}
	return docs
}

// ServiceInRegion issues a single clinical-vector search scoped to region,
// a dedicated shortcut for "service in region" style utterances.
func (r *Retriever) ServiceInRegion(ctx context.Context, service, region string, topK int) []Document {
	filters := Filters{City: region}
	callCtx := ctx
	var cancel context.CancelFunc
	if r.timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	rewritten := RewriteQuery(service, VectorClinicalDetail)
	docs, err := r.backend.Search(callCtx, rewritten, VectorClinicalDetail, FetchK(topK), filters)
	if err != nil {
		r.logger.Warn("semantic service-in-region search failed", "region", region, "error", err.Error())
		return nil
	}
	if len(docs) > topK {
		docs = docs[:topK]
	}
	return docs
}
