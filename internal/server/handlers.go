package server

import (
	"encoding/json"
	"net/http"
	"slices"

	"github.com/archlens/archlens/pkg/cache"
	"github.com/archlens/archlens/pkg/engine"
	"github.com/archlens/archlens/pkg/errors"
	"github.com/archlens/archlens/pkg/model"
	"github.com/archlens/archlens/pkg/trace"
	"github.com/archlens/archlens/pkg/transform"
)

// =============================================================================
// Request / Response Types
// =============================================================================

// modelPayload is the inline model carried by every API request.
type modelPayload struct {
	Nodes      []model.Node        `json:"nodes"`
	Edges      []model.Edge        `json:"edges"`
	Components map[string][]string `json:"components,omitempty"`
}

// build validates the payload into a model.
func (p *modelPayload) build() (*model.Model, error) {
	m, err := model.Build(p.Nodes, p.Edges)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidModel, err, "invalid model")
	}
	m.Components = p.Components
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidModel, err, "invalid model")
	}
	return m, nil
}

// hash fingerprints the payload content for cache keying.
func (p *modelPayload) hash() string {
	data, _ := json.Marshal(p)
	return cache.Hash(data)
}

type transformRequest struct {
	Model   modelPayload   `json:"model"`
	Options engine.Options `json:"options"`
}

type traceRequest struct {
	Model modelPayload `json:"model"`

	// Op is one of "upstream", "downstream", or "between".
	Op   string `json:"op"`
	From string `json:"from"`
	To   string `json:"to,omitempty"`
}

type traceResponse struct {
	NodeIDs []string `json:"node_ids"`
	EdgeIDs []string `json:"edge_ids"`
}

type presetInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	var req transformRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decoding request body"))
		return
	}
	m, err := req.Model.build()
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.Options.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, err)
		return
	}

	key := s.keyer.TransformKey(req.Model.hash(), req.Options.KeyOpts())
	if data, ok, err := s.cache.Get(r.Context(), key); err == nil && ok {
		w.Header().Set("X-Cache", "hit")
		writeRaw(w, http.StatusOK, data)
		return
	}

	result, err := s.engine.transform(m, req.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "encoding response"))
		return
	}
	if err := s.cache.Set(r.Context(), key, data, s.ttl); err != nil {
		s.logger.Warn("response cache write failed", "error", err)
	}
	w.Header().Set("X-Cache", "miss")
	writeRaw(w, http.StatusOK, data)
}

func (s *Server) handleTrace(w http.ResponseWriter, r *http.Request) {
	var req traceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decoding request body"))
		return
	}
	m, err := req.Model.build()
	if err != nil {
		s.writeError(w, err)
		return
	}
	if _, ok := m.Nodes[req.From]; !ok {
		s.writeError(w, errors.New(errors.ErrCodeNodeNotFound, "unknown node: %s", req.From))
		return
	}

	key := s.keyer.TraceKey(req.Model.hash(), req.Op, req.From, req.To)
	if data, ok, err := s.cache.Get(r.Context(), key); err == nil && ok {
		w.Header().Set("X-Cache", "hit")
		writeRaw(w, http.StatusOK, data)
		return
	}

	tracer := trace.New(m)
	var nodes map[string]bool
	switch req.Op {
	case "upstream":
		nodes = tracer.Upstream(req.From)
	case "downstream":
		nodes = tracer.Downstream(req.From)
	case "between":
		if _, ok := m.Nodes[req.To]; !ok {
			s.writeError(w, errors.New(errors.ErrCodeNodeNotFound, "unknown node: %s", req.To))
			return
		}
		nodes = tracer.Between(req.From, req.To)
	default:
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "unknown trace op: %s", req.Op))
		return
	}

	resp := traceResponse{
		NodeIDs: sortedKeys(nodes),
		EdgeIDs: tracer.EdgesWithin(nodes),
	}
	data, err := json.Marshal(resp)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "encoding response"))
		return
	}
	if err := s.cache.Set(r.Context(), key, data, s.ttl); err != nil {
		s.logger.Warn("response cache write failed", "error", err)
	}
	w.Header().Set("X-Cache", "miss")
	writeRaw(w, http.StatusOK, data)
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	presets := transform.Presets()
	out := make([]presetInfo, len(presets))
	for i, p := range presets {
		out[i] = presetInfo{ID: p.ID, Name: p.Name, Description: p.Description}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	s.engine.mu.Lock()
	stats := s.engine.eng.LayoutCacheStats()
	s.engine.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"layout": stats})
}

func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	s.engine.mu.Lock()
	s.engine.eng.ClearLayoutCache()
	s.engine.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Helpers
// =============================================================================

// writeError maps application error codes onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidModel, errors.ErrCodeInvalidViewLevel,
		errors.ErrCodeInvalidOptions, errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeNodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeUnsupported:
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeRaw(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
