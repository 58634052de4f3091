package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/hayashilab/sevenq/internal/middleware"
	"github.com/hayashilab/sevenq/internal/services"
)

// Router owns the HTTP surface of the survey: session lifecycle, the four
// transition triggers, draft updates, limit reconfiguration and export
// download. All survey semantics live in the services package; handlers
// only translate JSON and map errors to statuses.
type Router struct {
	registry *sessionRegistry
	catalog  *services.Catalog
	exporter *services.ExportService
	logger   *zap.Logger
}

func NewRouter(catalog *services.Catalog, exporter *services.ExportService, logger *zap.Logger) *Router {
	return &Router{
		registry: newSessionRegistry(),
		catalog:  catalog,
		exporter: exporter,
		logger:   logger,
	}
}

// Handler builds the mux with middleware applied.
func (rt *Router) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.CORS, middleware.SecureHeaders, middleware.RequestLogger(rt.logger))

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/catalog", rt.handleCatalog).Methods("GET", "OPTIONS")
	api.HandleFunc("/sessions", rt.handleCreateSession).Methods("POST", "OPTIONS")
	api.HandleFunc("/sessions/{id}", rt.handleDeleteSession).Methods("DELETE", "OPTIONS")
	api.HandleFunc("/sessions/{id}/question", rt.handleQuestion).Methods("GET", "OPTIONS")
	api.HandleFunc("/sessions/{id}/draft", rt.handleDraft).Methods("PUT", "OPTIONS")
	api.HandleFunc("/sessions/{id}/advance", rt.handleAdvance).Methods("POST", "OPTIONS")
	api.HandleFunc("/sessions/{id}/back", rt.handleBack).Methods("POST", "OPTIONS")
	api.HandleFunc("/sessions/{id}/reset", rt.handleResetCurrent).Methods("POST", "OPTIONS")
	api.HandleFunc("/sessions/{id}/reset-all", rt.handleResetAll).Methods("POST", "OPTIONS")
	api.HandleFunc("/sessions/{id}/limits", rt.handleLimits).Methods("PUT", "OPTIONS")
	api.HandleFunc("/sessions/{id}/export", rt.handleExport).Methods("GET", "OPTIONS")
	return r
}

type limitConfig struct {
	Mode        string `json:"limit_mode"`
	Limit       int    `json:"limit,omitempty"`
	PerQuestion []*int `json:"per_question_limits,omitempty"`
}

func (c limitConfig) policy() (services.LimitPolicy, error) {
	switch services.LimitMode(c.Mode) {
	case "", services.LimitNone:
		return services.UnlimitedPolicy(), nil
	case services.LimitUniform:
		return services.UniformPolicy(c.Limit), nil
	case services.LimitPerQuestion:
		return services.PerQuestionPolicy(c.PerQuestion), nil
	default:
		return services.LimitPolicy{}, services.NewInvalidError("unknown limit mode")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	if ve, ok := services.AsValidationError(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation",
			"issues": ve.Issues,
		})
		return
	}
	status := http.StatusInternalServerError
	code := services.ErrorCode("internal")
	if se, ok := services.AsServiceError(err); ok {
		code = se.Code
		switch se.Code {
		case services.ErrorInvalid:
			status = http.StatusBadRequest
		case services.ErrorNotFound:
			status = http.StatusNotFound
		}
	}
	writeJSON(w, status, map[string]any{"error": code, "message": err.Error()})
}

// questionPayload is what every transition returns: the view to render next,
// plus the running summary once the survey is completed.
func questionPayload(s *services.Session) map[string]any {
	out := map[string]any{"question": s.View()}
	if s.Completed() {
		out["summary"] = services.Summarize(s.Records())
	}
	return out
}

func (rt *Router) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"questions": rt.catalog.Questions()})
}

func (rt *Router) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ParticipantID string `json:"participant_id"`
		LimitMode     string `json:"limit_mode"`
		Limit         int    `json:"limit"`
		PerQuestion   []*int `json:"per_question_limits"`
	}
	// An empty body means an anonymous session with no limit.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, services.NewInvalidError(err.Error()))
		return
	}
	policy, err := limitConfig{Mode: req.LimitMode, Limit: req.Limit, PerQuestion: req.PerQuestion}.policy()
	if err != nil {
		writeError(w, err)
		return
	}
	session, err := services.NewSession(rt.catalog, req.ParticipantID, policy)
	if err != nil {
		writeError(w, err)
		return
	}
	id := rt.registry.add(session)
	session.Show()
	writeJSON(w, http.StatusCreated, map[string]any{
		"session_id": id,
		"question":   session.View(),
	})
}

func (rt *Router) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if rt.registry.get(id) == nil {
		writeError(w, services.NewNotFoundError("session not found"))
		return
	}
	rt.registry.remove(id)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// withSession resolves the handle and runs fn under its lock, writing a 404
// when the id is unknown.
func (rt *Router) withSession(w http.ResponseWriter, r *http.Request, fn func(*services.Session) error) {
	h := rt.registry.get(mux.Vars(r)["id"])
	if h == nil {
		writeError(w, services.NewNotFoundError("session not found"))
		return
	}
	if err := h.withSession(fn); err != nil {
		writeError(w, err)
	}
}

func (rt *Router) handleQuestion(w http.ResponseWriter, r *http.Request) {
	rt.withSession(w, r, func(s *services.Session) error {
		s.Show()
		writeJSON(w, http.StatusOK, questionPayload(s))
		return nil
	})
}

func (rt *Router) handleDraft(w http.ResponseWriter, r *http.Request) {
	rt.withSession(w, r, func(s *services.Session) error {
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return services.NewInvalidError(err.Error())
		}
		if err := s.UpdateDraft(req.Text); err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, questionPayload(s))
		return nil
	})
}

func (rt *Router) handleAdvance(w http.ResponseWriter, r *http.Request) {
	rt.withSession(w, r, func(s *services.Session) error {
		rec, err := s.Advance()
		if err != nil {
			return err
		}
		out := questionPayload(s)
		out["record"] = rec
		writeJSON(w, http.StatusOK, out)
		return nil
	})
}

func (rt *Router) handleBack(w http.ResponseWriter, r *http.Request) {
	rt.withSession(w, r, func(s *services.Session) error {
		var err error
		if s.Completed() {
			err = s.ReturnToLastFromCompleted()
		} else {
			err = s.GoBack()
		}
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, questionPayload(s))
		return nil
	})
}

func (rt *Router) handleResetCurrent(w http.ResponseWriter, r *http.Request) {
	rt.withSession(w, r, func(s *services.Session) error {
		if err := s.ResetCurrent(); err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, questionPayload(s))
		return nil
	})
}

func (rt *Router) handleResetAll(w http.ResponseWriter, r *http.Request) {
	rt.withSession(w, r, func(s *services.Session) error {
		s.ResetAll()
		s.Show()
		writeJSON(w, http.StatusOK, questionPayload(s))
		return nil
	})
}

func (rt *Router) handleLimits(w http.ResponseWriter, r *http.Request) {
	rt.withSession(w, r, func(s *services.Session) error {
		var req limitConfig
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return services.NewInvalidError(err.Error())
		}
		policy, err := req.policy()
		if err != nil {
			return err
		}
		if err := s.SetPolicy(policy); err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, questionPayload(s))
		return nil
	})
}

func (rt *Router) handleExport(w http.ResponseWriter, r *http.Request) {
	rt.withSession(w, r, func(s *services.Session) error {
		var res *services.ExportResult
		var err error
		switch format := r.URL.Query().Get("format"); format {
		case "", "xlsx":
			res, err = rt.exporter.ExportXLSX(s.ParticipantID(), s.Records())
		case "csv":
			res, err = rt.exporter.ExportCSV(s.ParticipantID(), s.Records())
		default:
			return services.NewInvalidError("unsupported format")
		}
		if err != nil {
			return err
		}
		w.Header().Set("Content-Type", res.ContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+res.Filename+`"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(res.Data)
		return nil
	})
}
