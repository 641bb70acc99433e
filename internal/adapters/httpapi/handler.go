// Package httpapi exposes the project registry and consistency reports over
// HTTP.
package httpapi

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"projectdash/internal/blob"
	"projectdash/internal/core"
	"projectdash/internal/tables"
	"projectdash/pkg/domain"
)

const (
	basePath        = "/api/v1/projects"
	requestIDHeader = "X-Request-ID"
	maxUploadBytes  = 32 << 20
)

// Projects is the service surface used by the handler.
type Projects interface {
	CheckProject(ctx context.Context, name string) (domain.Report, error)
	Facilities(ctx context.Context, name string) ([]core.FacilityEquipment, error)
	SaveProject(ctx context.Context, p domain.Project) (domain.Project, error)
	GetProject(ctx context.Context, name string) (domain.Project, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
	DeleteProject(ctx context.Context, name string) (bool, error)
	UploadTable(ctx context.Context, name, dataset string, r io.Reader) (blob.Info, error)
}

// Handler routes /api/v1/projects requests.
type Handler struct {
	Projects Projects
	Logger   *zap.Logger
}

// NewHandler constructs a handler. A nil logger discards output.
func NewHandler(p Projects, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Projects: p, Logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(requestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	w.Header().Set(requestIDHeader, id)
	log := h.Logger.With(zap.String("request_id", id), zap.String("method", r.Method), zap.String("path", r.URL.Path))

	if h.Projects == nil {
		writeError(w, http.StatusInternalServerError, "internal", "project service not configured")
		return
	}
	path := strings.TrimSuffix(r.URL.Path, "/")
	switch {
	case path == basePath:
		h.handleCollection(w, r, log)
	case strings.HasPrefix(path, basePath+"/"):
		h.handleProject(w, r, log, strings.Split(strings.TrimPrefix(path, basePath+"/"), "/"))
	default:
		writeError(w, http.StatusNotFound, "not_found", "endpoint not found")
	}
}

func (h *Handler) handleCollection(w http.ResponseWriter, r *http.Request, log *zap.Logger) {
	switch r.Method {
	case http.MethodGet:
		projects, err := h.Projects.ListProjects(r.Context())
		if err != nil {
			h.fail(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"projects": projects})
	case http.MethodPost:
		var p domain.Project
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid project payload")
			return
		}
		saved, err := h.Projects.SaveProject(r.Context(), p)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_project", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"project": saved})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

func (h *Handler) handleProject(w http.ResponseWriter, r *http.Request, log *zap.Logger, segments []string) {
	name := segments[0]
	if name == "" {
		writeError(w, http.StatusNotFound, "not_found", "endpoint not found")
		return
	}
	switch {
	case len(segments) == 1:
		h.handleProjectResource(w, r, log, name)
	case len(segments) == 2 && segments[1] == "issues":
		if !allow(w, r, http.MethodGet) {
			return
		}
		h.handleIssues(w, r, log, name)
	case len(segments) == 2 && segments[1] == "facilities":
		if !allow(w, r, http.MethodGet) {
			return
		}
		inv, err := h.Projects.Facilities(r.Context(), name)
		if err != nil {
			h.fail(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"facilities": inv})
	case len(segments) == 3 && segments[1] == "tables":
		if !allow(w, r, http.MethodPut) {
			return
		}
		info, err := h.Projects.UploadTable(r.Context(), name, segments[2], http.MaxBytesReader(w, r.Body, maxUploadBytes))
		if err != nil {
			h.fail(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"table": map[string]any{
			"dataset":    segments[2],
			"key":        info.Key,
			"size":       info.Size,
			"etag":       info.ETag,
			"updated_at": info.LastModified,
		}})
	default:
		writeError(w, http.StatusNotFound, "not_found", "endpoint not found")
	}
}

func (h *Handler) handleProjectResource(w http.ResponseWriter, r *http.Request, log *zap.Logger, name string) {
	switch r.Method {
	case http.MethodGet:
		p, err := h.Projects.GetProject(r.Context(), name)
		if err != nil {
			h.fail(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"project": p})
	case http.MethodDelete:
		ok, err := h.Projects.DeleteProject(r.Context(), name)
		if err != nil {
			h.fail(w, log, err)
			return
		}
		if !ok {
			writeError(w, http.StatusNotFound, "project_not_found", fmt.Sprintf("project %s not found", name))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

func (h *Handler) handleIssues(w http.ResponseWriter, r *http.Request, log *zap.Logger, name string) {
	report, err := h.Projects.CheckProject(r.Context(), name)
	if err != nil {
		h.fail(w, log, err)
		return
	}
	if strings.EqualFold(r.URL.Query().Get("format"), "csv") {
		streamCSV(w, name, report)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func streamCSV(w http.ResponseWriter, name string, report domain.Report) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s-issues.csv\"", name))
	writer := csv.NewWriter(w)
	_ = writer.Write([]string{"section", "type", "message"})
	for _, section := range domain.Sections() {
		for _, iss := range report.Issues(section) {
			_ = writer.Write([]string{string(section), iss.Kind.String(), iss.Message})
		}
	}
	writer.Flush()
}

// fail maps service errors onto status codes.
func (h *Handler) fail(w http.ResponseWriter, log *zap.Logger, err error) {
	var malformed *domain.MalformedScheduleError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, domain.ErrProjectNotFound):
		writeError(w, http.StatusNotFound, "project_not_found", err.Error())
	case errors.Is(err, domain.ErrMissingData):
		writeError(w, http.StatusNotFound, "missing_data", err.Error())
	case errors.As(err, &malformed):
		log.Warn("malformed schedule", zap.Error(err))
		writeError(w, http.StatusUnprocessableEntity, "malformed_schedule", err.Error())
	case errors.Is(err, tables.ErrUnknownDataset):
		writeError(w, http.StatusNotFound, "unknown_dataset", err.Error())
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "too_large", "upload too large")
	case errors.Is(err, tables.ErrInvalidTable):
		writeError(w, http.StatusBadRequest, "invalid_table", err.Error())
	default:
		log.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func allow(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{"error": message, "code": code})
}
