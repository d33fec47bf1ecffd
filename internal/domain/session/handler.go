package session

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/uninurse/uninurse/internal/domain/command"
	"github.com/uninurse/uninurse/internal/domain/parser"
	"github.com/uninurse/uninurse/internal/platform/storage"
	"github.com/uninurse/uninurse/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.GET("/patients", h.ListPatients)
	api.GET("/patients/:index", h.GetPatient)
	api.GET("/focus", h.GetFocus)
	api.GET("/tasks", h.ListTasks)
	api.GET("/view", h.GetView)
	api.POST("/commands", h.ExecuteCommand)

	e.GET("/healthz", storage.HealthHandler(h.svc.repo, h.svc.driver))
}

// ListPatients pages through the displayed list.
func (h *Handler) ListPatients(c echo.Context) error {
	p := pagination.FromContext(c)
	snap := h.svc.Snapshot()
	return c.JSON(http.StatusOK, pagination.Page(newPatientViews(snap.Patients), p, c.Request().URL.Path))
}

// GetPatient addresses the displayed list by the same 1-based index the
// commands use.
func (h *Handler) GetPatient(c echo.Context) error {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "patient index must be a positive integer")
	}
	snap := h.svc.Snapshot()
	if idx < 1 || idx > len(snap.Patients) {
		return echo.NewHTTPError(http.StatusNotFound, (&command.InvalidPersonIndexError{Index: idx - 1}).Error())
	}
	return c.JSON(http.StatusOK, newPatientView(idx, snap.Patients[idx-1]))
}

func (h *Handler) GetFocus(c echo.Context) error {
	v := newSnapshotView(h.svc.Snapshot())
	if v.Focus == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no patient of interest")
	}
	return c.JSON(http.StatusOK, v.Focus)
}

// ListTasks returns the displayed patients that have tasks, with their tasks.
func (h *Handler) ListTasks(c echo.Context) error {
	snap := h.svc.Snapshot()
	out := make([]PatientView, 0, len(snap.Patients))
	for i, p := range snap.Patients {
		if p.Tasks().IsEmpty() {
			continue
		}
		out = append(out, newPatientView(i+1, p))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetView(c echo.Context) error {
	return c.JSON(http.StatusOK, newSnapshotView(h.svc.Snapshot()))
}

type commandRequest struct {
	Command string `json:"command"`
}

type commandResponse struct {
	Feedback string       `json:"feedback"`
	Type     command.Type `json:"type"`
	Mutated  bool         `json:"mutated"`
	View     SnapshotView `json:"view"`
}

// ExecuteCommand runs one command line. Rejected commands are 422 with the
// user-facing message; persistence failures are 500.
func (h *Handler) ExecuteCommand(c echo.Context) error {
	var req commandRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "body must be {\"command\": \"...\"}")
	}
	if strings.TrimSpace(req.Command) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "command is required")
	}

	res, err := h.svc.Execute(c.Request().Context(), req.Command)
	var saveErr *SaveError
	switch {
	case err == nil:
	case errors.Is(err, context.DeadlineExceeded):
		return echo.NewHTTPError(http.StatusGatewayTimeout, "the command was not applied in time; nothing changed")
	case errors.Is(err, context.Canceled):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "the request was cancelled; nothing changed")
	case errors.As(err, &saveErr):
		return echo.NewHTTPError(http.StatusInternalServerError, saveErr.Error())
	case command.UserError(err) || parser.IsParseError(err):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, commandResponse{
		Feedback: res.Feedback,
		Type:     res.Type,
		Mutated:  res.Mutated(),
		View:     newSnapshotView(h.svc.Snapshot()),
	})
}
