package session

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/uninurse/uninurse/internal/platform/middleware"
)

func newTestHandler(t *testing.T) (*Handler, *echo.Echo, *memRepo) {
	t.Helper()
	repo := &memRepo{}
	svc, _ := newTestService(t, repo)
	h := NewHandler(svc)
	e := echo.New()
	h.RegisterRoutes(e)
	return h, e, repo
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandler_ListPatients(t *testing.T) {
	_, e, _ := newTestHandler(t)

	rec := serve(e, http.MethodGet, "/api/v1/patients?limit=2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var page struct {
		Data    []PatientView `json:"data"`
		Total   int           `json:"total"`
		HasMore bool          `json:"has_more"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.Total != 3 || len(page.Data) != 2 || !page.HasMore {
		t.Fatalf("unexpected page: %+v", page)
	}
	if page.Data[0].Index != 1 || page.Data[0].Name != "Alex Yeoh" {
		t.Errorf("unexpected first patient: %+v", page.Data[0])
	}
	if page.Data[1].Remarks[0] != "Allergic to penicillin" {
		t.Errorf("expected remarks in view, got %+v", page.Data[1].Remarks)
	}
}

func TestHandler_GetPatient(t *testing.T) {
	h, e, _ := newTestHandler(t)

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("index")
	c.SetParamValues("2")
	if err := h.GetPatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := serve(e, http.MethodGet, "/api/v1/patients/2", "")
	var v PatientView
	_ = json.Unmarshal(rec.Body.Bytes(), &v)
	if v.Name != "Bernice Yu" || v.Index != 2 || len(v.Conditions) != 2 {
		t.Errorf("unexpected patient: %+v", v)
	}
	if len(v.Tasks) != 1 || v.Tasks[0].Recurrence != "1 week" || v.Tasks[0].Due == nil {
		t.Errorf("unexpected tasks: %+v", v.Tasks)
	}

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("index")
	c.SetParamValues("4")
	err := h.GetPatient(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
	if he.Message != "The person index provided is invalid" {
		t.Errorf("unexpected message %v", he.Message)
	}

	if rec := serve(e, http.MethodGet, "/api/v1/patients/abc", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandler_FocusFollowsCommands(t *testing.T) {
	_, e, _ := newTestHandler(t)

	if rec := serve(e, http.MethodGet, "/api/v1/focus", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before any focus, got %d", rec.Code)
	}

	rec := serve(e, http.MethodPost, "/api/v1/commands", `{"command":"addCondition 2 c/Asthma"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp commandResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Mutated || !strings.Contains(resp.Feedback, "Asthma") {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.View.Focus == nil || resp.View.Focus.Name != "Bernice Yu" || resp.View.Focus.Index != 2 {
		t.Errorf("expected Bernice in focus, got %+v", resp.View.Focus)
	}

	rec = serve(e, http.MethodGet, "/api/v1/focus", "")
	var focus PatientView
	_ = json.Unmarshal(rec.Body.Bytes(), &focus)
	if rec.Code != http.StatusOK || len(focus.Conditions) != 3 {
		t.Errorf("expected focus with 3 conditions, got %d %+v", rec.Code, focus)
	}
}

func TestHandler_ExecuteCommandErrors(t *testing.T) {
	_, e, repo := newTestHandler(t)

	tests := []struct {
		name string
		body string
		code int
		msg  string
	}{
		{"unknown", `{"command":"dance"}`, http.StatusUnprocessableEntity, "Unknown command"},
		{"bad index", `{"command":"deleteTask 9 1"}`, http.StatusUnprocessableEntity, "The person index provided is invalid"},
		{"duplicate", `{"command":"addTag 1 t/ward3"}`, http.StatusUnprocessableEntity, "already exists"},
		{"nothing to undo", `{"command":"undo"}`, http.StatusUnprocessableEntity, "There is no command to undo!"},
		{"blank", `{"command":"  "}`, http.StatusBadRequest, "command is required"},
		{"not json", `nope`, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(e, http.MethodPost, "/api/v1/commands", tt.body)
			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d: %s", tt.code, rec.Code, rec.Body.String())
			}
			if tt.msg != "" && !strings.Contains(rec.Body.String(), tt.msg) {
				t.Errorf("expected %q in %s", tt.msg, rec.Body.String())
			}
		})
	}

	repo.failSave = errors.New("disk full")
	rec := serve(e, http.MethodPost, "/api/v1/commands", `{"command":"clear"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on save failure, got %d", rec.Code)
	}
}

func TestHandler_TasksAndView(t *testing.T) {
	_, e, _ := newTestHandler(t)

	rec := serve(e, http.MethodGet, "/api/v1/tasks", "")
	var withTasks []PatientView
	_ = json.Unmarshal(rec.Body.Bytes(), &withTasks)
	if len(withTasks) != 2 || withTasks[1].Name != "Bernice Yu" || withTasks[1].Index != 2 {
		t.Fatalf("expected Alex and Bernice, got %+v", withTasks)
	}

	serve(e, http.MethodPost, "/api/v1/commands", `{"command":"patientsToday"}`)
	rec = serve(e, http.MethodGet, "/api/v1/view", "")
	var v SnapshotView
	_ = json.Unmarshal(rec.Body.Bytes(), &v)
	if v.View != "today" || v.Shown != 1 || v.Total != 3 {
		t.Errorf("unexpected view after patientsToday: %+v", v)
	}
}

func TestHandler_Healthz(t *testing.T) {
	_, e, _ := newTestHandler(t)
	rec := serve(e, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"driver":"memory"`) {
		t.Errorf("unexpected health response %d %s", rec.Code, rec.Body.String())
	}
}

func TestHandler_TimedOutCommandIsNotApplied(t *testing.T) {
	repo := &memRepo{}
	svc, _ := newTestService(t, repo)
	e := echo.New()
	e.Use(middleware.RequestTimeout(20 * time.Millisecond))
	NewHandler(svc).RegisterRoutes(e)

	const body = `{"command":"addTask 1 d/Late task"}`

	// Hold the session so the request outlives its deadline.
	svc.mu.Lock()
	recCh := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		recCh <- serve(e, http.MethodPost, "/api/v1/commands", body)
	}()
	time.Sleep(200 * time.Millisecond)
	svc.mu.Unlock()

	rec := <-recCh
	if rec.Code != http.StatusGatewayTimeout {
		t.Fatalf("expected 504, got %d %s", rec.Code, rec.Body.String())
	}
	if got := svc.Snapshot().Patients[0].Tasks().Size(); got != 2 {
		t.Errorf("timed-out command must not apply, got %d tasks", got)
	}
	if repo.saveCount() != 1 {
		t.Errorf("timed-out command must not save, got %d saves", repo.saveCount())
	}

	rec = serve(e, http.MethodPost, "/api/v1/commands", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("retry: expected 200, got %d %s", rec.Code, rec.Body.String())
	}
}
