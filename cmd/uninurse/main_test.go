package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setupEnv points every path setting at a fresh temp dir.
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("STORAGE_DRIVER", "json")
	t.Setenv("DATA_PATH", filepath.Join(dir, "book.json"))
	t.Setenv("DATABASE_URL", "")
	t.Setenv("HISTORY_LIMIT", "")
	t.Setenv("BACKUP_DRIVER", "fs")
	t.Setenv("BACKUP_DIR", filepath.Join(dir, "backups"))
	return dir
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out, &errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestREPL(t *testing.T) {
	setupEnv(t)

	out, _, err := run(t, "addTask 1 d/Call GP\naddTask 1 d/call gp\nbogus\n\nexit\nlist\n", "repl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		welcome,
		"Alex Yeoh",
		"New task added to Alex Yeoh",
		"This task already exists",
		"Unknown command",
		"Exiting UniNurse",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Listed all persons") {
		t.Error("commands after exit must not run")
	}
}

func TestREPL_EndOfInput(t *testing.T) {
	setupEnv(t)
	if _, _, err := run(t, "list\n", "repl"); err != nil {
		t.Fatalf("expected clean stop at EOF, got %v", err)
	}
}

func TestREPL_OverlongLineIsSkipped(t *testing.T) {
	setupEnv(t)

	long := "addRemark 1 r/" + strings.Repeat("x", maxLineBytes)
	out, _, err := run(t, long+"\nexit\n", "repl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Command is too long") {
		t.Errorf("expected too-long message, got tail %q", tail(out))
	}
	if !strings.Contains(out, "Exiting UniNurse") {
		t.Errorf("expected the session to carry on to exit, got tail %q", tail(out))
	}
}

func TestReadLine(t *testing.T) {
	r := bufio.NewReaderSize(strings.NewReader("list\r\n\n"+strings.Repeat("y", maxLineBytes+1)+"\nexit"), 16)

	want := []struct {
		line string
		err  error
	}{
		{"list", nil},
		{"", nil},
		{"", errLineTooLong},
		{"exit", nil},
		{"", io.EOF},
	}
	for i, w := range want {
		line, err := readLine(r)
		if line != w.line || !errors.Is(err, w.err) {
			t.Fatalf("read %d: got %q, %v; want %q, %v", i, line, err, w.line, w.err)
		}
	}
}

func tail(s string) string {
	if len(s) > 200 {
		return s[len(s)-200:]
	}
	return s
}

func TestExec_PersistsBetweenRuns(t *testing.T) {
	setupEnv(t)

	out, _, err := run(t, "", "exec", "addRemark", "2", "r/Needs", "wheelchair")
	if err != nil {
		t.Fatalf("exec: %v", err)
	}
	if !strings.Contains(out, "Needs wheelchair") {
		t.Errorf("unexpected feedback %q", out)
	}

	out, _, err = run(t, "", "exec", "addRemark", "2", "r/Needs", "wheelchair")
	if !errors.Is(err, errRejected) {
		t.Fatalf("expected duplicate to be rejected on the second run, got %v", err)
	}
	if !strings.Contains(out, "already exists") {
		t.Errorf("expected duplicate message, got %q", out)
	}
}

func TestBackupRestoreCycle(t *testing.T) {
	setupEnv(t)

	out, _, err := run(t, "", "backups")
	if err != nil || !strings.Contains(out, "No backups yet.") {
		t.Fatalf("expected empty listing, got %q %v", out, err)
	}

	if _, _, err := run(t, "", "backup"); err == nil {
		t.Fatal("expected backup of a never-saved book to fail")
	}

	if _, _, err := run(t, "", "exec", "list"); err != nil {
		t.Fatalf("seeding run: %v", err)
	}
	out, _, err = run(t, "", "backup")
	if err != nil {
		t.Fatalf("backup: %v", err)
	}
	if !strings.HasPrefix(out, "Backup written: uninurse-") {
		t.Fatalf("unexpected backup output %q", out)
	}
	key := strings.Fields(out)[2]

	if _, _, err := run(t, "", "exec", "clear"); err != nil {
		t.Fatalf("clear: %v", err)
	}

	out, _, err = run(t, "", "restore", key)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if out != "Restored 3 patients from "+key+"\n" {
		t.Errorf("unexpected restore output %q", out)
	}

	out, _, _ = run(t, "", "backups")
	if !strings.Contains(out, key) {
		t.Errorf("expected %s in listing:\n%s", key, out)
	}

	if _, _, err := run(t, "", "restore", "missing.json"); err == nil {
		t.Error("expected unknown backup to fail")
	}
}

func TestInvalidConfig(t *testing.T) {
	setupEnv(t)
	t.Setenv("STORAGE_DRIVER", "mongo")
	_, errOut, err := run(t, "", "exec", "list")
	if err == nil || !strings.Contains(errOut, "STORAGE_DRIVER") {
		t.Fatalf("expected config error, got %v / %q", err, errOut)
	}
}

func TestServerRoutes(t *testing.T) {
	setupEnv(t)
	a, err := newApp(context.Background(), os.Stderr)
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	defer a.close()
	e := newServer(a)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" || rec.Header().Get("Cache-Control") != "no-store" {
		t.Errorf("expected request id and no-store headers, got %v", rec.Header())
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/commands", strings.NewReader(`{"command":"deleteTask 1 7"}`))
	req.Header.Set("Content-Type", "application/json")
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity || !strings.Contains(rec.Body.String(), "The task index provided is invalid") {
		t.Errorf("expected 422 with task index message, got %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), `uninurse_commands_total{command="deleteTask",outcome="rejected"} 1`) {
		t.Errorf("expected command counter in metrics:\n%s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected healthy storage, got %d", rec.Code)
	}
}
