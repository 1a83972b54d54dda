package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func investingServer(t *testing.T, rows string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "<html><body><table>%s</table></body></html>", rows)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeConfig(t *testing.T, baseURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calendar.yaml")
	yml := fmt.Sprintf("providers:\n  - type: investing_com\n    base_url: %s\n", baseURL)
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_WritesCSVAndNotifiesUpcoming(t *testing.T) {
	chdir(t, t.TempDir())

	soon := time.Now().UTC().Add(2 * time.Hour).Format("2006-01-02 15:04:05")
	later := time.Now().UTC().Add(72 * time.Hour).Format("2006-01-02 15:04:05")
	rows := fmt.Sprintf(`
<tr class="js-event-item" data-event-title="CPI (YoY)" data-country="US" data-event-importance="high" data-event-datetime="%s"></tr>
<tr class="js-event-item" data-event-title="GDP q/q" data-country="US" data-event-importance="medium" data-event-datetime="%s"></tr>
<tr class="js-event-item" data-event-title="CPI (YoY)" data-country="US" data-event-importance="high" data-event-datetime="%s"></tr>`,
		soon, later, soon)
	srv := investingServer(t, rows)

	outDir := filepath.Join(t.TempDir(), "data")
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"-config", writeConfig(t, srv.URL),
		"-out-dir", outDir,
		"-tz", "UTC",
		"-notify", "upcoming",
		"-log-level", "error",
	}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("expected exit 0, got %d stderr=%s", code, stderr.String())
	}

	matches, _ := filepath.Glob(filepath.Join(outDir, "events_*.csv"))
	if len(matches) != 1 {
		t.Fatalf("expected one csv file, got %v", matches)
	}
	b, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	// header + 2 eventos (el duplicado se descarta)
	if n := strings.Count(strings.TrimSpace(string(b)), "\n"); n != 2 {
		t.Fatalf("expected 3 csv lines, got %d:\n%s", n+1, b)
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 1 || !strings.HasSuffix(lines[0], "US • CPI (YoY) • HIGH") {
		t.Fatalf("unexpected alerts %q", stdout.String())
	}
}

func TestRun_NoEventsExitsWithTwo(t *testing.T) {
	chdir(t, t.TempDir())

	srv := investingServer(t, "")
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"-config", writeConfig(t, srv.URL),
		"-out-dir", t.TempDir(),
		"-log-level", "error",
	}, &stdout, &stderr)
	if code != exitNoEvent {
		t.Fatalf("expected exit 2, got %d", code)
	}
}

func TestRun_FilteredOutExitsWithTwo(t *testing.T) {
	chdir(t, t.TempDir())

	srv := investingServer(t, `<tr class="js-event-item" data-event-title="CPI" data-country="US" data-event-importance="low" data-event-datetime="2024-01-05 13:30:00"></tr>`)
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"-config", writeConfig(t, srv.URL),
		"-out-dir", t.TempDir(),
		"-importance", "high",
		"-log-level", "error",
	}, &stdout, &stderr)
	if code != exitNoEvent {
		t.Fatalf("expected exit 2, got %d", code)
	}
}

func TestRun_BadConfigIsFatal(t *testing.T) {
	chdir(t, t.TempDir())

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-tz", "Mars/Olympus"}, &stdout, &stderr)
	if code != exitFatal {
		t.Fatalf("expected exit 1, got %d", code)
	}
	code = run(context.Background(), []string{"-out-format", "parquet", "-log-level", "error"}, &stdout, &stderr)
	if code != exitFatal {
		t.Fatalf("expected exit 1 for unknown output, got %d", code)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
