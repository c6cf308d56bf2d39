// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/sds-collector/internal/catalog"
	"github.com/pdiddy/sds-collector/pkg/types"
)

// minimalPDF returns a syntactically valid single-page PDF with a correct
// xref table.
func minimalPDF() []byte {
	var buf bytes.Buffer
	var offsets []int

	appendObj := func(obj string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(obj)
	}

	buf.WriteString("%PDF-1.4\n")
	appendObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	appendObj("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")
	appendObj("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> >>\nendobj\n")

	xrefPos := buf.Len()
	buf.WriteString("xref\n")
	fmt.Fprintf(&buf, "0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xrefPos)
	return buf.Bytes()
}

// newPipelineServer serves search pages and document downloads. Page 1
// links one valid PDF (twice, to exercise dedup), one corrupt PDF, and one
// unusable URL; page 2 fails with HTTP 500.
func newPipelineServer(t *testing.T) *httptest.Server {
	t.Helper()
	var ts *httptest.Server
	ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/search" && r.Method == http.MethodPost:
			var body struct {
				CurrentPage int `json:"currentPage"`
			}
			if err := jsonDecode(r, &body); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if body.CurrentPage != 1 {
				http.Error(w, "boom", http.StatusInternalServerError)
				return
			}
			fmt.Fprintf(w, `{"items":[
				{"link":"%[1]s/docs/sheet_one.pdf"},
				{"link":"%[1]s/docs/corrupt.pdf"},
				{"link":"%[1]s/docs/___.pdf"},
				{"link":"%[1]s/docs/sheet_one.pdf"},
				{"nolink":1}
			]}`, ts.URL)
		case r.URL.Path == "/docs/sheet_one.pdf":
			w.Header().Set("Content-Type", "application/pdf")
			w.Write(minimalPDF())
		case r.URL.Path == "/docs/corrupt.pdf":
			w.Header().Set("Content-Type", "application/pdf")
			fmt.Fprint(w, "not really a pdf")
		default:
			http.NotFound(w, r)
		}
	}))
	return ts
}

func jsonDecode(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func testConfig(ts *httptest.Server, dir string) types.CollectConfig {
	cfg := types.DefaultCollectConfig()
	cfg.Fetch.Endpoint = ts.URL + "/search"
	cfg.Fetch.Timeout = 10 * time.Second
	cfg.Download.OutputDir = dir
	cfg.Download.Timeout = 10 * time.Second
	cfg.FirstPage = 1
	cfg.LastPage = 2
	cfg.PageRetryDelay = 0
	cfg.LinkRetryDelay = 0
	return cfg
}

func TestRunEndToEnd(t *testing.T) {
	ts := newPipelineServer(t)
	defer ts.Close()

	dir := t.TempDir()
	var buf bytes.Buffer

	report := Run(context.Background(), ts.Client(), testConfig(ts, dir), nil, &buf)

	if report.PagesFetched != 1 || report.PagesFailed != 1 {
		t.Errorf("pages fetched/failed = %d/%d, want 1/1", report.PagesFetched, report.PagesFailed)
	}
	if report.LinksFound != 4 {
		t.Errorf("links found = %d, want 4", report.LinksFound)
	}
	if report.Downloaded != 2 {
		t.Errorf("downloaded = %d, want 2", report.Downloaded)
	}
	if report.Skipped != 1 {
		t.Errorf("skipped = %d, want 1 (duplicate link)", report.Skipped)
	}
	if report.Unusable != 1 {
		t.Errorf("unusable = %d, want 1", report.Unusable)
	}
	if report.Validated != 1 {
		t.Errorf("validated = %d, want 1", report.Validated)
	}
	if report.InvalidRemoved != 1 {
		t.Errorf("invalid removed = %d, want 1", report.InvalidRemoved)
	}

	if _, err := os.Stat(filepath.Join(dir, "sheet_one.pdf")); err != nil {
		t.Errorf("valid PDF missing after run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "corrupt.pdf")); !os.IsNotExist(err) {
		t.Error("corrupt PDF should have been removed")
	}

	out := buf.String()
	for _, want := range []string{"[INFO]", "[WARNING]", "[ERROR]", "[SUCCESS]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s line:\n%s", want, out)
		}
	}
}

func TestRunRecordsCatalog(t *testing.T) {
	ts := newPipelineServer(t)
	defer ts.Close()

	dir := t.TempDir()
	cat, err := catalog.Open(filepath.Join(t.TempDir(), "sds.db"))
	if err != nil {
		t.Fatalf("opening catalog: %v", err)
	}
	defer cat.Close()

	var buf bytes.Buffer
	Run(context.Background(), ts.Client(), testConfig(ts, dir), cat, &buf)

	stats, err := cat.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	// The duplicate sighting of the valid link upserts its row to skipped.
	if stats[types.StatusSkipped] != 1 {
		t.Errorf("skipped rows = %d, want 1", stats[types.StatusSkipped])
	}
	if stats[types.StatusInvalid] != 1 {
		t.Errorf("invalid rows = %d, want 1", stats[types.StatusInvalid])
	}
	if stats[types.StatusUnusable] != 1 {
		t.Errorf("unusable rows = %d, want 1", stats[types.StatusUnusable])
	}
}

func TestRunUppercaseNotice(t *testing.T) {
	ts := newPipelineServer(t)
	defer ts.Close()

	dir := t.TempDir()
	// A pre-existing file with an uppercase name survives validation and
	// triggers the notice.
	if err := os.WriteFile(filepath.Join(dir, "Legacy_Sheet.pdf"), minimalPDF(), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	Run(context.Background(), ts.Client(), testConfig(ts, dir), nil, &buf)

	if !strings.Contains(buf.String(), "[NOTICE]") {
		t.Errorf("output missing [NOTICE] for uppercase filename:\n%s", buf.String())
	}
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	report := types.RunReport{PagesFetched: 5, Downloaded: 3, Skipped: 1}

	if err := WriteReport(report, path); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "downloaded: 3") {
		t.Errorf("report content unexpected:\n%s", data)
	}
}
