// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

const fakePDFContent = "%PDF-1.4 fake"

func testPaper(srvURL string) types.Paper {
	return types.Paper{
		ID:     "2301.07041v1",
		Title:  "Test Paper",
		PDFURL: srvURL + "/pdf/2301.07041v1",
	}
}

func TestFetchIdempotent(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Type", "application/pdf")
		fmt.Fprint(w, fakePDFContent)
	}))
	defer srv.Close()

	cfg := types.FetchConfig{PapersDir: t.TempDir()}
	paper := testPaper(srv.URL)
	var out bytes.Buffer

	first, ok := Fetch(srv.Client(), paper, cfg, &out)
	if !ok {
		t.Fatalf("first fetch failed: %s", out.String())
	}
	data, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("reading downloaded PDF: %v", err)
	}
	if string(data) != fakePDFContent {
		t.Errorf("PDF content = %q", data)
	}

	second, ok := Fetch(srv.Client(), paper, cfg, &out)
	if !ok {
		t.Fatalf("second fetch failed: %s", out.String())
	}
	if second != first {
		t.Errorf("paths differ: %q vs %q", first, second)
	}
	if requests != 1 {
		t.Errorf("got %d transfers, want 1 (second call must skip)", requests)
	}
}

func TestFetchDerivesSafeFilename(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, fakePDFContent)
	}))
	defer srv.Close()

	cfg := types.FetchConfig{PapersDir: t.TempDir()}
	paper := types.Paper{ID: "cond-mat/0703470v2", PDFURL: srv.URL + "/pdf"}
	var out bytes.Buffer

	path, ok := Fetch(srv.Client(), paper, cfg, &out)
	if !ok {
		t.Fatalf("fetch failed: %s", out.String())
	}
	if filepath.Base(path) != "cond-mat_0703470v2.pdf" {
		t.Errorf("filename = %q, want separator normalized", filepath.Base(path))
	}
}

func TestFetchUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	dir := t.TempDir()
	cfg := types.FetchConfig{PapersDir: dir}
	var out bytes.Buffer

	path, ok := Fetch(srv.Client(), testPaper(srv.URL), cfg, &out)
	if ok {
		t.Fatal("expected ok=false on HTTP 404")
	}
	if path != "" {
		t.Errorf("path = %q, want empty", path)
	}
	if !strings.Contains(out.String(), "download failed") {
		t.Errorf("failure not reported: %q", out.String())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("working directory not clean after failure: %v", entries)
	}
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "2301.07041v1.pdf")
	if err := os.WriteFile(path, []byte(fakePDFContent), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	Remove(path, &out)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file still present after Remove")
	}

	// A second Remove logs but never raises.
	out.Reset()
	Remove(path, &out)
	if !strings.Contains(out.String(), "nothing to delete") {
		t.Errorf("missing-file case not reported: %q", out.String())
	}
}
