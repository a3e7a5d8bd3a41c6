// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"testing"
	"time"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

func sampleAnalyses() []types.Analysis {
	paper := types.Paper{
		ID:         "2301.07041v1",
		Title:      "Test Paper",
		Authors:    []string{"Alice Smith"},
		Categories: []string{"cs.AI"},
		Published:  time.Date(2023, 1, 17, 18, 58, 28, 0, time.UTC),
		EntryURL:   "http://arxiv.org/abs/2301.07041v1",
	}
	return []types.Analysis{
		{Paper: paper, Text: "Analysis text."},
		{Paper: paper, Text: "**Paper analysis failed**: rate limited", Failed: true},
	}
}

func TestRecordAndTotals(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Record(ctx, time.Now(), 3, sampleAnalyses()); err != nil {
		t.Fatalf("Record: %v", err)
	}

	runs, analyses, err := store.Totals(ctx)
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if runs != 1 || analyses != 2 {
		t.Errorf("Totals = (%d, %d), want (1, 2)", runs, analyses)
	}

	// A second run accumulates; nothing is overwritten.
	if err := store.Record(ctx, time.Now(), 1, sampleAnalyses()[:1]); err != nil {
		t.Fatalf("second Record: %v", err)
	}
	runs, analyses, err = store.Totals(ctx)
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if runs != 2 || analyses != 3 {
		t.Errorf("Totals = (%d, %d), want (2, 3)", runs, analyses)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if err := store.Record(context.Background(), time.Now(), 1, sampleAnalyses()[:1]); err != nil {
		t.Fatalf("Record: %v", err)
	}
	store.Close()

	// Reopening an existing database must not disturb its contents.
	store, err = Open(dir)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	defer store.Close()

	runs, analyses, err := store.Totals(context.Background())
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if runs != 1 || analyses != 1 {
		t.Errorf("Totals = (%d, %d), want (1, 1)", runs, analyses)
	}
}
