package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

func analysisFor(id, title string) types.Analysis {
	return types.Analysis{
		Paper: types.Paper{
			ID:         id,
			Title:      title,
			Authors:    []string{"Alice Smith", "Bob Jones"},
			Categories: []string{"cs.AI"},
			Published:  time.Date(2023, 1, 17, 18, 58, 28, 0, time.UTC),
			EntryURL:   "http://arxiv.org/abs/" + id,
		},
		Text: "Analysis of " + title + ".",
	}
}

func TestAppendIsAppendOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conclusion.md")

	day1 := time.Date(2023, 1, 18, 9, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)

	if err := Append(path, []types.Analysis{analysisFor("2301.00001v1", "First Paper")}, day1); err != nil {
		t.Fatalf("first append: %v", err)
	}
	if err := Append(path, []types.Analysis{analysisFor("2301.00002v1", "Second Paper")}, day2); err != nil {
		t.Fatalf("second append: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	firstIdx := strings.Index(content, "First Paper")
	secondIdx := strings.Index(content, "Second Paper")
	if firstIdx < 0 || secondIdx < 0 {
		t.Fatalf("log missing a run's section:\n%s", content)
	}
	if firstIdx > secondIdx {
		t.Error("runs out of append order")
	}
	if strings.Count(content, "(as of 2023-01-18)") != 1 || strings.Count(content, "(as of 2023-01-19)") != 1 {
		t.Errorf("expected one dated header per run:\n%s", content)
	}
}

func TestAppendEntryFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conclusion.md")

	if err := Append(path, []types.Analysis{analysisFor("2301.00001v1", "First Paper")}, time.Now()); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	for _, want := range []string{
		"### First Paper",
		"**Authors**: Alice Smith, Bob Jones",
		"**Categories**: cs.AI",
		"**Published**: 2023-01-17",
		"**Link**: http://arxiv.org/abs/2301.00001v1",
		"Analysis of First Paper.",
		"---",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("log missing %q", want)
		}
	}
}

func TestAppendEmptyRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conclusion.md")

	if err := Append(path, nil, time.Date(2023, 1, 18, 9, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, "(as of 2023-01-18)") {
		t.Errorf("empty run must still write the section header:\n%s", content)
	}
	if strings.Contains(content, "###") {
		t.Errorf("empty run must not write paper entries:\n%s", content)
	}
}

func TestAppendFailsOnBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "conclusion.md")
	if err := Append(path, nil, time.Now()); err == nil {
		t.Fatal("expected error for unwritable log path")
	}
}
