// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline sequences one full discovery-to-notification pass:
// discover papers, fetch and analyze each in order, append the run to
// the cumulative log, archive it, and mail the report. One process
// invocation performs exactly one pass.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-digest/internal/analyze"
	"github.com/pdiddy/arxiv-digest/internal/archive"
	"github.com/pdiddy/arxiv-digest/internal/discover"
	"github.com/pdiddy/arxiv-digest/internal/fetch"
	"github.com/pdiddy/arxiv-digest/internal/notify"
	"github.com/pdiddy/arxiv-digest/internal/report"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

const summaryFile = "last-run.yaml"

// Pipeline wires the stages for a single run. The stage fields default
// to the real implementations; tests substitute fakes.
type Pipeline struct {
	Config types.PipelineConfig
	Out    io.Writer

	Discover func(ctx context.Context) ([]types.Paper, error)
	Fetch    func(paper types.Paper) (path string, ok bool)
	Analyze  func(ctx context.Context, paper types.Paper, pdfPath string) types.Analysis
	Notify   func(analyses []types.Analysis, now time.Time) error
}

// New builds a Pipeline bound to the real stage implementations.
func New(cfg types.PipelineConfig, client *http.Client, backend analyze.Backend, out io.Writer) *Pipeline {
	return &Pipeline{
		Config: cfg,
		Out:    out,
		Discover: func(ctx context.Context) ([]types.Paper, error) {
			return discover.Recent(ctx, client, cfg.Discovery)
		},
		Fetch: func(paper types.Paper) (string, bool) {
			return fetch.Fetch(client, paper, cfg.Fetch, out)
		},
		Analyze: func(ctx context.Context, paper types.Paper, pdfPath string) types.Analysis {
			return analyze.Analyze(ctx, backend, paper, pdfPath, out)
		},
		Notify: func(analyses []types.Analysis, now time.Time) error {
			return notify.Send(cfg.Mail, analyses, now, out)
		},
	}
}

// Summary holds the counts from one pass.
type Summary struct {
	// RunDate is when the pass started processing papers.
	RunDate time.Time `yaml:"run_date"`

	// Discovered is the number of papers discovery returned.
	Discovered int `yaml:"discovered"`

	// Analyzed counts papers whose inference call succeeded.
	Analyzed int `yaml:"analyzed"`

	// Failed counts papers recorded with a placeholder analysis.
	Failed int `yaml:"failed"`

	// Skipped counts papers whose PDF could not be fetched. They appear
	// nowhere in the log or report.
	Skipped int `yaml:"skipped"`
}

// Run performs one pass. Per-paper failures are absorbed: a fetch
// failure skips the paper, an inference failure records a placeholder.
// A log-write failure is fatal. Archive, summary, and mail failures are
// logged and the run still succeeds; each finalize step is isolated
// from the others.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := os.MkdirAll(p.Config.Fetch.PapersDir, 0o755); err != nil {
		return fmt.Errorf("creating papers directory: %w", err)
	}

	papers, err := p.Discover(ctx)
	if err != nil {
		return fmt.Errorf("discovering papers: %w", err)
	}
	fmt.Fprintf(p.Out, "found %d paper(s) in the window\n", len(papers))
	if len(papers) == 0 {
		fmt.Fprintln(p.Out, "nothing to do")
		return nil
	}

	now := time.Now()
	summary := Summary{RunDate: now, Discovered: len(papers)}
	var analyses []types.Analysis

	for i, paper := range papers {
		fmt.Fprintf(p.Out, "processing paper %d/%d: %s\n", i+1, len(papers), paper.Title)

		pdfPath, ok := p.Fetch(paper)
		if !ok {
			summary.Skipped++
			continue
		}

		// Rate-limit courtesy pause before each inference call.
		if p.Config.Analysis.Delay > 0 {
			time.Sleep(p.Config.Analysis.Delay)
		}

		a := p.Analyze(ctx, paper, pdfPath)
		if a.Failed {
			summary.Failed++
		} else {
			summary.Analyzed++
		}
		analyses = append(analyses, a)

		fetch.Remove(pdfPath, p.Out)
	}

	if err := report.Append(p.Config.LogFile, analyses, now); err != nil {
		return fmt.Errorf("writing log: %w", err)
	}
	fmt.Fprintf(p.Out, "analyses written to %s\n", p.Config.LogFile)

	if err := p.recordRun(ctx, now, summary, analyses); err != nil {
		fmt.Fprintf(p.Out, "warning: archiving run failed: %v\n", err)
	}
	if err := writeSummary(p.Config.StateDir, summary); err != nil {
		fmt.Fprintf(p.Out, "warning: writing run summary failed: %v\n", err)
	}

	if err := p.Notify(analyses, now); err != nil {
		fmt.Fprintf(p.Out, "warning: sending report failed: %v\n", err)
	}

	fmt.Fprintf(p.Out, "run complete: %d analyzed, %d failed, %d skipped\n",
		summary.Analyzed, summary.Failed, summary.Skipped)
	return nil
}

// recordRun appends the run to the SQLite archive.
func (p *Pipeline) recordRun(ctx context.Context, now time.Time, summary Summary, analyses []types.Analysis) error {
	if p.Config.StateDir == "" {
		return nil
	}
	store, err := archive.Open(p.Config.StateDir)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(ctx, now, summary.Discovered, analyses)
}

// writeSummary replaces stateDir/last-run.yaml with this run's counts.
func writeSummary(stateDir string, summary Summary) error {
	if stateDir == "" {
		return nil
	}
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	return os.WriteFile(filepath.Join(stateDir, summaryFile), data, 0o644)
}
