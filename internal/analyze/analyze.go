// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze generates a natural-language analysis of a paper via
// an OpenAI-protocol inference service.
package analyze

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// Backend abstracts the inference API so tests can supply a mock. The
// pdf bytes are passed through as an opaque attachment; the service is
// responsible for parsing them.
type Backend interface {
	Complete(ctx context.Context, system, prompt string, pdf []byte) (string, error)
}

// Analyze renders the analysis prompt for paper and issues exactly one
// inference request — no chunking, no retries. Failures (including an
// unreadable PDF) are absorbed: the returned Analysis carries a short
// placeholder text and Failed=true so the paper still appears in the
// log and report.
func Analyze(ctx context.Context, backend Backend, paper types.Paper, pdfPath string, w io.Writer) types.Analysis {
	prompt, err := renderPrompt(paper)
	if err != nil {
		return failed(paper, fmt.Errorf("rendering prompt: %w", err), w)
	}

	pdf, err := os.ReadFile(pdfPath)
	if err != nil {
		return failed(paper, fmt.Errorf("reading PDF: %w", err), w)
	}

	fmt.Fprintf(w, "analyzing: %s\n", paper.Title)
	text, err := backend.Complete(ctx, systemInstruction, prompt, pdf)
	if err != nil {
		return failed(paper, err, w)
	}

	fmt.Fprintf(w, "analysis complete: %s\n", paper.Title)
	return types.Analysis{Paper: paper, Text: text}
}

func failed(paper types.Paper, err error, w io.Writer) types.Analysis {
	fmt.Fprintf(w, "analysis failed %s: %v\n", paper.ID, err)
	return types.Analysis{
		Paper:  paper,
		Text:   fmt.Sprintf("**Paper analysis failed**: %v", err),
		Failed: true,
	}
}
