// Package report maintains the cumulative analysis log.
package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// Append writes one dated section with this run's analyses to the log
// at path, creating the file if needed. The log is append-only: prior
// content is never rewritten or reordered. An empty run report still
// produces the section header.
func Append(path string, analyses []types.Analysis, now time.Time) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening log %s: %w", path, err)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "\n\n## arXiv papers - recent submissions (as of %s)\n\n", now.Format("2006-01-02"))
	for _, a := range analyses {
		Entry(&buf, a)
	}

	_, writeErr := f.Write(buf.Bytes())
	closeErr := f.Close()
	if writeErr != nil {
		return fmt.Errorf("writing log: %w", writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("closing log: %w", closeErr)
	}
	return nil
}

// Entry writes the per-paper block shared by the log and the mail body:
// title, authors, categories, publication date, link, analysis text,
// and a separator.
func Entry(w io.Writer, a types.Analysis) {
	fmt.Fprintf(w, "### %s\n", a.Paper.Title)
	fmt.Fprintf(w, "**Authors**: %s\n", strings.Join(a.Paper.Authors, ", "))
	fmt.Fprintf(w, "**Categories**: %s\n", strings.Join(a.Paper.Categories, ", "))
	fmt.Fprintf(w, "**Published**: %s\n", a.Paper.Published.Format("2006-01-02"))
	fmt.Fprintf(w, "**Link**: %s\n\n", a.Paper.EntryURL)
	fmt.Fprintf(w, "%s\n\n", a.Text)
	fmt.Fprint(w, "---\n\n")
}
