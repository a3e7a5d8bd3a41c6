// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strings"
	"time"
)

// Paper holds the metadata discovery returns for one arXiv submission.
// Records are immutable once returned; the pipeline owns them for the
// duration of a run and they are not persisted on their own.
type Paper struct {
	// ID is the arXiv short identifier, version suffix included
	// (e.g. "2301.07041v1" or "cond-mat/0703470v2").
	ID string `json:"id" yaml:"id"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Categories lists the arXiv category tags assigned to the paper.
	Categories []string `json:"categories" yaml:"categories"`

	// Published is the submission timestamp.
	Published time.Time `json:"published" yaml:"published"`

	// EntryURL is the canonical abstract page URL.
	EntryURL string `json:"entry_url" yaml:"entry_url"`

	// PDFURL is the location the paper's PDF is fetched from.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`
}

// SafeID returns the identifier with path separators normalized so it
// can be used as a filename. Pre-2007 arXiv IDs contain a "/".
func (p Paper) SafeID() string {
	return strings.ReplaceAll(p.ID, "/", "_")
}
