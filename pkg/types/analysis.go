// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Analysis pairs a paper with the generated analysis text for one run.
// It lives only in the run report; the log and archive keep their own
// copies.
type Analysis struct {
	// Paper is the record the analysis was generated for.
	Paper Paper `json:"paper" yaml:"paper"`

	// Text is the analysis, or a short placeholder when Failed is set.
	Text string `json:"text" yaml:"text"`

	// Failed records that the inference call did not succeed. The paper
	// still appears in the log and notification with the placeholder.
	Failed bool `json:"failed,omitempty" yaml:"failed,omitempty"`
}
