// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"bytes"
	"strings"
	"text/template"
	"time"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// systemInstruction pins the assistant role and the response language.
const systemInstruction = "You are a research assistant specialized in summarizing and analyzing academic papers. Answer in English."

// analysisPromptTmpl is the fixed prompt sent once per paper. The
// response language is pinned to the report's locale regardless of the
// paper's own language.
var analysisPromptTmpl = template.Must(template.New("analysis").Parse(`Paper title: {{.Title}}
Authors: {{.Authors}}
Categories: {{.Categories}}
Published: {{.Published}}

Analyze this research paper and provide:
1. A concise summary (3-5 sentences)
2. The main contributions and novel ideas
3. The methodology: techniques, tools, and datasets used
4. The experimental setup and results, and the conclusions drawn from them
5. The potential impact on the field
6. Limitations and directions for future work

Answer in English regardless of the paper's language, as plain text in natural paragraphs.
`))

// renderPrompt executes the analysis prompt template for one paper.
func renderPrompt(paper types.Paper) (string, error) {
	data := struct {
		Title      string
		Authors    string
		Categories string
		Published  string
	}{
		Title:      paper.Title,
		Authors:    strings.Join(paper.Authors, ", "),
		Categories: strings.Join(paper.Categories, ", "),
		Published:  paper.Published.Format(time.RFC3339),
	}

	var buf bytes.Buffer
	if err := analysisPromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
