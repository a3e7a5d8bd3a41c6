// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notify

import (
	"bytes"
	"strings"
	"text/template"
)

// htmlShell wraps the converted report body in a fixed page with
// embedded styling.
var htmlShell = template.Must(template.New("mail").Parse(`<html>
<head>
<meta charset="UTF-8">
<style>body{font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,'Helvetica Neue',Arial,sans-serif;line-height:1.6;max-width:1000px;margin:0 auto;padding:20px;background-color:#f5f5f5;}.container{background-color:white;padding:30px;border-radius:8px;box-shadow:0 2px 4px rgba(0,0,0,0.1);}h1{color:#2c3e50;border-bottom:2px solid #3498db;padding-bottom:10px;margin-bottom:30px;}h2{color:#34495e;margin-top:40px;padding-bottom:8px;border-bottom:1px solid #eee;}h3{color:#2980b9;margin-top:30px;}a{color:#3498db;text-decoration:none;}a:hover{text-decoration:underline;}hr{border:none;border-top:1px solid #eee;margin:30px 0;}strong{color:#2c3e50;}</style>
</head>
<body>
<div class="container">
{{.Content}}
</div>
</body>
</html>
`))

// RenderHTML converts the report's lightweight markup to HTML by
// literal substring replacement, in this order: paragraph breaks,
// separators, then heading and bold markers. This is not a markup
// parser: literal occurrences of the marker substrings inside analysis
// text are converted as well.
func RenderHTML(body string) (string, error) {
	converted := strings.ReplaceAll(body, "\n\n", "<br><br>")
	converted = strings.ReplaceAll(converted, "---", "<hr>")
	converted = strings.ReplaceAll(converted, "###", "<h2>")
	converted = strings.ReplaceAll(converted, "##", "<h1>")
	converted = strings.ReplaceAll(converted, "**", "<strong>")

	var buf bytes.Buffer
	if err := htmlShell.Execute(&buf, struct{ Content string }{Content: converted}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
