package file

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
)

// markdown is the shared converter. GFM enables the tables the doc
// prompts ask the model to emit.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// pageTemplate wraps the converted body in a standalone page so the
// HTML artifact opens directly in a browser.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; max-width: 900px; margin: 2rem auto; padding: 0 1rem; line-height: 1.6; color: #1f2328; }
h1, h2, h3 { border-bottom: 1px solid #d1d9e0; padding-bottom: .3em; }
code { background: #f6f8fa; padding: .2em .4em; border-radius: 4px; font-size: 85%; }
pre { background: #f6f8fa; padding: 1em; border-radius: 6px; overflow-x: auto; }
pre code { background: none; padding: 0; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #d1d9e0; padding: .4em .8em; text-align: left; }
.doc-header { color: #59636e; font-size: .85em; margin-bottom: 2rem; }
.doc-badge { background: #ddf4ff; color: #0969da; border-radius: 2em; padding: .1em .7em; }
</style>
</head>
<body>
<div class="doc-header">
<span class="doc-badge">{{.DocType}}</span>
Generated {{.GeneratedAt}} · source version {{.SourceVersion}}
</div>
{{.Body}}
</body>
</html>
`))

type pageData struct {
	Title         string
	DocType       string
	GeneratedAt   string
	SourceVersion string
	Body          template.HTML
}

// renderHTML converts the markdown body and wraps it in the page shell.
func renderHTML(doc *domain.Documentation, source string) (string, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(source), &body); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}

	var page bytes.Buffer
	err := pageTemplate.Execute(&page, pageData{
		Title:         doc.Title,
		DocType:       doc.DocType.String(),
		GeneratedAt:   doc.CreatedAt.UTC().Format(time.RFC3339),
		SourceVersion: doc.SourceVersion,
		Body:          template.HTML(body.String()),
	})
	if err != nil {
		return "", fmt.Errorf("execute page template: %w", err)
	}
	return page.String(), nil
}
