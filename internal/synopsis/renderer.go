// Package synopsis renders edit scripts into the two-sided annotated HTML
// view used to compare law versions: the old side with deletions
// highlighted, the new side with insertions highlighted.
package synopsis

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/aleister1102/synopse/internal/models"
)

// Renderer converts edit scripts into annotated HTML fragments
type Renderer struct{}

// NewRenderer creates a new Renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the old-side and new-side HTML streams for an edit
// script. Equal spans are appended to both streams, deleted spans only to
// the old stream wrapped in <del>, inserted spans only to the new stream
// wrapped in <ins>. All raw text is escaped first so it cannot be
// interpreted as markup; stripping the wrappers and unescaping
// reconstructs the input texts exactly. An empty script yields two empty
// strings.
func (r *Renderer) Render(diffs []models.TextDiff) models.Synopsis {
	var oldBuilder, newBuilder strings.Builder

	for _, d := range diffs {
		escaped := escapeFragment(d.Text)

		switch d.Operation {
		case models.DiffDelete:
			oldBuilder.WriteString(`<del class="diff-deleted">`)
			oldBuilder.WriteString(escaped)
			oldBuilder.WriteString(`</del>`)
		case models.DiffInsert:
			newBuilder.WriteString(`<ins class="diff-inserted">`)
			newBuilder.WriteString(escaped)
			newBuilder.WriteString(`</ins>`)
		case models.DiffEqual:
			oldBuilder.WriteString(escaped)
			newBuilder.WriteString(escaped)
		}
	}

	return models.Synopsis{
		OldHTML: oldBuilder.String(),
		NewHTML: newBuilder.String(),
	}
}

// escapeFragment escapes HTML metacharacters and normalizes line breaks to
// explicit <br> markers.
func escapeFragment(text string) string {
	escaped := template.HTMLEscapeString(text)
	escaped = strings.ReplaceAll(escaped, "\r\n", "<br>")
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return escaped
}

// Summary creates a short text summary of an edit script, e.g. for log
// output.
func Summary(diffs []models.TextDiff) string {
	insertions, deletions := 0, 0
	for _, d := range diffs {
		switch d.Operation {
		case models.DiffInsert:
			insertions++
		case models.DiffDelete:
			deletions++
		}
	}
	if insertions == 0 && deletions == 0 {
		return "no textual changes detected"
	}
	return fmt.Sprintf("%d insertions (+), %d deletions (-)", insertions, deletions)
}
