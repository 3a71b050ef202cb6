package synopsis

import (
	"html"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/synopse/internal/models"
)

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer()

	result := r.Render([]models.TextDiff{
		{Operation: models.DiffEqual, Text: "the cat "},
		{Operation: models.DiffDelete, Text: "sat"},
		{Operation: models.DiffInsert, Text: "ran"},
	})

	assert.Equal(t, `the cat <del class="diff-deleted">sat</del>`, result.OldHTML)
	assert.Equal(t, `the cat <ins class="diff-inserted">ran</ins>`, result.NewHTML)
}

func TestRenderer_Render_Empty(t *testing.T) {
	r := NewRenderer()

	result := r.Render(nil)

	assert.Empty(t, result.OldHTML)
	assert.Empty(t, result.NewHTML)
}

func TestRenderer_Render_EqualOnly(t *testing.T) {
	r := NewRenderer()

	result := r.Render([]models.TextDiff{
		{Operation: models.DiffEqual, Text: "A B"},
	})

	assert.Equal(t, "A B", result.OldHTML)
	assert.Equal(t, "A B", result.NewHTML)
}

func TestRenderer_Render_EscapesMarkup(t *testing.T) {
	r := NewRenderer()

	result := r.Render([]models.TextDiff{
		{Operation: models.DiffEqual, Text: "a < b & c > d"},
	})

	assert.NotContains(t, result.OldHTML, "<b")
	assert.Contains(t, result.OldHTML, "&lt;")
	assert.Contains(t, result.OldHTML, "&amp;")
	assert.Contains(t, result.OldHTML, "&gt;")
}

func TestRenderer_Render_LineBreaks(t *testing.T) {
	r := NewRenderer()

	result := r.Render([]models.TextDiff{
		{Operation: models.DiffEqual, Text: "Absatz 1\nAbsatz 2"},
		{Operation: models.DiffDelete, Text: "zeile\r\nende"},
	})

	assert.Equal(t, `Absatz 1<br>Absatz 2<del class="diff-deleted">zeile<br>ende</del>`, result.OldHTML)
	assert.Equal(t, "Absatz 1<br>Absatz 2", result.NewHTML)
}

// Stripping the annotation wrappers and unescaping must reconstruct the
// original texts exactly, even when they contain markup metacharacters.
func TestRenderer_Render_EscapingRoundTrip(t *testing.T) {
	r := NewRenderer()

	oldText := "x < y & y > z"
	newText := "x < y & y >= w"

	diffs := []models.TextDiff{
		{Operation: models.DiffEqual, Text: "x < y & y >"},
		{Operation: models.DiffDelete, Text: " z"},
		{Operation: models.DiffInsert, Text: "= w"},
	}
	result := r.Render(diffs)

	strip := func(s string) string {
		s = strings.ReplaceAll(s, `<del class="diff-deleted">`, "")
		s = strings.ReplaceAll(s, `</del>`, "")
		s = strings.ReplaceAll(s, `<ins class="diff-inserted">`, "")
		s = strings.ReplaceAll(s, `</ins>`, "")
		return html.UnescapeString(s)
	}

	assert.Equal(t, oldText, strip(result.OldHTML))
	assert.Equal(t, newText, strip(result.NewHTML))
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "no textual changes detected", Summary([]models.TextDiff{
		{Operation: models.DiffEqual, Text: "same"},
	}))

	assert.Equal(t, "1 insertions (+), 1 deletions (-)", Summary([]models.TextDiff{
		{Operation: models.DiffDelete, Text: "sat"},
		{Operation: models.DiffInsert, Text: "ran"},
	}))
}

func TestGenerator_Generate(t *testing.T) {
	g := NewGenerator(zerolog.Nop())

	result := g.Generate("the cat sat", "the cat ran")

	assert.Equal(t, `the cat <del class="diff-deleted">sat</del>`, result.Synopsis.OldHTML)
	assert.Equal(t, `the cat <ins class="diff-inserted">ran</ins>`, result.Synopsis.NewHTML)
	assert.Equal(t, 3, result.Stats.CharsInserted)
	assert.Equal(t, 3, result.Stats.CharsDeleted)
	assert.False(t, result.Stats.IsIdentical)
}

func TestGenerator_Generate_Identical(t *testing.T) {
	g := NewGenerator(zerolog.Nop())

	result := g.Generate("A B", "A B")

	assert.Equal(t, "A B", result.Synopsis.OldHTML)
	assert.Equal(t, "A B", result.Synopsis.NewHTML)
	assert.True(t, result.Stats.IsIdentical)
}

func TestGenerator_Generate_Bilingual(t *testing.T) {
	g := NewGenerator(zerolog.Nop())

	oldZH := "在德国境内有住所或惯常居所的自然人，负有无限个人所得税纳税义务。"
	newZH := "在德国境内有住所或惯常居所的自然人，其全部所得均负有无限个人所得税纳税义务。"

	result := g.Generate(oldZH, newZH)

	require.False(t, result.Stats.IsIdentical)
	assert.Contains(t, result.Synopsis.NewHTML, `<ins class="diff-inserted">`)
	assert.NotContains(t, result.Synopsis.OldHTML, "<ins")
	// The old side carries no deletions here, the change is purely an
	// insertion.
	assert.Zero(t, result.Stats.CharsDeleted)
}
