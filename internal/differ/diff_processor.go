// Package differ computes edit scripts between two versions of a text.
//
// The engine finds a minimal sequence of equal, delete and insert
// operations using Myers' O(N*D) edit-graph search over runes, then applies
// a semantic cleanup pass that reshapes the raw script along word and line
// boundaries so a changed word is reported as a whole word rather than a
// partial overlap of two words.
package differ

import (
	"unicode/utf8"

	"github.com/aleister1102/synopse/internal/models"
)

// DiffProcessor handles the core diffing logic
type DiffProcessor struct {
	config DiffConfig
}

// NewDiffProcessor creates a new diff processor
func NewDiffProcessor(config DiffConfig) *DiffProcessor {
	return &DiffProcessor{
		config: config,
	}
}

// Compare generates the edit script between two text strings. It is total:
// any two texts, including empty and identical ones, produce a valid
// script. Identical inputs yield a single equal operation; two empty
// inputs yield an empty script.
func (dp *DiffProcessor) Compare(oldText, newText string) []models.TextDiff {
	diffs := diffMain([]rune(oldText), []rune(newText))

	if dp.config.EnableSemanticCleanup {
		diffs = cleanupSemantic(diffs)
	}

	return diffs
}

// Text1 reconstructs the old text from the old-side contributions of an
// edit script.
func Text1(diffs []models.TextDiff) string {
	var sb []byte
	for _, diff := range diffs {
		if diff.Operation != models.DiffInsert {
			sb = append(sb, diff.Text...)
		}
	}
	return string(sb)
}

// Text2 reconstructs the new text from the new-side contributions of an
// edit script.
func Text2(diffs []models.TextDiff) string {
	var sb []byte
	for _, diff := range diffs {
		if diff.Operation != models.DiffDelete {
			sb = append(sb, diff.Text...)
		}
	}
	return string(sb)
}

// EditCost returns the edit distance represented by a script: the larger
// of the inserted and deleted rune counts of each edit chunk, summed over
// all chunks between equalities.
func EditCost(diffs []models.TextDiff) int {
	cost := 0
	insertions, deletions := 0, 0
	for _, diff := range diffs {
		switch diff.Operation {
		case models.DiffInsert:
			insertions += utf8.RuneCountInString(diff.Text)
		case models.DiffDelete:
			deletions += utf8.RuneCountInString(diff.Text)
		case models.DiffEqual:
			cost += maxInt(insertions, deletions)
			insertions, deletions = 0, 0
		}
	}
	return cost + maxInt(insertions, deletions)
}

// DiffStatsCalculator calculates statistics from an edit script
type DiffStatsCalculator struct{}

// NewDiffStatsCalculator creates a new diff stats calculator
func NewDiffStatsCalculator() *DiffStatsCalculator {
	return &DiffStatsCalculator{}
}

// CalculateStats computes aggregate statistics from an edit script
func (dsc *DiffStatsCalculator) CalculateStats(diffs []models.TextDiff) models.DiffStats {
	stats := models.DiffStats{IsIdentical: true}

	for _, diff := range diffs {
		switch diff.Operation {
		case models.DiffInsert:
			stats.CharsInserted += utf8.RuneCountInString(diff.Text)
			stats.IsIdentical = false
		case models.DiffDelete:
			stats.CharsDeleted += utf8.RuneCountInString(diff.Text)
			stats.IsIdentical = false
		}
	}

	return stats
}
