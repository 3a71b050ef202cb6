package differ

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aleister1102/synopse/internal/models"
)

// cleanupMerge coalesces the edit script: adjacent operations of the same
// tag are merged, common prefixes and suffixes of paired delete/insert runs
// are factored out into the surrounding equalities, and single edits
// surrounded by equalities are slid sideways when that eliminates a split
// equality. The reconstruction invariant is preserved exactly.
func cleanupMerge(diffs []models.TextDiff) []models.TextDiff {
	if len(diffs) == 0 {
		return diffs
	}

	// Dummy trailing equality triggers the flush of any pending edits.
	diffs = append(diffs, models.TextDiff{Operation: models.DiffEqual})

	merged := make([]models.TextDiff, 0, len(diffs))
	var textDelete, textInsert []rune

	appendEqual := func(text []rune) {
		if len(text) == 0 {
			return
		}
		if len(merged) > 0 && merged[len(merged)-1].Operation == models.DiffEqual {
			merged[len(merged)-1].Text += string(text)
		} else {
			merged = append(merged, models.TextDiff{Operation: models.DiffEqual, Text: string(text)})
		}
	}

	for _, diff := range diffs {
		switch diff.Operation {
		case models.DiffDelete:
			textDelete = append(textDelete, []rune(diff.Text)...)
		case models.DiffInsert:
			textInsert = append(textInsert, []rune(diff.Text)...)
		case models.DiffEqual:
			equality := []rune(diff.Text)
			if len(textDelete) > 0 && len(textInsert) > 0 {
				// Factor out any common prefix into the preceding equality.
				if n := commonPrefixLength(textInsert, textDelete); n > 0 {
					appendEqual(textInsert[:n])
					textInsert = textInsert[n:]
					textDelete = textDelete[n:]
				}
				// Factor out any common suffix into the following equality.
				if n := commonSuffixLength(textInsert, textDelete); n > 0 {
					common := textInsert[len(textInsert)-n:]
					equality = append(append([]rune{}, common...), equality...)
					textInsert = textInsert[:len(textInsert)-n]
					textDelete = textDelete[:len(textDelete)-n]
				}
			}
			if len(textDelete) > 0 {
				merged = append(merged, models.TextDiff{Operation: models.DiffDelete, Text: string(textDelete)})
			}
			if len(textInsert) > 0 {
				merged = append(merged, models.TextDiff{Operation: models.DiffInsert, Text: string(textInsert)})
			}
			textDelete = nil
			textInsert = nil
			appendEqual(equality)
		}
	}

	// Slide single edits surrounded by equalities sideways when the edit
	// overlaps one of its neighbors entirely; this can eliminate a split
	// equality and enables further merges.
	changes := false
	for i := 1; i < len(merged)-1; i++ {
		prev, cur, next := merged[i-1], merged[i], merged[i+1]
		if prev.Operation != models.DiffEqual || next.Operation != models.DiffEqual {
			continue
		}
		if strings.HasSuffix(cur.Text, prev.Text) {
			merged[i].Text = prev.Text + strings.TrimSuffix(cur.Text, prev.Text)
			merged[i+1].Text = prev.Text + next.Text
			merged = append(merged[:i-1], merged[i:]...)
			changes = true
		} else if strings.HasPrefix(cur.Text, next.Text) {
			merged[i-1].Text = prev.Text + next.Text
			merged[i].Text = strings.TrimPrefix(cur.Text, next.Text) + next.Text
			merged = append(merged[:i+1], merged[i+2:]...)
			changes = true
		}
	}
	if changes {
		return cleanupMerge(merged)
	}
	return merged
}

// cleanupSemantic rewrites a minimal edit script into one aligned with
// human-perceived change boundaries: short equalities dominated by the
// edits around them are re-absorbed, edit boundaries are shifted to
// word and line boundaries, and overlaps between paired deletions and
// insertions are surfaced as equalities. The reconstruction invariant is
// preserved exactly.
func cleanupSemantic(diffs []models.TextDiff) []models.TextDiff {
	changes := false
	// Stack of indices where equalities are found.
	equalities := make([]int, 0, len(diffs))
	var lastEquality string

	// Number of runes changed before and after the last equality.
	var insertions1, deletions1 int
	var insertions2, deletions2 int

	for pointer := 0; pointer < len(diffs); pointer++ {
		if diffs[pointer].Operation == models.DiffEqual {
			equalities = append(equalities, pointer)
			insertions1, deletions1 = insertions2, deletions2
			insertions2, deletions2 = 0, 0
			lastEquality = diffs[pointer].Text
			continue
		}

		if diffs[pointer].Operation == models.DiffInsert {
			insertions2 += utf8.RuneCountInString(diffs[pointer].Text)
		} else {
			deletions2 += utf8.RuneCountInString(diffs[pointer].Text)
		}

		// An equality dominated by the edits on both of its sides is
		// noise: turn it into a paired deletion and insertion so the
		// surrounding edits merge into coherent chunks.
		length := utf8.RuneCountInString(lastEquality)
		if lastEquality != "" && length <= maxInt(insertions1, deletions1) && length <= maxInt(insertions2, deletions2) {
			index := equalities[len(equalities)-1]

			expanded := make([]models.TextDiff, 0, len(diffs)+1)
			expanded = append(expanded, diffs[:index]...)
			expanded = append(expanded, models.TextDiff{Operation: models.DiffDelete, Text: lastEquality})
			expanded = append(expanded, models.TextDiff{Operation: models.DiffInsert, Text: lastEquality})
			expanded = append(expanded, diffs[index+1:]...)
			diffs = expanded

			// Throw away the equality just deleted and the one before it,
			// which may now also qualify.
			equalities = equalities[:len(equalities)-1]
			if len(equalities) > 0 {
				equalities = equalities[:len(equalities)-1]
			}
			if len(equalities) > 0 {
				pointer = equalities[len(equalities)-1]
			} else {
				pointer = -1
			}
			insertions1, deletions1 = 0, 0
			insertions2, deletions2 = 0, 0
			lastEquality = ""
			changes = true
		}
	}

	if changes {
		diffs = cleanupMerge(diffs)
	}
	diffs = cleanupSemanticLossless(diffs)
	return cleanupOverlaps(diffs)
}

// cleanupOverlaps finds overlaps between adjacent deletions and insertions
// and extracts them as equalities, e.g. abcxxx -> xxxdef becomes
// abc, xxx, def.
func cleanupOverlaps(diffs []models.TextDiff) []models.TextDiff {
	for pointer := 1; pointer < len(diffs); pointer++ {
		if diffs[pointer-1].Operation != models.DiffDelete || diffs[pointer].Operation != models.DiffInsert {
			continue
		}
		deletion := []rune(diffs[pointer-1].Text)
		insertion := []rune(diffs[pointer].Text)
		overlap1 := commonOverlapLength(deletion, insertion)
		overlap2 := commonOverlapLength(insertion, deletion)

		switch {
		case overlap1 >= overlap2 && (overlap1*2 >= len(deletion) || overlap1*2 >= len(insertion)) && overlap1 > 0:
			// Overlap found; insert an equality and trim the edits.
			rebuilt := make([]models.TextDiff, 0, len(diffs)+1)
			rebuilt = append(rebuilt, diffs[:pointer]...)
			rebuilt = append(rebuilt, models.TextDiff{Operation: models.DiffEqual, Text: string(insertion[:overlap1])})
			rebuilt = append(rebuilt, diffs[pointer:]...)
			diffs = rebuilt
			diffs[pointer-1].Text = string(deletion[:len(deletion)-overlap1])
			diffs[pointer+1].Text = string(insertion[overlap1:])
			pointer++
		case overlap2 > overlap1 && (overlap2*2 >= len(deletion) || overlap2*2 >= len(insertion)):
			// Reversed overlap: the end of the insertion matches the start
			// of the deletion.
			rebuilt := make([]models.TextDiff, 0, len(diffs)+1)
			rebuilt = append(rebuilt, diffs[:pointer]...)
			rebuilt = append(rebuilt, models.TextDiff{Operation: models.DiffEqual, Text: string(deletion[:overlap2])})
			rebuilt = append(rebuilt, diffs[pointer:]...)
			diffs = rebuilt
			diffs[pointer-1] = models.TextDiff{Operation: models.DiffInsert, Text: string(insertion[:len(insertion)-overlap2])}
			diffs[pointer+1] = models.TextDiff{Operation: models.DiffDelete, Text: string(deletion[overlap2:])}
			pointer++
		}
	}
	return diffs
}

// cleanupSemanticLossless shifts edit boundaries sideways to align them
// with word, sentence and line boundaries, without changing either
// reconstructed text. Of equally scored positions the earliest boundary
// wins, which keeps the output deterministic.
func cleanupSemanticLossless(diffs []models.TextDiff) []models.TextDiff {
	for pointer := 1; pointer < len(diffs)-1; pointer++ {
		if diffs[pointer-1].Operation != models.DiffEqual || diffs[pointer+1].Operation != models.DiffEqual {
			continue
		}

		equality1 := []rune(diffs[pointer-1].Text)
		edit := []rune(diffs[pointer].Text)
		equality2 := []rune(diffs[pointer+1].Text)

		// First, slide the edit as far left as possible.
		if n := commonSuffixLength(equality1, edit); n > 0 {
			common := append([]rune{}, edit[len(edit)-n:]...)
			equality2 = append(append([]rune{}, common...), equality2...)
			edit = append(append([]rune{}, common...), edit[:len(edit)-n]...)
			equality1 = equality1[:len(equality1)-n]
		}

		// Second, step rune by rune right, keeping the best scoring split.
		bestEquality1 := append([]rune{}, equality1...)
		bestEdit := append([]rune{}, edit...)
		bestEquality2 := append([]rune{}, equality2...)
		bestScore := boundaryScore(equality1, edit) + boundaryScore(edit, equality2)

		for len(edit) > 0 && len(equality2) > 0 && edit[0] == equality2[0] {
			equality1 = append(equality1, edit[0])
			edit = append(append([]rune{}, edit[1:]...), equality2[0])
			equality2 = equality2[1:]

			score := boundaryScore(equality1, edit) + boundaryScore(edit, equality2)
			// Strictly greater: ties keep the earlier boundary.
			if score > bestScore {
				bestScore = score
				bestEquality1 = append([]rune{}, equality1...)
				bestEdit = append([]rune{}, edit...)
				bestEquality2 = append([]rune{}, equality2...)
			}
		}

		if diffs[pointer-1].Text == string(bestEquality1) {
			continue
		}

		// An improvement was found; apply it.
		diffs[pointer].Text = string(bestEdit)
		if len(bestEquality1) > 0 {
			diffs[pointer-1].Text = string(bestEquality1)
		} else {
			diffs = append(diffs[:pointer-1], diffs[pointer:]...)
			pointer--
		}
		if len(bestEquality2) > 0 {
			diffs[pointer+1].Text = string(bestEquality2)
		} else {
			diffs = append(diffs[:pointer+1], diffs[pointer+2:]...)
			pointer--
		}
	}
	return diffs
}

var (
	blankLineEnd   = regexp.MustCompile(`\n\r?\n$`)
	blankLineStart = regexp.MustCompile(`^\r?\n\r?\n`)
)

// boundaryScore rates the quality of the seam between two texts. Five
// points for a seam at a blank line, four at a line break, three after
// sentence-ending punctuation, two at whitespace, one next to other
// punctuation, zero otherwise, and six when either side is empty (edges of
// the text are the best boundaries of all).
func boundaryScore(one, two []rune) int {
	if len(one) == 0 || len(two) == 0 {
		return 6
	}

	rune1 := one[len(one)-1]
	rune2 := two[0]
	nonAlphaNumeric1 := !unicode.IsLetter(rune1) && !unicode.IsNumber(rune1)
	nonAlphaNumeric2 := !unicode.IsLetter(rune2) && !unicode.IsNumber(rune2)
	whitespace1 := nonAlphaNumeric1 && unicode.IsSpace(rune1)
	whitespace2 := nonAlphaNumeric2 && unicode.IsSpace(rune2)
	lineBreak1 := whitespace1 && (rune1 == '\n' || rune1 == '\r')
	lineBreak2 := whitespace2 && (rune2 == '\n' || rune2 == '\r')
	blankLine1 := lineBreak1 && blankLineEnd.MatchString(string(one))
	blankLine2 := lineBreak2 && blankLineStart.MatchString(string(two))

	switch {
	case blankLine1 || blankLine2:
		return 5
	case lineBreak1 || lineBreak2:
		return 4
	case nonAlphaNumeric1 && !whitespace1 && whitespace2:
		// End of sentence.
		return 3
	case whitespace1 || whitespace2:
		return 2
	case nonAlphaNumeric1 || nonAlphaNumeric2:
		return 1
	}
	return 0
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
