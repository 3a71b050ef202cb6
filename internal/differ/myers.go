package differ

import (
	"github.com/aleister1102/synopse/internal/models"
)

// diffMain computes an edit script transforming text1 into text2. The
// script is minimal in edit cost and merged, but not yet semantically
// cleaned up.
func diffMain(text1, text2 []rune) []models.TextDiff {
	if runesEqual(text1, text2) {
		if len(text1) > 0 {
			return []models.TextDiff{{Operation: models.DiffEqual, Text: string(text1)}}
		}
		return nil
	}

	// Trim off any common prefix and suffix; only the middle differs.
	n := commonPrefixLength(text1, text2)
	prefix := text1[:n]
	text1 = text1[n:]
	text2 = text2[n:]

	n = commonSuffixLength(text1, text2)
	suffix := text1[len(text1)-n:]
	text1 = text1[:len(text1)-n]
	text2 = text2[:len(text2)-n]

	diffs := diffCompute(text1, text2)

	if len(prefix) > 0 {
		diffs = append([]models.TextDiff{{Operation: models.DiffEqual, Text: string(prefix)}}, diffs...)
	}
	if len(suffix) > 0 {
		diffs = append(diffs, models.TextDiff{Operation: models.DiffEqual, Text: string(suffix)})
	}

	return cleanupMerge(diffs)
}

// diffCompute handles the trivial shapes directly and defers everything
// else to the edit-graph search. Both inputs share no common prefix or
// suffix and at least one of them is non-empty.
func diffCompute(text1, text2 []rune) []models.TextDiff {
	if len(text1) == 0 {
		return []models.TextDiff{{Operation: models.DiffInsert, Text: string(text2)}}
	}
	if len(text2) == 0 {
		return []models.TextDiff{{Operation: models.DiffDelete, Text: string(text1)}}
	}

	longText := longOf(text1, text2)
	shortText := shortOf(text1, text2)
	op := models.DiffInsert
	if len(text1) > len(text2) {
		op = models.DiffDelete
	}
	// Wholly contained shorter text means a single insertion or deletion
	// split around it.
	if i := runesIndexOf(longText, shortText); i >= 0 {
		return []models.TextDiff{
			{Operation: op, Text: string(longText[:i])},
			{Operation: models.DiffEqual, Text: string(shortText)},
			{Operation: op, Text: string(longText[i+len(shortText):])},
		}
	}
	if len(shortText) == 1 {
		// A single rune with no containment cannot match anything.
		return []models.TextDiff{
			{Operation: models.DiffDelete, Text: string(text1)},
			{Operation: models.DiffInsert, Text: string(text2)},
		}
	}

	return bisect(text1, text2)
}

// bisect finds the middle snake of the edit graph using Myers' O(N*D)
// divide and conquer and recurses on both halves. The forward path is
// preferred on overlap, which keeps matching runs as long as possible near
// the start of the text and makes the output deterministic.
func bisect(runes1, runes2 []rune) []models.TextDiff {
	n, m := len(runes1), len(runes2)
	maxD := (n + m + 1) / 2
	vOffset := maxD
	vLength := 2*maxD + 2

	v1 := make([]int, vLength)
	v2 := make([]int, vLength)
	for i := range v1 {
		v1[i] = -1
		v2[i] = -1
	}
	v1[vOffset+1] = 0
	v2[vOffset+1] = 0

	delta := n - m
	// If the total number of runes is odd, the front path will collide
	// with the reverse path.
	front := delta%2 != 0

	// Offsets for start and end of k loop. Prevents mapping of space
	// beyond the grid.
	k1start, k1end, k2start, k2end := 0, 0, 0, 0

	for d := 0; d < maxD; d++ {
		// Walk the front path one step.
		for k1 := -d + k1start; k1 <= d-k1end; k1 += 2 {
			k1Offset := vOffset + k1
			var x1 int
			if k1 == -d || (k1 != d && v1[k1Offset-1] < v1[k1Offset+1]) {
				x1 = v1[k1Offset+1]
			} else {
				x1 = v1[k1Offset-1] + 1
			}
			y1 := x1 - k1
			for x1 < n && y1 < m && runes1[x1] == runes2[y1] {
				x1++
				y1++
			}
			v1[k1Offset] = x1
			switch {
			case x1 > n:
				// Ran off the right of the graph.
				k1end += 2
			case y1 > m:
				// Ran off the bottom of the graph.
				k1start += 2
			case front:
				k2Offset := vOffset + delta - k1
				if k2Offset >= 0 && k2Offset < vLength && v2[k2Offset] != -1 {
					// Mirror x2 onto top-left coordinate system.
					x2 := n - v2[k2Offset]
					if x1 >= x2 {
						return bisectSplit(runes1, runes2, x1, y1)
					}
				}
			}
		}
		// Walk the reverse path one step.
		for k2 := -d + k2start; k2 <= d-k2end; k2 += 2 {
			k2Offset := vOffset + k2
			var x2 int
			if k2 == -d || (k2 != d && v2[k2Offset-1] < v2[k2Offset+1]) {
				x2 = v2[k2Offset+1]
			} else {
				x2 = v2[k2Offset-1] + 1
			}
			y2 := x2 - k2
			for x2 < n && y2 < m && runes1[n-x2-1] == runes2[m-y2-1] {
				x2++
				y2++
			}
			v2[k2Offset] = x2
			switch {
			case x2 > n:
				k2end += 2
			case y2 > m:
				k2start += 2
			case !front:
				k1Offset := vOffset + delta - k2
				if k1Offset >= 0 && k1Offset < vLength && v1[k1Offset] != -1 {
					x1 := v1[k1Offset]
					y1 := vOffset + x1 - k1Offset
					// Mirror x2 onto top-left coordinate system.
					x2 = n - x2
					if x1 >= x2 {
						return bisectSplit(runes1, runes2, x1, y1)
					}
				}
			}
		}
	}
	// The number of edits equals the number of runes: no commonality at
	// all.
	return []models.TextDiff{
		{Operation: models.DiffDelete, Text: string(runes1)},
		{Operation: models.DiffInsert, Text: string(runes2)},
	}
}

// bisectSplit recurses on the two halves around the middle snake.
func bisectSplit(runes1, runes2 []rune, x, y int) []models.TextDiff {
	diffs := diffMain(runes1[:x], runes2[:y])
	diffsB := diffMain(runes1[x:], runes2[y:])
	return append(diffs, diffsB...)
}

// commonPrefixLength returns the length of the common prefix of two rune
// slices.
func commonPrefixLength(text1, text2 []rune) int {
	n := min(len(text1), len(text2))
	for i := 0; i < n; i++ {
		if text1[i] != text2[i] {
			return i
		}
	}
	return n
}

// commonSuffixLength returns the length of the common suffix of two rune
// slices.
func commonSuffixLength(text1, text2 []rune) int {
	n := min(len(text1), len(text2))
	for i := 1; i <= n; i++ {
		if text1[len(text1)-i] != text2[len(text2)-i] {
			return i - 1
		}
	}
	return n
}

// commonOverlapLength returns the length of the longest suffix of text1
// that is a prefix of text2.
func commonOverlapLength(text1, text2 []rune) int {
	for l := min(len(text1), len(text2)); l > 0; l-- {
		if runesEqual(text1[len(text1)-l:], text2[:l]) {
			return l
		}
	}
	return 0
}

// runesIndexOf returns the rune index of the first occurrence of pattern in
// text, or -1.
func runesIndexOf(text, pattern []rune) int {
	if len(pattern) == 0 {
		return 0
	}
	for i := 0; i+len(pattern) <= len(text); i++ {
		if runesEqual(text[i:i+len(pattern)], pattern) {
			return i
		}
	}
	return -1
}

func runesEqual(text1, text2 []rune) bool {
	if len(text1) != len(text2) {
		return false
	}
	for i, r := range text1 {
		if text2[i] != r {
			return false
		}
	}
	return true
}

func longOf(text1, text2 []rune) []rune {
	if len(text1) > len(text2) {
		return text1
	}
	return text2
}

func shortOf(text1, text2 []rune) []rune {
	if len(text1) > len(text2) {
		return text2
	}
	return text1
}
