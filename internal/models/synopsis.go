package models

// Synopsis is the two-sided annotated rendering of one edit script. OldHTML
// carries the old text with deletions highlighted, NewHTML the new text with
// insertions highlighted. Stripping the annotation tags and unescaping
// reconstructs the respective input text exactly.
type Synopsis struct {
	OldHTML string `json:"old_html"`
	NewHTML string `json:"new_html"`
}

// SynopsisResult pairs a rendered synopsis with the statistics of the edit
// script it was rendered from.
type SynopsisResult struct {
	Synopsis Synopsis  `json:"synopsis"`
	Stats    DiffStats `json:"stats"`
}
