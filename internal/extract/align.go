package extract

import (
	"sort"
	"strings"
)

// AlignExtractions maps each extraction's text back onto the source text.
// The search cursor advances past each match so repeated spans align to
// successive occurrences. Exact matches report match_exact; case- or
// whitespace-relaxed matches report match_fuzzy. An extraction that cannot
// be found keeps a null interval and no alignment status.
func AlignExtractions(text string, extractions []Extraction) []AlignedExtraction {
	a := newAligner(text)
	aligned := make([]AlignedExtraction, len(extractions))
	cursor := 0

	for i, x := range extractions {
		ax := AlignedExtraction{
			ExtractionClass: x.ExtractionClass,
			ExtractionText:  x.ExtractionText,
			Attributes:      x.Attributes,
			Description:     x.Description,
			ExtractionIndex: i + 1,
			GroupIndex:      i,
		}
		if ax.Attributes == nil {
			ax.Attributes = map[string]any{}
		}

		if interval, status := a.locate(x.ExtractionText, cursor); interval != nil {
			ax.CharInterval = interval
			ax.AlignmentStatus = status
			cursor = interval.EndPos
		}

		aligned[i] = ax
	}
	return aligned
}

// aligner holds the source text together with a whitespace-collapsed
// projection of it, so spans that differ from the source only in whitespace
// still map back to offsets in the original text.
type aligner struct {
	text string
	// norm is text with every whitespace run collapsed to a single space.
	norm string
	// offs[i] is the original index of norm byte i.
	offs []int
}

func newAligner(text string) *aligner {
	var b strings.Builder
	b.Grow(len(text))
	offs := make([]int, 0, len(text))

	inSpace := false
	for i := 0; i < len(text); i++ {
		if isSpace(text[i]) {
			if !inSpace {
				b.WriteByte(' ')
				offs = append(offs, i)
			}
			inSpace = true
			continue
		}
		b.WriteByte(text[i])
		offs = append(offs, i)
		inSpace = false
	}
	return &aligner{text: text, norm: b.String(), offs: offs}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// collapseSpaces trims a span and collapses its internal whitespace runs to
// single spaces.
func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for i := 0; i < len(s); i++ {
		if isSpace(s[i]) {
			inSpace = true
			continue
		}
		if inSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(s[i])
		inSpace = false
	}
	return b.String()
}

// locate finds needle in the source text, preferring matches at or after
// the cursor. Relaxations are tried in order: exact, case, whitespace,
// then case and whitespace together.
func (a *aligner) locate(needle string, cursor int) (*CharInterval, string) {
	if needle == "" {
		return nil, ""
	}

	if idx := indexFrom(a.text, needle, cursor); idx >= 0 {
		return &CharInterval{StartPos: idx, EndPos: idx + len(needle)}, AlignmentExact
	}
	if interval := caseRelaxed(a.text, needle, cursor); interval != nil {
		return interval, AlignmentFuzzy
	}
	if interval := a.whitespaceRelaxed(needle, cursor); interval != nil {
		return interval, AlignmentFuzzy
	}
	return nil, ""
}

// caseRelaxed searches with both sides lowercased. Offsets remain valid
// because ToLower preserves byte length for ASCII, which dominates
// extraction spans; non-ASCII case pairs that shift lengths simply fail to
// match.
func caseRelaxed(text, needle string, cursor int) *CharInterval {
	lowerText := strings.ToLower(text)
	lowerNeedle := strings.ToLower(needle)
	if len(lowerText) != len(text) || len(lowerNeedle) != len(needle) {
		return nil
	}
	if idx := indexFrom(lowerText, lowerNeedle, cursor); idx >= 0 {
		return &CharInterval{StartPos: idx, EndPos: idx + len(needle)}
	}
	return nil
}

// whitespaceRelaxed searches the collapsed projection and maps the match
// back into original offsets. The needle is trimmed before matching, so a
// hit always starts and ends on a non-space byte.
func (a *aligner) whitespaceRelaxed(needle string, cursor int) *CharInterval {
	normNeedle := collapseSpaces(needle)
	if normNeedle == "" {
		return nil
	}

	normCursor := sort.SearchInts(a.offs, cursor)
	idx := indexFrom(a.norm, normNeedle, normCursor)
	if idx < 0 {
		lowerNorm := strings.ToLower(a.norm)
		lowerNeedle := strings.ToLower(normNeedle)
		if len(lowerNorm) == len(a.norm) && len(lowerNeedle) == len(normNeedle) {
			idx = indexFrom(lowerNorm, lowerNeedle, normCursor)
		}
	}
	if idx < 0 {
		return nil
	}

	return &CharInterval{
		StartPos: a.offs[idx],
		EndPos:   a.offs[idx+len(normNeedle)-1] + 1,
	}
}

// indexFrom searches from the cursor first, then wraps to the start.
func indexFrom(text, needle string, cursor int) int {
	if cursor < len(text) {
		if idx := strings.Index(text[cursor:], needle); idx >= 0 {
			return cursor + idx
		}
	}
	return strings.Index(text, needle)
}
