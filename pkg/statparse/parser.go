package statparse

import (
	"regexp"
	"strings"
)

// Confidence ranks how a stat value was located. Label always outranks
// position when results are merged.
type Confidence int

const (
	// ConfidencePosition marks a value read at a fixed line offset from the
	// table anchor because the label itself was unrecognizable.
	ConfidencePosition Confidence = iota + 1
	// ConfidenceLabel marks a value found directly after its recognized label.
	ConfidenceLabel
)

func (c Confidence) String() string {
	if c == ConfidenceLabel {
		return "label"
	}
	return "position"
}

// ParseResult holds everything recovered from one screenshot transcription.
// Stats and Confidence always carry identical key sets: a stat is never
// recorded without the confidence it was found at. Both maps are partial;
// absence means the stat was not recognized, which is not an error.
type ParseResult struct {
	Stats      map[StatKey]int64
	Confidence map[StatKey]Confidence
	PlayerName string
}

var (
	careerHeaderRE = regexp.MustCompile(`(?i)car[e3][e3]r`)
	leadingNameRE  = regexp.MustCompile(`^([A-Za-z0-9-]{2,})`)
	// Header words that precede or replace the player name on the card:
	// rank titles, level and clan tags. A line matching any of these is not
	// a name line.
	rankWordRE = regexp.MustCompile(`(?i)\b(rank|level|lvl|clan|cadet|captain|sergeant|commander|general|admiral|marshal|citizen|hero|helldiver)\b`)
)

// Parse extracts stats and the player name from one raw OCR transcription.
// Per stat the strategies run in strict priority: label on cleaned lines,
// label on raw lines, then positional fallback from the table anchor. The raw
// set is kept because preprocessing is destructive on career-page rows where
// the pipe artifact lands on the wrong side of the label.
func Parse(text string) ParseResult {
	raw := splitLines(text)
	clean := make([]string, len(raw))
	for i, l := range raw {
		clean[i] = PreprocessLine(l)
	}

	res := ParseResult{
		Stats:      make(map[StatKey]int64),
		Confidence: make(map[StatKey]Confidence),
	}
	res.PlayerName = extractPlayerName(raw, clean)

	anchor := findAnchor(clean)
	for _, p := range statPatterns {
		if v, ok := matchLabel(p, clean); ok {
			res.Stats[p.Key] = v
			res.Confidence[p.Key] = ConfidenceLabel
			continue
		}
		if v, ok := matchLabel(p, raw); ok {
			res.Stats[p.Key] = v
			res.Confidence[p.Key] = ConfidenceLabel
			continue
		}
		if anchor < 0 || p.Offset == noOffset {
			continue
		}
		if idx := anchor + p.Offset; idx < len(clean) {
			if v, ok := extractValue(p, clean[idx]); ok {
				res.Stats[p.Key] = v
				res.Confidence[p.Key] = ConfidencePosition
			}
		}
	}
	return res
}

// findAnchor returns the index of the first cleaned line matching the first
// table entry's label, or -1. Without the anchor no positional fallback runs.
func findAnchor(lines []string) int {
	for i, line := range lines {
		if statPatterns[0].Label.MatchString(line) {
			return i
		}
	}
	return -1
}

// matchLabel scans lines in order for the entry's label and extracts the value
// from the text after the match. The first label hit is the answer for this
// key even when the value beside it is unreadable; later duplicates are not
// consulted.
func matchLabel(p StatPattern, lines []string) (int64, bool) {
	for _, line := range lines {
		loc := p.Label.FindStringIndex(line)
		if loc == nil {
			continue
		}
		return extractValue(p, line[loc[1]:])
	}
	return 0, false
}

func extractValue(p StatPattern, text string) (int64, bool) {
	if p.Duration {
		return ExtractTime(text)
	}
	return ExtractNumber(text)
}

// extractPlayerName tries the career-page heuristic first (name sits on the
// line above the CAREER header), then the player-card heuristic (name is the
// first token of the first top line that isn't a rank/level/clan header).
// Returns "" when neither layout yields a candidate.
func extractPlayerName(raw, clean []string) string {
	limit := min(len(raw), 8)
	for i := 1; i < limit; i++ {
		if !careerHeaderRE.MatchString(raw[i]) {
			continue
		}
		if m := leadingNameRE.FindStringSubmatch(raw[i-1]); m != nil {
			return m[1]
		}
	}

	limit = min(len(clean), 5)
	for i := 0; i < limit; i++ {
		line := clean[i]
		if line == "" || rankWordRE.MatchString(line) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		name := sanitizeNameToken(fields[0])
		if len(name) >= 2 {
			return name
		}
		// Only the first non-header line is a name candidate on the card.
		break
	}
	return ""
}

// sanitizeNameToken drops every character Tesseract could not have read out of
// a handle (names are alphanumeric plus hyphen/underscore).
func sanitizeNameToken(tok string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return -1
	}, tok)
}

// splitLines returns the non-empty trimmed lines of a transcription.
func splitLines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}
