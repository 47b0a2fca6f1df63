package statparse

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// First run of digits (comma groups allowed) that is not glued to the
	// tail of a letter/digit token, so "v3" style artifacts don't shadow a
	// clean number later in the line.
	numberRE = regexp.MustCompile(`(?:^|[^A-Za-z0-9])([0-9]{1,3}(?:,[0-9]{3})+|[0-9]+)`)
	timeRE   = regexp.MustCompile(`([0-9]+):([0-9]{2}):([0-9]{2})`)
)

// PreprocessLine strips per-line rendering noise from an OCR transcription
// line. The game UI draws vertical rules that Tesseract reads as pipes on the
// left of the actual text, so everything up to the last pipe is discarded. A
// trailing pipe (right edge of the stat box) is removed first so it doesn't
// count. Career-page rows sometimes render a bracket instead; a bracket in the
// first half of the line is treated the same way.
func PreprocessLine(line string) string {
	s := strings.TrimSpace(line)
	s = strings.TrimSpace(strings.TrimRight(s, "|"))
	if i := strings.LastIndex(s, "|"); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	if i := strings.Index(s, "]"); i >= 0 && i < len(s)/2 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}

// ExtractNumber pulls the first plausible integer out of noisy text, e.g.
// "~~ 349,050 #2 #32" -> 349050. Comma group separators are stripped.
// Returns false when the text holds no digit run.
func ExtractNumber(text string) (int64, bool) {
	m := numberRE.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	digits := strings.ReplaceAll(m[1], ",", "")
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ExtractTime pulls the first H:MM:SS substring out of noisy text and returns
// it as total seconds. Hours carry any number of digits (in-mission time goes
// well past 999 hours); minutes and seconds are exactly two.
func ExtractTime(text string) (int64, bool) {
	m := timeRE.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	h, err1 := strconv.ParseInt(m[1], 10, 64)
	min, err2 := strconv.ParseInt(m[2], 10, 64)
	sec, err3 := strconv.ParseInt(m[3], 10, 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, false
	}
	return h*3600 + min*60 + sec, true
}
