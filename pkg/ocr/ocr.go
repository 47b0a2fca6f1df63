package ocr

import (
	"fmt"
	"log"
	"strings"
)

// ExtractText runs the OCR passes over a stats screenshot and returns the
// transcription variant that recovers the most stat rows. Newlines are
// preserved; the stat parser works line by line.
func ExtractText(path string) (string, error) {
	variants, err := runOCRPasses(path)
	if err != nil {
		return "", fmt.Errorf("ocr passes: %w", err)
	}

	best := ""
	bestScore := -1
	for _, v := range variants {
		s := scoreTranscript(v)
		// Same stat coverage: keep the longer text, it tends to carry the
		// intact name/header lines.
		if s > bestScore || (s == bestScore && len(v) > len(best)) {
			best = v
			bestScore = s
		}
	}
	if strings.TrimSpace(best) == "" {
		return "", ErrNoText
	}
	log.Printf("OCR chose variant score=%d len=%d snippet=%q", bestScore, len(best), snippet(best, 120))
	return best, nil
}
