package ocr

import "hdstats/pkg/statparse"

// scoreTranscript ranks an OCR variant by how much of the stat table it
// yields: one point per recovered stat, one more for a player name. Ranking
// on the parse itself means a pass that garbles labels loses to one that
// keeps them, whatever the raw text looks like.
func scoreTranscript(text string) int {
	res := statparse.Parse(text)
	score := len(res.Stats)
	if res.PlayerName != "" {
		score++
	}
	return score
}
