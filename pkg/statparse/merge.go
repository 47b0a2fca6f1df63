package statparse

// Merge reduces per-screenshot results into one canonical result. Input order
// carries caller-assigned priority: for each stat the strictly highest
// confidence wins, and among results tied at that confidence the earliest
// input wins. The first non-empty player name wins. An empty input slice
// yields an empty result; a single input is returned unchanged.
func Merge(results []ParseResult) ParseResult {
	if len(results) == 1 {
		return results[0]
	}
	out := ParseResult{
		Stats:      make(map[StatKey]int64),
		Confidence: make(map[StatKey]Confidence),
	}
	for _, key := range AllStatKeys {
		best := -1
		var bestConf Confidence
		for i, r := range results {
			conf, ok := r.Confidence[key]
			if !ok {
				continue
			}
			if best < 0 || conf > bestConf {
				best = i
				bestConf = conf
			}
		}
		if best >= 0 {
			out.Stats[key] = results[best].Stats[key]
			out.Confidence[key] = bestConf
		}
	}
	for _, r := range results {
		if r.PlayerName != "" {
			out.PlayerName = r.PlayerName
			break
		}
	}
	return out
}
