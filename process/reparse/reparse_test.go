package reparse

import (
	"testing"

	"hdstats/models"
	"hdstats/pkg/statparse"
)

func TestCountNonZero(t *testing.T) {
	if n := countNonZero(models.StatSnapshot{}); n != 0 {
		t.Fatalf("empty snapshot should count 0, got %d", n)
	}
	snap := models.NewStatSnapshot(1, statparse.ParseResult{
		Stats: map[statparse.StatKey]int64{
			statparse.StatDeaths:      480,
			statparse.StatEnemyKills:  48731,
			statparse.StatMissionTime: 3935744,
		},
	})
	if n := countNonZero(snap); n != 3 {
		t.Fatalf("expected 3 populated stats, got %d", n)
	}
}
