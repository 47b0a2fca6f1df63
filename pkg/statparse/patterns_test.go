package statparse

import "testing"

// canonicalLabels holds each stat's label exactly as the game renders it.
// Every pattern must match its own line and nobody else's; two patterns
// claiming the same line would make extraction order-dependent in a way the
// table order can't express.
var canonicalLabels = map[StatKey]string{
	StatEnemyKills:              "ENEMY KILLS 100",
	StatTerminidKills:           "TERMINID KILLS 100",
	StatAutomatonKills:          "AUTOMATON KILLS 100",
	StatFriendlyKills:           "FRIENDLY KILLS 100",
	StatGrenadeKills:            "GRENADE KILLS 100",
	StatMeleeKills:              "MELEE KILLS 100",
	StatEagleKills:              "EAGLE KILLS 100",
	StatDeaths:                  "DEATHS 100",
	StatShotsFired:              "SHOTS FIRED 100",
	StatShotsHit:                "SHOTS HIT 100",
	StatOrbitalsUsed:            "ORBITALS USED 100",
	StatDefensiveStratagemsUsed: "DEFENSIVE STRATAGEMS USED 100",
	StatEagleStratagemsUsed:     "EAGLE STRATAGEMS USED 100",
	StatSupplyStratagemsUsed:    "SUPPLY STRATAGEMS USED 100",
	StatReinforceStratagemsUsed: "REINFORCE STRATAGEMS USED 100",
	StatTotalStratagemsUsed:     "TOTAL STRATAGEMS USED 100",
	StatSuccessfulExtractions:   "SUCCESSFUL EXTRACTIONS 100",
	StatObjectivesCompleted:     "OBJECTIVES COMPLETED 100",
	StatMissionsPlayed:          "MISSIONS PLAYED 100",
	StatMissionsWon:             "MISSIONS WON 100",
	StatMissionTime:             "IN-MISSION TIME 1:00:00",
	StatSamplesCollected:        "SAMPLES COLLECTED 100",
	StatTotalXP:                 "TOTAL XP 100",
}

func TestPatternTableCoversEveryKey(t *testing.T) {
	if len(statPatterns) != len(AllStatKeys) {
		t.Fatalf("pattern table has %d rows, want %d", len(statPatterns), len(AllStatKeys))
	}
	seen := map[StatKey]bool{}
	for _, p := range statPatterns {
		if seen[p.Key] {
			t.Fatalf("duplicate pattern row for %s", p.Key)
		}
		seen[p.Key] = true
	}
	for _, k := range AllStatKeys {
		if !seen[k] {
			t.Fatalf("no pattern row for %s", k)
		}
	}
}

func TestPatternsMatchOwnLabelOnly(t *testing.T) {
	for key, line := range canonicalLabels {
		for _, p := range statPatterns {
			matched := p.Label.MatchString(line)
			if p.Key == key && !matched {
				t.Fatalf("pattern for %s does not match its own label %q", key, line)
			}
			if p.Key != key && matched {
				t.Fatalf("pattern for %s also matches %s's label %q", p.Key, key, line)
			}
		}
	}
}

func TestCareerOnlyStatsHaveNoOffset(t *testing.T) {
	for _, p := range statPatterns {
		careerOnly := p.Key == StatReinforceStratagemsUsed || p.Key == StatTotalStratagemsUsed
		if careerOnly && p.Offset != noOffset {
			t.Fatalf("%s exists only on the career page but carries offset %d", p.Key, p.Offset)
		}
		if !careerOnly && p.Offset < 0 {
			t.Fatalf("%s should have a player-card offset", p.Key)
		}
	}
}

func TestAnchorIsFirstTableEntry(t *testing.T) {
	if statPatterns[0].Key != StatEnemyKills || statPatterns[0].Offset != 0 {
		t.Fatalf("anchor row must be enemy kills at offset 0, got %s/%d",
			statPatterns[0].Key, statPatterns[0].Offset)
	}
}
