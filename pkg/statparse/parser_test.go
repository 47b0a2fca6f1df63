package statparse

import "testing"

// playerCardFixture is a transcription of the in-game player card. The left
// rule of the stat box comes through as pipes, the rank header sits above the
// table, and the SHOTS HIT label is garbled beyond recognition so only the
// positional fallback can recover it.
const playerCardFixture = `
DUST-MAKER %4
l0 | SPACE CADET
;; | ENEMY KILLS 48,731
TERMINID KILLS 41,962 |
AUTOMATON KILLS 6,769
FRIENDLY KILLS 61
GRENADE KILLS 2,672
MELEE KILLS 183
EAGLE KILLS 3,511
DEATHS 480
SHOTS FIRED 286,375
SHO+S Hl+ 28,494,642
ORBITALS USED 1,226
DEFENSIVE STRATAGEMS USED 634
EAGLE STRATAGEMS USED 1,738
SUPPLY STRATAGEMS USED 1,310
SUCCESSFUL EXTRACTIONS 902
OBJECTIVES COMPLETED 3,812
MISSIONS PLAYED 1,041
MISSIONS WON 939
IN-MISSION TIME 1093:15:44
SAMPLES COLLECTED 41,307
TOTAL XP 5,073,982 al v3 |
`

// careerPageFixture is a transcription of the career page: different row
// order, a CAREER header with the handle on the line above it, the two
// stratagem totals the card doesn't show, and one row (SUPPLY) where the pipe
// artifact landed on the wrong side of the label so preprocessing destroys it
// and only the raw-line fallback can see it.
const careerPageFixture = `
SES DAWN OF WAR ~
BIG-EAGLE-1
CAR33R
ENEMY KILLS 50,114 |
MISSIONS PLAYED 1,058
MISSIONS WON 951
IN-MISSION TIME 1101:02:13
SAMPLES COLLECTED 41,590
TOTAL XP 5,121,773
ORBITALS USED 1,240
DEFENSIVE STRATAGEMS USED 641
EAGLE STRATAGEMS USED 1,755
SUPPLY STRATAGEMS USED | 1,322
x] REINFORCE STRATAGEMS USED 1,891
TOTAL STRATAGEMS USED 5,609
SUCCESSFUL EXTRACTIONS 911
OBJECTIVES COMPLETED 3,855
TERMINID KILLS 42,633
AUTOMATON KILLS 7,481
FRIENDLY KILLS 63
GRENADE KILLS 2,701
MELEE KILLS 187
EAGLE KILLS 3,570
DEATHS 486
SHOTS FIRED 289,110
SHOTS HIT 28,760,915
`

var playerCardWant = map[StatKey]int64{
	StatEnemyKills:              48731,
	StatTerminidKills:           41962,
	StatAutomatonKills:          6769,
	StatFriendlyKills:           61,
	StatGrenadeKills:            2672,
	StatMeleeKills:              183,
	StatEagleKills:              3511,
	StatDeaths:                  480,
	StatShotsFired:              286375,
	StatShotsHit:                28494642,
	StatOrbitalsUsed:            1226,
	StatDefensiveStratagemsUsed: 634,
	StatEagleStratagemsUsed:     1738,
	StatSupplyStratagemsUsed:    1310,
	StatSuccessfulExtractions:   902,
	StatObjectivesCompleted:     3812,
	StatMissionsPlayed:          1041,
	StatMissionsWon:             939,
	StatMissionTime:             1093*3600 + 15*60 + 44,
	StatSamplesCollected:        41307,
	StatTotalXP:                 5073982,
}

func checkKeySetInvariant(t *testing.T, res ParseResult) {
	t.Helper()
	if len(res.Stats) != len(res.Confidence) {
		t.Fatalf("value/confidence key sets differ in size: %d vs %d", len(res.Stats), len(res.Confidence))
	}
	for k := range res.Stats {
		if _, ok := res.Confidence[k]; !ok {
			t.Fatalf("stat %s has a value but no confidence", k)
		}
	}
}

func TestParsePlayerCard(t *testing.T) {
	res := Parse(playerCardFixture)
	checkKeySetInvariant(t, res)

	if res.PlayerName != "DUST-MAKER" {
		t.Fatalf("player name = %q, want DUST-MAKER", res.PlayerName)
	}
	if len(res.Stats) != len(playerCardWant) {
		t.Fatalf("recovered %d stats, want %d: %v", len(res.Stats), len(playerCardWant), res.Stats)
	}
	for k, want := range playerCardWant {
		got, ok := res.Stats[k]
		if !ok {
			t.Fatalf("stat %s missing from result", k)
		}
		if got != want {
			t.Fatalf("stat %s = %d, want %d", k, got, want)
		}
	}
	// The garbled SHOTS HIT row is only reachable positionally.
	if res.Confidence[StatShotsHit] != ConfidencePosition {
		t.Fatalf("shots_hit confidence = %v, want position", res.Confidence[StatShotsHit])
	}
	labelCount := 0
	for _, c := range res.Confidence {
		if c == ConfidenceLabel {
			labelCount++
		}
	}
	if labelCount < 20 {
		t.Fatalf("only %d stats at label confidence, want >= 20", labelCount)
	}
	// The two career-only stratagem totals can never come from the card.
	if _, ok := res.Stats[StatReinforceStratagemsUsed]; ok {
		t.Fatalf("reinforce stratagems should not appear on the player card")
	}
	if _, ok := res.Stats[StatTotalStratagemsUsed]; ok {
		t.Fatalf("total stratagems should not appear on the player card")
	}
}

func TestParseCareerPage(t *testing.T) {
	res := Parse(careerPageFixture)
	checkKeySetInvariant(t, res)

	if res.PlayerName != "BIG-EAGLE-1" {
		t.Fatalf("player name = %q, want BIG-EAGLE-1", res.PlayerName)
	}
	if len(res.Stats) != len(AllStatKeys) {
		t.Fatalf("recovered %d stats, want %d", len(res.Stats), len(AllStatKeys))
	}
	// Stats unique to the career page come back at label confidence.
	if v := res.Stats[StatReinforceStratagemsUsed]; v != 1891 {
		t.Fatalf("reinforce stratagems = %d, want 1891", v)
	}
	if v := res.Stats[StatTotalStratagemsUsed]; v != 5609 {
		t.Fatalf("total stratagems = %d, want 5609", v)
	}
	if res.Confidence[StatReinforceStratagemsUsed] != ConfidenceLabel ||
		res.Confidence[StatTotalStratagemsUsed] != ConfidenceLabel {
		t.Fatalf("career-only stats should be label confidence")
	}
	// The SUPPLY row's label only survives on the raw line (the pipe landed
	// left of the value, so the cleaned line is just "1,322").
	if v := res.Stats[StatSupplyStratagemsUsed]; v != 1322 {
		t.Fatalf("supply stratagems = %d, want 1322", v)
	}
	if res.Confidence[StatSupplyStratagemsUsed] != ConfidenceLabel {
		t.Fatalf("raw-line fallback should still record label confidence")
	}
	for _, pat := range statPatterns {
		if pat.Key != StatSupplyStratagemsUsed {
			continue
		}
		for _, line := range splitLines(careerPageFixture) {
			if pat.Label.MatchString(PreprocessLine(line)) {
				t.Fatalf("fixture broken: supply label survived preprocessing on %q", line)
			}
		}
	}
}

func TestParseUnrecognizedInput(t *testing.T) {
	for _, text := range []string{"", "completely unrelated\ntext with 123 numbers\n"} {
		res := Parse(text)
		checkKeySetInvariant(t, res)
		if len(res.Stats) != 0 {
			t.Fatalf("expected empty result for %q, got %v", text, res.Stats)
		}
	}
}

func TestParseWithoutAnchorSkipsPositional(t *testing.T) {
	// No ENEMY KILLS line anywhere: the garbled SHOTS HIT row must stay
	// unrecovered because positional fallback has no anchor.
	res := Parse("DEATHS 480\nSHO+S Hl+ 28,494,642\n")
	checkKeySetInvariant(t, res)
	if _, ok := res.Stats[StatShotsHit]; ok {
		t.Fatalf("positional fallback ran without an anchor")
	}
	if v := res.Stats[StatDeaths]; v != 480 {
		t.Fatalf("deaths = %d, want 480", v)
	}
}

func TestLabelMatchWithGarbledValueHaltsScan(t *testing.T) {
	// The first DEATHS line is judged to be the answer even though its value
	// is unreadable; the intact duplicate further down is not consulted.
	res := Parse("DEATHS ---\nDEATHS 480\n")
	checkKeySetInvariant(t, res)
	if _, ok := res.Stats[StatDeaths]; ok {
		t.Fatalf("scan should halt at the first label match, got %v", res.Stats)
	}
}
