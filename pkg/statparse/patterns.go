package statparse

import "regexp"

// noOffset marks stats that only exist on the career page, where no player-card
// positional fallback is possible.
const noOffset = -1

// StatPattern is one row of the extraction table: a noise-tolerant label
// regexp, the line offset from the table anchor on the player card, and
// whether the value is an H:MM:SS duration.
type StatPattern struct {
	Key      StatKey
	Label    *regexp.Regexp
	Offset   int
	Duration bool
}

// statPatterns is ordered the way the rows appear on the player card; the
// first entry doubles as the table anchor (ENEMY KILLS is the most reliably
// recognized label on both layouts). The character classes absorb the common
// Tesseract confusions seen in fixtures (O/0, I/l/1, E/3). Each label must
// match its own stat line and no other; patterns_test.go checks that.
var statPatterns = []StatPattern{
	{StatEnemyKills, regexp.MustCompile(`(?i)en[e3]my\s*k[il1]`), 0, false},
	{StatTerminidKills, regexp.MustCompile(`(?i)term[il1]n`), 1, false},
	{StatAutomatonKills, regexp.MustCompile(`(?i)aut[o0]mat`), 2, false},
	{StatFriendlyKills, regexp.MustCompile(`(?i)fr[il1][e3]nd`), 3, false},
	{StatGrenadeKills, regexp.MustCompile(`(?i)gr[e3]nad[e3]`), 4, false},
	{StatMeleeKills, regexp.MustCompile(`(?i)m[e3][l1][e3][e3]`), 5, false},
	{StatEagleKills, regexp.MustCompile(`(?i)eag[l1][e3]\s*k[il1]`), 6, false},
	{StatDeaths, regexp.MustCompile(`(?i)d[e3]aths?`), 7, false},
	{StatShotsFired, regexp.MustCompile(`(?i)sh[o0]ts?\s*f[il1]r`), 8, false},
	{StatShotsHit, regexp.MustCompile(`(?i)sh[o0]ts?\s*h[il1]t`), 9, false},
	{StatOrbitalsUsed, regexp.MustCompile(`(?i)[o0]rb[il1]tals?`), 10, false},
	{StatDefensiveStratagemsUsed, regexp.MustCompile(`(?i)d[e3]f[e3]ns`), 11, false},
	{StatEagleStratagemsUsed, regexp.MustCompile(`(?i)eag[l1][e3]\s*strat`), 12, false},
	{StatSupplyStratagemsUsed, regexp.MustCompile(`(?i)supp[l1]y`), 13, false},
	{StatReinforceStratagemsUsed, regexp.MustCompile(`(?i)r[e3][il1]nf[o0]rc`), noOffset, false},
	{StatTotalStratagemsUsed, regexp.MustCompile(`(?i)t[o0]tal\s*strat`), noOffset, false},
	{StatSuccessfulExtractions, regexp.MustCompile(`(?i)[e3]xtract`), 14, false},
	{StatObjectivesCompleted, regexp.MustCompile(`(?i)[o0]bj[e3]ct[il1]v`), 15, false},
	{StatMissionsPlayed, regexp.MustCompile(`(?i)m[il1]ss[il1][o0]ns?\s*p[l1]ay`), 16, false},
	{StatMissionsWon, regexp.MustCompile(`(?i)m[il1]ss[il1][o0]ns?\s*w[o0]n`), 17, false},
	{StatMissionTime, regexp.MustCompile(`(?i)m[il1]ss[il1][o0]n\s*t[il1]m[e3]`), 18, true},
	{StatSamplesCollected, regexp.MustCompile(`(?i)samp[l1][e3]s?`), 19, false},
	{StatTotalXP, regexp.MustCompile(`(?i)t[o0]tal\s*xp`), 20, false},
}

// Patterns returns the static extraction table. Callers must treat it as
// read-only.
func Patterns() []StatPattern {
	return statPatterns
}
