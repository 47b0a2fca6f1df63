package statparse

// StatKey identifies one of the fixed career statistics tracked per player.
// The set is closed; new keys only appear when the game adds a stat row and
// the pattern table is extended by hand.
type StatKey string

const (
	StatEnemyKills              StatKey = "enemy_kills"
	StatTerminidKills           StatKey = "terminid_kills"
	StatAutomatonKills          StatKey = "automaton_kills"
	StatFriendlyKills           StatKey = "friendly_kills"
	StatGrenadeKills            StatKey = "grenade_kills"
	StatMeleeKills              StatKey = "melee_kills"
	StatEagleKills              StatKey = "eagle_kills"
	StatDeaths                  StatKey = "deaths"
	StatShotsFired              StatKey = "shots_fired"
	StatShotsHit                StatKey = "shots_hit"
	StatOrbitalsUsed            StatKey = "orbitals_used"
	StatDefensiveStratagemsUsed StatKey = "defensive_stratagems_used"
	StatEagleStratagemsUsed     StatKey = "eagle_stratagems_used"
	StatSupplyStratagemsUsed    StatKey = "supply_stratagems_used"
	StatReinforceStratagemsUsed StatKey = "reinforce_stratagems_used"
	StatTotalStratagemsUsed     StatKey = "total_stratagems_used"
	StatSuccessfulExtractions   StatKey = "successful_extractions"
	StatObjectivesCompleted     StatKey = "objectives_completed"
	StatMissionsPlayed          StatKey = "missions_played"
	StatMissionsWon             StatKey = "missions_won"
	// StatMissionTime is stored as total seconds in-mission.
	StatMissionTime      StatKey = "mission_time"
	StatSamplesCollected StatKey = "samples_collected"
	StatTotalXP          StatKey = "total_xp"
)

// AllStatKeys lists every tracked stat in pattern-table order.
var AllStatKeys = []StatKey{
	StatEnemyKills,
	StatTerminidKills,
	StatAutomatonKills,
	StatFriendlyKills,
	StatGrenadeKills,
	StatMeleeKills,
	StatEagleKills,
	StatDeaths,
	StatShotsFired,
	StatShotsHit,
	StatOrbitalsUsed,
	StatDefensiveStratagemsUsed,
	StatEagleStratagemsUsed,
	StatSupplyStratagemsUsed,
	StatReinforceStratagemsUsed,
	StatTotalStratagemsUsed,
	StatSuccessfulExtractions,
	StatObjectivesCompleted,
	StatMissionsPlayed,
	StatMissionsWon,
	StatMissionTime,
	StatSamplesCollected,
	StatTotalXP,
}
