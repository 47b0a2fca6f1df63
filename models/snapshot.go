package models

import (
	"time"

	"hdstats/pkg/statparse"
)

// StatSnapshot is one reconciled career record for a profile. Unlike the
// parser's partial maps this row is total: every stat column is present, and
// stats the merge couldn't recover are stored as zero. MissionTime is total
// seconds.
type StatSnapshot struct {
	ID         uint `gorm:"primaryKey"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ProfileID  uint    `gorm:"index;not null"`
	Profile    Profile `gorm:"foreignKey:ProfileID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	PlayerName string  `gorm:"size:64"`

	EnemyKills              int64 `gorm:"not null;default:0"`
	TerminidKills           int64 `gorm:"not null;default:0"`
	AutomatonKills          int64 `gorm:"not null;default:0"`
	FriendlyKills           int64 `gorm:"not null;default:0"`
	GrenadeKills            int64 `gorm:"not null;default:0"`
	MeleeKills              int64 `gorm:"not null;default:0"`
	EagleKills              int64 `gorm:"not null;default:0"`
	Deaths                  int64 `gorm:"not null;default:0"`
	ShotsFired              int64 `gorm:"not null;default:0"`
	ShotsHit                int64 `gorm:"not null;default:0"`
	OrbitalsUsed            int64 `gorm:"not null;default:0"`
	DefensiveStratagemsUsed int64 `gorm:"not null;default:0"`
	EagleStratagemsUsed     int64 `gorm:"not null;default:0"`
	SupplyStratagemsUsed    int64 `gorm:"not null;default:0"`
	ReinforceStratagemsUsed int64 `gorm:"not null;default:0"`
	TotalStratagemsUsed     int64 `gorm:"not null;default:0"`
	SuccessfulExtractions   int64 `gorm:"not null;default:0"`
	ObjectivesCompleted     int64 `gorm:"not null;default:0"`
	MissionsPlayed          int64 `gorm:"not null;default:0"`
	MissionsWon             int64 `gorm:"not null;default:0"`
	MissionTime             int64 `gorm:"not null;default:0"`
	SamplesCollected        int64 `gorm:"not null;default:0"`
	TotalXP                 int64 `gorm:"column:total_xp;not null;default:0"`
}

// NewStatSnapshot maps a merged ParseResult onto the total persistence
// record. The parser's maps are partial; this row is not, so every stat the
// merge could not recover is stored as zero.
func NewStatSnapshot(profileID uint, res statparse.ParseResult) StatSnapshot {
	s := res.Stats // missing key reads as 0
	return StatSnapshot{
		ProfileID:               profileID,
		PlayerName:              res.PlayerName,
		EnemyKills:              s[statparse.StatEnemyKills],
		TerminidKills:           s[statparse.StatTerminidKills],
		AutomatonKills:          s[statparse.StatAutomatonKills],
		FriendlyKills:           s[statparse.StatFriendlyKills],
		GrenadeKills:            s[statparse.StatGrenadeKills],
		MeleeKills:              s[statparse.StatMeleeKills],
		EagleKills:              s[statparse.StatEagleKills],
		Deaths:                  s[statparse.StatDeaths],
		ShotsFired:              s[statparse.StatShotsFired],
		ShotsHit:                s[statparse.StatShotsHit],
		OrbitalsUsed:            s[statparse.StatOrbitalsUsed],
		DefensiveStratagemsUsed: s[statparse.StatDefensiveStratagemsUsed],
		EagleStratagemsUsed:     s[statparse.StatEagleStratagemsUsed],
		SupplyStratagemsUsed:    s[statparse.StatSupplyStratagemsUsed],
		ReinforceStratagemsUsed: s[statparse.StatReinforceStratagemsUsed],
		TotalStratagemsUsed:     s[statparse.StatTotalStratagemsUsed],
		SuccessfulExtractions:   s[statparse.StatSuccessfulExtractions],
		ObjectivesCompleted:     s[statparse.StatObjectivesCompleted],
		MissionsPlayed:          s[statparse.StatMissionsPlayed],
		MissionsWon:             s[statparse.StatMissionsWon],
		MissionTime:             s[statparse.StatMissionTime],
		SamplesCollected:        s[statparse.StatSamplesCollected],
		TotalXP:                 s[statparse.StatTotalXP],
	}
}

// DetectLayout guesses which screen a parse came from. The two stratagem
// totals only exist on the career page; anything else that recovered stats is
// treated as a player card.
func DetectLayout(res statparse.ParseResult) string {
	if _, ok := res.Stats[statparse.StatTotalStratagemsUsed]; ok {
		return "career_page"
	}
	if _, ok := res.Stats[statparse.StatReinforceStratagemsUsed]; ok {
		return "career_page"
	}
	if len(res.Stats) > 0 {
		return "player_card"
	}
	return ""
}
