package reparse

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hdstats/models"
	"hdstats/pkg/statparse"
)

func mustDBFromEnv() *gorm.DB {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN not set in env")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	return gdb
}

// Run re-parses the stored transcriptions for each profile and inserts a
// fresh snapshot when the merge now recovers more stats than the profile's
// latest one. Useful after the pattern table learns a new OCR mangling: the
// raw text is already on record, so no image work is needed.
// profileID 0 means all profiles. If dry is true, only prints proposed changes.
func Run(profileID uint, dry bool) error {
	gdb := mustDBFromEnv()

	var profiles []models.Profile
	q := gdb.Where("active = true")
	if profileID != 0 {
		q = q.Where("id = ?", profileID)
	}
	if err := q.Find(&profiles).Error; err != nil {
		return fmt.Errorf("load profiles: %w", err)
	}

	for _, p := range profiles {
		if err := reparseProfile(gdb, p, dry); err != nil {
			log.Printf("profile %d: %v", p.ID, err)
		}
	}
	return nil
}

func reparseProfile(gdb *gorm.DB, profile models.Profile, dry bool) error {
	var shots []models.Screenshot
	if err := gdb.Where("profile_id = ? AND failed = false AND raw_text <> ''", profile.ID).
		Order("id desc").Find(&shots).Error; err != nil {
		return err
	}
	if len(shots) == 0 {
		log.Printf("profile %d: no transcriptions on record, skipping", profile.ID)
		return nil
	}

	var results []statparse.ParseResult
	for _, s := range shots {
		results = append(results, statparse.Parse(s.RawText))
	}
	merged := statparse.Merge(results)

	var latest models.StatSnapshot
	have := 0
	if err := gdb.Where("profile_id = ?", profile.ID).Order("id desc").First(&latest).Error; err == nil {
		have = countNonZero(latest)
	}
	if len(merged.Stats) <= have {
		log.Printf("profile %d: reparse recovers %d stats, latest snapshot has %d; nothing to do",
			profile.ID, len(merged.Stats), have)
		return nil
	}

	if dry {
		fmt.Printf("DRY: profile %d would get a new snapshot with %d stats (up from %d), name=%q\n",
			profile.ID, len(merged.Stats), have, merged.PlayerName)
		return nil
	}

	snap := models.NewStatSnapshot(profile.ID, merged)
	if err := gdb.Create(&snap).Error; err != nil {
		return err
	}
	if merged.PlayerName != "" && merged.PlayerName != profile.PlayerName {
		gdb.Model(&models.Profile{}).Where("id = ?", profile.ID).Update("player_name", merged.PlayerName)
	}
	fmt.Printf("profile %d: snapshot %d inserted with %d stats (up from %d)\n",
		profile.ID, snap.ID, len(merged.Stats), have)
	return nil
}

// countNonZero approximates how many stats a stored snapshot carries. Zero is
// both "absent" and a legitimate value, so this undercounts for brand new
// players; acceptable for an improvement heuristic.
func countNonZero(s models.StatSnapshot) int {
	vals := []int64{
		s.EnemyKills, s.TerminidKills, s.AutomatonKills, s.FriendlyKills,
		s.GrenadeKills, s.MeleeKills, s.EagleKills, s.Deaths,
		s.ShotsFired, s.ShotsHit, s.OrbitalsUsed, s.DefensiveStratagemsUsed,
		s.EagleStratagemsUsed, s.SupplyStratagemsUsed, s.ReinforceStratagemsUsed,
		s.TotalStratagemsUsed, s.SuccessfulExtractions, s.ObjectivesCompleted,
		s.MissionsPlayed, s.MissionsWon, s.MissionTime, s.SamplesCollected,
		s.TotalXP,
	}
	n := 0
	for _, v := range vals {
		if v != 0 {
			n++
		}
	}
	return n
}
