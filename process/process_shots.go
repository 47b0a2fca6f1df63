package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hdstats/models"
	"hdstats/pkg/ocr"
	"hdstats/pkg/statparse"
)

// Global DB handle for helper funcs
var db *gorm.DB

// global flags (parsed in main)
var verbose bool

var extMime = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".txt":  "text/plain",
}

func mustInitDBFromEnv() *gorm.DB {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatalf("DB_DSN must be set in environment to run this tool")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	return gdb
}

// Main: scans a drop directory of stats screenshots, transcribes and parses
// each one, reconciles them into the profile's snapshot, optional watch mode.
func main() {
	dirFlag := flag.String("dir", "public/shots", "directory to scan for stats screenshots")
	profileID := flag.Uint("profile-id", 0, "Profile ID to assign screenshots to")
	dryRun := flag.Bool("dry-run", false, "Parse and report only; no DB writes")
	watch := flag.Bool("watch", false, "Watch directory for new files")
	workers := flag.Int("workers", 0, "Worker pool size (default NumCPU)")
	flag.BoolVar(&verbose, "verbose", false, "Verbose per-file logging")
	flag.Parse()

	if *dryRun {
		files := listShotFiles(*dirFlag)
		log.Printf("Dry-run: %d candidate files in %s (no DB interaction)", len(files), *dirFlag)
		for _, f := range files {
			res, _, err := parseShot(filepath.Join(*dirFlag, f))
			if err != nil {
				log.Printf("parse %s failed: %v", f, err)
				continue
			}
			log.Printf("parse %s: stats=%d name=%q", f, len(res.Stats), res.PlayerName)
		}
		return
	}

	db = mustInitDBFromEnv()
	if *profileID == 0 {
		log.Fatalf("--profile-id is required outside dry-run")
	}
	var profile models.Profile
	if err := db.First(&profile, *profileID).Error; err != nil {
		log.Fatalf("profile %d not found: %v", *profileID, err)
	}

	files := listShotFiles(*dirFlag)
	log.Printf("Scanning %d files (workers=%d)", len(files), effectiveWorkers(*workers))
	fileCh := make(chan string, 256)
	var wg sync.WaitGroup
	runWorkerPool(*dirFlag, profile, effectiveWorkers(*workers), fileCh, &wg)
	for _, f := range files {
		fileCh <- f
	}

	if *watch {
		if err := watchDirectory(*dirFlag, fileCh); err != nil {
			log.Fatalf("watch failed: %v", err)
		}
	}
	close(fileCh)
	wg.Wait()
}

func effectiveWorkers(w int) int {
	if w <= 0 {
		return runtime.NumCPU()
	}
	return w
}

func logV(format string, args ...any) {
	if verbose {
		log.Printf(format, args...)
	}
}

// parseShot transcribes one file (OCR for images, direct read for .txt) and
// runs the stat parser over it. The transcription is returned too so callers
// can persist it for later re-parsing.
func parseShot(path string) (statparse.ParseResult, string, error) {
	var text string
	var err error
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		var b []byte
		b, err = os.ReadFile(path)
		text = string(b)
	} else {
		text, err = ocr.ExtractText(path)
	}
	if err != nil {
		return statparse.ParseResult{}, "", err
	}
	return statparse.Parse(text), text, nil
}

// runWorkerPool starts workers that process incoming file names until fileCh
// closes. Each file becomes a Screenshot row; the profile's snapshot is then
// rebuilt from every transcription on record, newest first so fresh captures
// win merge ties.
func runWorkerPool(dir string, profile models.Profile, workers int, fileCh <-chan string, wg *sync.WaitGroup) {
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range fileCh {
				if err := processShot(dir, name, profile); err != nil {
					log.Printf("process %s failed: %v", name, err)
				}
			}
		}()
	}
}

func processShot(dir, name string, profile models.Profile) error {
	full := filepath.Join(dir, name)

	var existing models.Screenshot
	if err := db.Where("profile_id = ? AND file_name = ?", profile.ID, name).First(&existing).Error; err == nil {
		logV("skip %s: already recorded (id=%d)", name, existing.ID)
		return nil
	}

	shot := models.Screenshot{
		FileName:    name,
		StorePath:   full,
		ProfileID:   profile.ID,
		ContentType: extMime[strings.ToLower(filepath.Ext(name))],
	}
	res, text, err := parseShot(full)
	if err != nil {
		shot.Failed = true
		shot.FailedReason = err.Error()
		return db.Create(&shot).Error
	}
	shot.RawText = text
	shot.Layout = models.DetectLayout(res)
	if err := db.Create(&shot).Error; err != nil {
		return err
	}
	logV("recorded %s: stats=%d layout=%s", name, len(res.Stats), shot.Layout)
	return rebuildSnapshot(profile)
}

// rebuildSnapshot re-parses every stored transcription for the profile,
// newest first, merges them and inserts a fresh snapshot row.
func rebuildSnapshot(profile models.Profile) error {
	var shots []models.Screenshot
	if err := db.Where("profile_id = ? AND failed = false AND raw_text <> ''", profile.ID).
		Order("id desc").Find(&shots).Error; err != nil {
		return err
	}
	var results []statparse.ParseResult
	for _, s := range shots {
		results = append(results, statparse.Parse(s.RawText))
	}
	merged := statparse.Merge(results)
	snap := models.NewStatSnapshot(profile.ID, merged)
	if err := db.Create(&snap).Error; err != nil {
		return err
	}
	if merged.PlayerName != "" && merged.PlayerName != profile.PlayerName {
		db.Model(&models.Profile{}).Where("id = ?", profile.ID).Update("player_name", merged.PlayerName)
	}
	log.Printf("snapshot %d for profile %d: %d stats, name=%q", snap.ID, profile.ID, len(merged.Stats), merged.PlayerName)
	return nil
}

func listShotFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !isSupportedExt(e.Name()) {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out
}

func isSupportedExt(name string) bool {
	_, ok := extMime[strings.ToLower(filepath.Ext(name))]
	return ok
}

// watchDirectory feeds debounced create events into fileCh. Blocks forever
// (Ctrl+C to exit).
func watchDirectory(dir string, fileCh chan<- string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}
	log.Printf("Watching %s (debounced) ...", dir)

	// simple debounce map of pending files
	pending := map[string]time.Time{}
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create == fsnotify.Create {
				name := filepath.Base(ev.Name)
				if !isSupportedExt(name) {
					continue
				}
				pending[name] = time.Now()
			}
		case <-ticker.C:
			now := time.Now()
			for name, ts := range pending {
				if now.Sub(ts) > 300*time.Millisecond { // stable
					fileCh <- name
					delete(pending, name)
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error: %v", err)
		}
	}
}
