package jobs

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/traininghub/quiz_platform/storage"
)

// keepBackups is how many dated snapshots are retained.
const keepBackups = 14

// BackupCatalog snapshots the catalog file into the backups directory
// next to it and prunes old snapshots. Runs nightly from cron.
func BackupCatalog() {
	log.Println("Running job: BackupCatalog...")

	src := storage.Catalog.Path()
	data, err := os.ReadFile(src)
	if err != nil {
		log.Printf("Backup skipped, catalog unreadable: %v", err)
		return
	}

	dir := filepath.Join(filepath.Dir(src), "backups")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("Backup failed, cannot create %s: %v", dir, err)
		return
	}

	name := fmt.Sprintf("quiz-data-%s.json", time.Now().Format("2006-01-02"))
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		log.Printf("Backup failed: %v", err)
		return
	}
	log.Printf("Catalog backed up to %s", name)

	prune(dir)
}

func prune(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".json" {
			names = append(names, e.Name())
		}
	}
	if len(names) <= keepBackups {
		return
	}
	// Dated names sort chronologically.
	sort.Strings(names)
	for _, name := range names[:len(names)-keepBackups] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			log.Printf("Failed to prune backup %s: %v", name, err)
		}
	}
}
