package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
	if _, err := uuid.Parse(store.RunID()); err != nil {
		t.Errorf("RunID() = %q is not a UUID: %v", store.RunID(), err)
	}
}

func TestStoreSaveAndBest(t *testing.T) {
	store := openTemp(t)

	for _, ms := range []int{4200, 3100, 9800} {
		if _, err := store.SaveClear(ClearEntry{StageID: "orchard", Duration: time.Duration(ms) * time.Millisecond}); err != nil {
			t.Fatalf("SaveClear() failed: %v", err)
		}
	}
	if _, err := store.SaveClear(ClearEntry{StageID: "pencil", Duration: time.Second, Respawns: 2}); err != nil {
		t.Fatalf("SaveClear() failed: %v", err)
	}

	best, err := store.BestClears("orchard", 10)
	if err != nil {
		t.Fatalf("BestClears() failed: %v", err)
	}
	if len(best) != 3 {
		t.Fatalf("Expected 3 clears, got %d", len(best))
	}

	// Fastest first
	want := []time.Duration{3100 * time.Millisecond, 4200 * time.Millisecond, 9800 * time.Millisecond}
	for i, d := range want {
		if best[i].Duration != d {
			t.Errorf("best[%d].Duration = %v, want %v", i, best[i].Duration, d)
		}
		if best[i].RunID != store.RunID() {
			t.Errorf("best[%d].RunID = %q, want %q", i, best[i].RunID, store.RunID())
		}
	}

	pencil, err := store.BestClears("pencil", 10)
	if err != nil {
		t.Fatalf("BestClears() failed: %v", err)
	}
	if len(pencil) != 1 || pencil[0].Respawns != 2 {
		t.Errorf("Expected one pencil clear with 2 respawns, got %+v", pencil)
	}
}

func TestStoreBestClearsLimit(t *testing.T) {
	store := openTemp(t)

	for i := range 15 {
		if _, err := store.SaveClear(ClearEntry{StageID: "room", Duration: time.Duration(i+1) * time.Second}); err != nil {
			t.Fatalf("SaveClear() failed: %v", err)
		}
	}

	clears, err := store.BestClears("room", 5)
	if err != nil {
		t.Fatalf("BestClears() failed: %v", err)
	}
	if len(clears) != 5 {
		t.Errorf("Expected 5 clears, got %d", len(clears))
	}

	// Non-positive limit falls back to 10
	clears, err = store.BestClears("room", 0)
	if err != nil {
		t.Fatalf("BestClears() failed: %v", err)
	}
	if len(clears) != 10 {
		t.Errorf("Expected 10 clears, got %d", len(clears))
	}
}

func TestStoreRecentClears(t *testing.T) {
	store := openTemp(t)

	for _, id := range []string{"orchard", "heartbeat", "pencil"} {
		if err := store.RecordClear(id, time.Second, 0); err != nil {
			t.Fatalf("RecordClear() failed: %v", err)
		}
	}

	recent, err := store.RecentClears(2)
	if err != nil {
		t.Fatalf("RecentClears() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 clears, got %d", len(recent))
	}
	if recent[0].StageID != "pencil" || recent[1].StageID != "heartbeat" {
		t.Errorf("Expected newest first, got %s, %s", recent[0].StageID, recent[1].StageID)
	}
}

func TestStoreExplicitRunID(t *testing.T) {
	store := openTemp(t)
	other := uuid.NewString()

	if _, err := store.SaveClear(ClearEntry{RunID: other, StageID: "orchard", Duration: time.Second}); err != nil {
		t.Fatalf("SaveClear() failed: %v", err)
	}
	if err := store.RecordClear("orchard", 2*time.Second, 1); err != nil {
		t.Fatalf("RecordClear() failed: %v", err)
	}

	stats, err := store.StageStats("orchard")
	if err != nil {
		t.Fatalf("StageStats() failed: %v", err)
	}
	if stats.Runs != 2 {
		t.Errorf("Expected 2 runs, got %d", stats.Runs)
	}
}

func TestStoreStageStats(t *testing.T) {
	store := openTemp(t)

	for _, c := range []struct {
		d        time.Duration
		respawns int
	}{
		{2 * time.Second, 1},
		{4 * time.Second, 3},
	} {
		if err := store.RecordClear("crosswalk", c.d, c.respawns); err != nil {
			t.Fatalf("RecordClear() failed: %v", err)
		}
	}

	stats, err := store.StageStats("crosswalk")
	if err != nil {
		t.Fatalf("StageStats() failed: %v", err)
	}
	if stats.Clears != 2 {
		t.Errorf("Clears = %d, want 2", stats.Clears)
	}
	if stats.Best != 2*time.Second {
		t.Errorf("Best = %v, want 2s", stats.Best)
	}
	if stats.Average != 3*time.Second {
		t.Errorf("Average = %v, want 3s", stats.Average)
	}
	if stats.Respawns != 4 {
		t.Errorf("Respawns = %d, want 4", stats.Respawns)
	}
	if stats.LastCleared.IsZero() {
		t.Error("LastCleared should be set")
	}

	empty, err := store.StageStats("room")
	if err != nil {
		t.Fatalf("StageStats() failed: %v", err)
	}
	if empty.Clears != 0 || empty.Best != 0 {
		t.Errorf("Expected zero stats, got %+v", empty)
	}
}

func TestStoreAllStageStats(t *testing.T) {
	store := openTemp(t)

	store.RecordClear("orchard", time.Second, 0)
	store.RecordClear("orchard", 3*time.Second, 0)
	store.RecordClear("room", 5*time.Second, 0)

	all, err := store.AllStageStats()
	if err != nil {
		t.Fatalf("AllStageStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 stages, got %d", len(all))
	}
	if all["orchard"].Clears != 2 || all["orchard"].Best != time.Second {
		t.Errorf("orchard stats = %+v", all["orchard"])
	}
	if all["room"].Average != 5*time.Second {
		t.Errorf("room average = %v, want 5s", all["room"].Average)
	}
}

func TestStoreClearStage(t *testing.T) {
	store := openTemp(t)

	store.RecordClear("pencil", time.Second, 0)
	store.RecordClear("room", time.Second, 0)

	if err := store.ClearStage("pencil"); err != nil {
		t.Fatalf("ClearStage() failed: %v", err)
	}

	clears, _ := store.BestClears("pencil", 10)
	if len(clears) != 0 {
		t.Errorf("Expected 0 pencil clears, got %d", len(clears))
	}
	clears, _ = store.BestClears("room", 10)
	if len(clears) != 1 {
		t.Errorf("Expected room clear to survive, got %d", len(clears))
	}
}

func TestNilStoreDropsRecords(t *testing.T) {
	var store *Store
	if err := store.RecordClear("orchard", time.Second, 0); err != nil {
		t.Errorf("RecordClear() on nil store = %v, want nil", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close() on nil store = %v, want nil", err)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
