package db

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "progress.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAppendFillsDefaults(t *testing.T) {
	store := openTestStore(t)
	store.now = func() time.Time { return time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC) }
	ctx := context.Background()

	rec, err := store.Append(ctx, Record{Title: "Night Drive", FScore: 140, PScore: -5, Lyric: "cold engine"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("expected an id to be assigned")
	}
	if rec.Date != "2026-03-01" {
		t.Fatalf("expected today's date, got %s", rec.Date)
	}
	if rec.FScore != 100 || rec.PScore != 0 {
		t.Fatalf("expected clamped scores, got F=%d P=%d", rec.FScore, rec.PScore)
	}

	list, err := store.List(ctx, time.Time{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0] != rec {
		t.Fatalf("expected stored record %+v, got %+v", rec, list)
	}
}

func TestAppendRejectsBadDateAndDuplicateID(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.Append(ctx, Record{Date: "03/01/2026", Title: "x"}); err == nil {
		t.Fatal("expected error for malformed date")
	}
	if _, err := store.Append(ctx, Record{ID: "fixed", Date: "2026-03-01", Title: "a"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := store.Append(ctx, Record{ID: "fixed", Date: "2026-03-02", Title: "b"}); err == nil {
		t.Fatal("expected duplicate id to fail")
	}
	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("failed appends must not leave rows, got %d", count)
	}
}

func TestAveragesWindowExcludesOlderRecords(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	seed := []Record{
		{Date: "2026-02-01", Title: "old", FScore: 10, PScore: 10},
		{Date: "2026-02-25", Title: "recent", FScore: 80, PScore: 40, RScore: 100},
		{Date: "2026-03-01", Title: "today", FScore: 60, PScore: 20},
	}
	for _, r := range seed {
		if _, err := store.Append(ctx, r); err != nil {
			t.Fatalf("append %s: %v", r.Title, err)
		}
	}

	all, err := store.Averages(ctx, time.Time{})
	if err != nil {
		t.Fatalf("averages: %v", err)
	}
	if all.Count != 3 || all.FScore != 50 {
		t.Fatalf("unexpected overall averages %+v", all)
	}

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	week, err := store.Averages(ctx, WindowStart(now, 7))
	if err != nil {
		t.Fatalf("weekly averages: %v", err)
	}
	if week.Count != 2 || week.FScore != 70 || week.PScore != 30 || week.RScore != 50 {
		t.Fatalf("unexpected weekly averages %+v", week)
	}

	list, err := store.List(ctx, WindowStart(now, 7))
	if err != nil {
		t.Fatalf("list window: %v", err)
	}
	if len(list) != 2 || list[0].Title != "recent" || list[1].Title != "today" {
		t.Fatalf("unexpected window listing %+v", list)
	}
}

func TestAveragesEmptyStore(t *testing.T) {
	avg, err := openTestStore(t).Averages(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("averages: %v", err)
	}
	if avg != (Averages{}) {
		t.Fatalf("expected zero averages, got %+v", avg)
	}
}

func TestConcurrentAppends(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Append(ctx, Record{Title: "parallel", FScore: 50}); err != nil {
				t.Errorf("append: %v", err)
			}
		}()
	}
	wg.Wait()
	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 10 {
		t.Fatalf("expected 10 records, got %d", count)
	}
}

func TestWindowStart(t *testing.T) {
	now := time.Date(2026, 3, 1, 18, 45, 0, 0, time.UTC)
	if got := WindowStart(now, 7).Format(DateLayout); got != "2026-02-23" {
		t.Fatalf("expected 2026-02-23, got %s", got)
	}
	if got := WindowStart(now, 1).Format(DateLayout); got != "2026-03-01" {
		t.Fatalf("expected today, got %s", got)
	}
	if !WindowStart(now, 0).IsZero() {
		t.Fatal("expected zero time for no window")
	}
}
