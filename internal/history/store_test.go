package history

import (
	"testing"
)

func TestStoreRecordAndList(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer func() { _ = store.Close() }()

	ctx := t.Context()
	runs := []Run{
		{RunID: "run-1", Project: "libfoo", Version: "1.0.0", Outcome: "success", Pages: 12, DurationMS: 4200, Published: true, CommitHash: "abc123"},
		{RunID: "run-2", Project: "libfoo", Version: "1.1.0", Outcome: "failed", DurationMS: 900},
	}
	for _, r := range runs {
		if err := store.Record(ctx, r); err != nil {
			t.Fatalf("failed to record run: %v", err)
		}
	}

	got, err := store.List(ctx, 0, false)
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(got))
	}
	if got[0].RunID != "run-2" {
		t.Errorf("expected newest first, got %s", got[0].RunID)
	}
	if got[1].Version != "1.0.0" || !got[1].Published || got[1].CommitHash != "abc123" {
		t.Errorf("run-1 fields not preserved: %+v", got[1])
	}
}

func TestStoreListFailedOnly(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer func() { _ = store.Close() }()

	ctx := t.Context()
	_ = store.Record(ctx, Run{RunID: "ok", Project: "p", Outcome: "success"})
	_ = store.Record(ctx, Run{RunID: "bad", Project: "p", Outcome: "failed"})
	_ = store.Record(ctx, Run{RunID: "stop", Project: "p", Outcome: "canceled"})

	got, err := store.List(ctx, 0, true)
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 failed runs, got %d", len(got))
	}
	for _, r := range got {
		if r.Outcome == "success" {
			t.Errorf("success run returned by failedOnly query: %+v", r)
		}
	}
}

func TestStoreListLimit(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer func() { _ = store.Close() }()

	ctx := t.Context()
	for range 5 {
		if err := store.Record(ctx, Run{RunID: "r", Project: "p", Outcome: "success"}); err != nil {
			t.Fatalf("failed to record run: %v", err)
		}
	}

	got, err := store.List(ctx, 3, false)
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(got))
	}
}

func TestStorePruneRetainsNewest(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer func() { _ = store.Close() }()

	ctx := t.Context()
	for _, id := range []string{"r1", "r2", "r3", "r4", "r5"} {
		if err := store.Record(ctx, Run{RunID: id, Project: "p", Outcome: "success"}); err != nil {
			t.Fatalf("failed to record run: %v", err)
		}
	}

	deleted, err := store.Prune(ctx, 2)
	if err != nil {
		t.Fatalf("failed to prune: %v", err)
	}
	if deleted != 3 {
		t.Errorf("expected 3 pruned runs, got %d", deleted)
	}

	got, err := store.List(ctx, 0, false)
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 remaining runs, got %d", len(got))
	}
	if got[0].RunID != "r5" || got[1].RunID != "r4" {
		t.Errorf("prune kept wrong runs: %+v", got)
	}
}

func TestStorePruneKeepMoreThanRecorded(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer func() { _ = store.Close() }()

	ctx := t.Context()
	_ = store.Record(ctx, Run{RunID: "only", Project: "p", Outcome: "success"})

	deleted, err := store.Prune(ctx, 10)
	if err != nil {
		t.Fatalf("failed to prune: %v", err)
	}
	if deleted != 0 {
		t.Errorf("expected no pruned runs, got %d", deleted)
	}
}
