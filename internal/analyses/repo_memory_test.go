package analyses

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"
)

func seedRecords(t *testing.T, repo *MemoryRepo, userID string, n int) []Record {
	t.Helper()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	records := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		record := Record{
			ID:         fmt.Sprintf("rec-%d", i),
			UserID:     userID,
			TargetRole: "Cloud Engineer",
			BlobURL:    fmt.Sprintf("https://resumes.s3.amazonaws.com/%d.pdf", i),
			Result:     json.RawMessage(`{"overall_score":50}`),
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(context.Background(), record); err != nil {
			t.Fatalf("Create: %v", err)
		}
		records = append(records, record)
	}
	return records
}

func TestMemoryRepoListNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	seedRecords(t, repo, "u1", 3)

	got, err := repo.ListByUser(context.Background(), "u1", 10, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	if got[0].ID != "rec-2" || got[2].ID != "rec-0" {
		t.Fatalf("expected newest first, got %s..%s", got[0].ID, got[2].ID)
	}
}

func TestMemoryRepoListPagination(t *testing.T) {
	repo := NewMemoryRepo()
	seedRecords(t, repo, "u1", 5)

	got, err := repo.ListByUser(context.Background(), "u1", 2, 2)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].ID != "rec-2" {
		t.Fatalf("expected rec-2 first on page 2, got %s", got[0].ID)
	}

	empty, err := repo.ListByUser(context.Background(), "u1", 10, 50)
	if err != nil {
		t.Fatalf("ListByUser offset past end: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty page, got %d", len(empty))
	}
}

func TestMemoryRepoGetScopedToOwner(t *testing.T) {
	repo := NewMemoryRepo()
	seedRecords(t, repo, "u1", 1)

	if _, err := repo.GetByID(context.Background(), "u1", "rec-0"); err != nil {
		t.Fatalf("GetByID owner: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), "u2", "rec-0"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other user, got %v", err)
	}
	if _, err := repo.GetByID(context.Background(), "u1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing record, got %v", err)
	}
}
