package journal

import (
	"context"
	"testing"
)

func TestNilJournalIsNoop(t *testing.T) {
	var j *Journal

	if j.Enabled() {
		t.Fatal("nil journal reported enabled")
	}

	// None of these may panic or block.
	j.RecordSave(context.Background(), "docs", "a.txt", 10, "document")
	j.RecordDelete(context.Background(), "docs", "a.txt")

	points, err := j.GrowthByDay(context.Background(), "docs")
	if err != nil || points != nil {
		t.Fatalf("GrowthByDay = %v, %v", points, err)
	}

	name, at, ok := j.NewestCategory(context.Background())
	if ok || name != "" || !at.IsZero() {
		t.Fatalf("NewestCategory = %q, %v, %v", name, at, ok)
	}
}

func TestNewRejectsNilDB(t *testing.T) {
	if j := New(nil); j != nil {
		t.Fatal("New(nil) should return nil journal")
	}
}
