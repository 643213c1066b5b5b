package assign

import (
	"context"
	"reflect"
	"testing"
)

func TestParsePairsTolerant_CompleteArray(t *testing.T) {
	got := parsePairsTolerant("[[0,3],[1,7],[2,3]]")
	want := map[int]int{0: 3, 1: 7, 2: 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parsePairsTolerant() = %v, want %v", got, want)
	}
}

func TestParsePairsTolerant_TruncatedMidPair(t *testing.T) {
	got := parsePairsTolerant("[[0,3],[1,7],[2,")
	want := map[int]int{0: 3, 1: 7}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parsePairsTolerant() = %v, want %v", got, want)
	}
}

func TestParsePairsTolerant_EmptyArray(t *testing.T) {
	got := parsePairsTolerant("[]")
	if len(got) != 0 {
		t.Errorf("parsePairsTolerant() = %v, want empty", got)
	}
}

func TestAssign_NilClientLeavesEverythingUnassigned(t *testing.T) {
	categories := []IndexedCategory{{Index: 0, Name: "Technology"}}
	bookmarks := []IndexedBookmark{{Index: 0, Title: "a"}, {Index: 1, Title: "b"}}

	result := Assign(context.Background(), nil, categories, bookmarks, nil)

	if len(result.Assignments) != 0 {
		t.Errorf("Assignments = %v, want empty", result.Assignments)
	}
	if len(result.Unassigned) != 2 {
		t.Errorf("len(Unassigned) = %d, want 2", len(result.Unassigned))
	}
}

func TestAssign_ProgressCallbackInvokedPerBatch(t *testing.T) {
	categories := []IndexedCategory{{Index: 0, Name: "Technology"}}
	bookmarks := make([]IndexedBookmark, 120)
	for i := range bookmarks {
		bookmarks[i] = IndexedBookmark{Index: i, Title: "t"}
	}

	var calls []int
	Assign(context.Background(), nil, categories, bookmarks, func(assigned, total int) {
		calls = append(calls, assigned)
		if total != 120 {
			t.Errorf("total = %d, want 120", total)
		}
	})

	if len(calls) != 3 {
		t.Fatalf("progress callback called %d times, want 3 (batches of 50)", len(calls))
	}
	if calls[len(calls)-1] != 120 {
		t.Errorf("final assigned count = %d, want 120", calls[len(calls)-1])
	}
}
