package watcher

import (
	"testing"

	"github.com/Monika-msk/vtu-internyet/internal/model"
)

func listings(ids ...string) []model.Listing {
	out := make([]model.Listing, len(ids))
	for i, id := range ids {
		out[i] = model.Listing{ID: id, Title: "Intern", Company: "Acme"}
	}
	return out
}

func TestDetect_PartitionsAndMarksSeen(t *testing.T) {
	state := model.NewSeenState()
	state.Add("1")
	state.Add("2")

	fresh := Detect(listings("1", "2", "3"), state)

	if len(fresh) != 1 || fresh[0].ID != "3" {
		t.Fatalf("fresh = %v, want exactly [3]", fresh)
	}
	for _, id := range []string{"1", "2", "3"} {
		if !state.Has(id) {
			t.Errorf("expected %s in state after detection", id)
		}
	}
	if state.Len() != 3 {
		t.Errorf("state size = %d, want 3", state.Len())
	}
}

func TestDetect_PreservesEncounterOrder(t *testing.T) {
	state := model.NewSeenState()
	state.Add("b")

	fresh := Detect(listings("c", "b", "a", "d"), state)

	want := []string{"c", "a", "d"}
	if len(fresh) != len(want) {
		t.Fatalf("len(fresh) = %d, want %d", len(fresh), len(want))
	}
	for i, id := range want {
		if fresh[i].ID != id {
			t.Errorf("fresh[%d] = %s, want %s", i, fresh[i].ID, id)
		}
	}
}

func TestDetect_EmptyBatch(t *testing.T) {
	state := model.NewSeenState()
	state.Add("1")

	fresh := Detect(nil, state)
	if len(fresh) != 0 {
		t.Errorf("fresh = %v, want empty", fresh)
	}
	if state.Len() != 1 {
		t.Errorf("state size = %d, want unchanged", state.Len())
	}
}
