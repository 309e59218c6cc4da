package core

import (
	"testing"

	"github.com/avoron/planpoker/internal/domain"
)

func TestGetOrCreateIsLazyAndStable(t *testing.T) {
	s := NewRoomStore()

	if _, ok := s.Get("r1"); ok {
		t.Fatal("Get(r1) before create = ok, want missing")
	}

	first, err := s.GetOrCreate("r1")
	if err != nil {
		t.Fatalf("GetOrCreate(r1) err = %v", err)
	}
	second, err := s.GetOrCreate("r1")
	if err != nil {
		t.Fatalf("second GetOrCreate(r1) err = %v", err)
	}
	if first != second {
		t.Error("GetOrCreate returned a different room for the same id")
	}

	got, ok := s.Get("r1")
	if !ok || got != first {
		t.Errorf("Get(r1) = %v/%v, want the created room", got, ok)
	}
}

func TestGetOrCreateRejectsEmptyID(t *testing.T) {
	s := NewRoomStore()
	if _, err := s.GetOrCreate(""); err != domain.ErrEmptyRoomID {
		t.Errorf("GetOrCreate(\"\") err = %v, want %v", err, domain.ErrEmptyRoomID)
	}
	if got := len(s.List()); got != 0 {
		t.Errorf("List() after rejected create has %d rooms, want 0", got)
	}
}

func TestListReportsOccupancy(t *testing.T) {
	s := NewRoomStore()
	room, _ := s.GetOrCreate("r1")
	p, _ := domain.NewPlayer("c1", "Alice", domain.RoleBackend, false)
	room.Players = append(room.Players, p)
	_, _ = s.GetOrCreate("r2")

	infos := s.List()
	if len(infos) != 2 {
		t.Fatalf("List() has %d rooms, want 2", len(infos))
	}
	counts := map[domain.RoomID]int{}
	for _, info := range infos {
		counts[info.ID] = info.PlayerCount
	}
	if counts["r1"] != 1 || counts["r2"] != 0 {
		t.Errorf("occupancy = %v, want r1:1 r2:0", counts)
	}
}
