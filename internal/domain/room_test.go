package domain

import (
	"strings"
	"testing"
)

func TestFinalizeScores(t *testing.T) {
	tests := []struct {
		name    string
		in      Scores
		want    FinalScores
		wantErr error
	}{
		{
			name: "derives US from parts",
			in:   Scores{BE: 3, FE: 2, QA: 1},
			want: FinalScores{BE: 3, FE: 2, QA: 1, US: 6},
		},
		{
			name: "all zero",
			in:   Scores{},
			want: FinalScores{},
		},
		{
			name:    "negative part refused",
			in:      Scores{BE: -1, FE: 2, QA: 1},
			wantErr: ErrNegativeScore,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FinalizeScores(tt.in)
			if err != tt.wantErr {
				t.Fatalf("FinalizeScores(%v) err = %v, want %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("FinalizeScores(%v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewRoomRejectsEmptyID(t *testing.T) {
	if _, err := NewRoom(""); err != ErrEmptyRoomID {
		t.Errorf("NewRoom(\"\") err = %v, want %v", err, ErrEmptyRoomID)
	}
}

func TestNewPlayerValidation(t *testing.T) {
	tests := []struct {
		name    string
		id      PlayerID
		pname   string
		wantErr error
	}{
		{name: "ok", id: "c1", pname: "Alice"},
		{name: "empty id", id: "", pname: "Alice", wantErr: ErrEmptyPlayerID},
		{name: "empty name", id: "c1", pname: "", wantErr: ErrEmptyName},
		{name: "name too long", id: "c1", pname: strings.Repeat("x", MaxNameLen+1), wantErr: ErrNameTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPlayer(tt.id, tt.pname, RoleBackend, false)
			if err != tt.wantErr {
				t.Fatalf("NewPlayer err = %v, want %v", err, tt.wantErr)
			}
			if err == nil && p.Vote != nil {
				t.Errorf("new player vote = %v, want nil", *p.Vote)
			}
		})
	}
}

func TestSelectStoryResetsRound(t *testing.T) {
	room, err := NewRoom("r1")
	if err != nil {
		t.Fatal(err)
	}
	alice, _ := NewPlayer("c1", "Alice", RoleBackend, false)
	bob, _ := NewPlayer("c2", "Bob", RoleFrontend, false)
	room.Players = append(room.Players, alice, bob)
	alice.SetVote(5)
	bob.SetVote(8)
	room.Revealed = true
	room.EstimationFinished = true

	room.SelectStory("s1")

	if room.ActiveStoryID == nil || *room.ActiveStoryID != "s1" {
		t.Errorf("activeStoryId = %v, want s1", room.ActiveStoryID)
	}
	if room.Revealed || room.EstimationFinished {
		t.Errorf("revealed = %v, estimationFinished = %v, want false/false", room.Revealed, room.EstimationFinished)
	}
	for _, p := range room.Players {
		if p.Vote != nil {
			t.Errorf("player %s vote = %v, want nil", p.ID, *p.Vote)
		}
	}
}

func TestRemovePlayerKeepsJoinOrder(t *testing.T) {
	room, _ := NewRoom("r1")
	for _, id := range []PlayerID{"c1", "c2", "c3"} {
		p, _ := NewPlayer(id, string(id), RoleQA, false)
		room.Players = append(room.Players, p)
	}
	if !room.RemovePlayer("c2") {
		t.Fatal("RemovePlayer(c2) = false, want true")
	}
	if room.RemovePlayer("c2") {
		t.Error("second RemovePlayer(c2) = true, want false")
	}
	want := []PlayerID{"c1", "c3"}
	for i, p := range room.Players {
		if p.ID != want[i] {
			t.Errorf("players[%d] = %s, want %s", i, p.ID, want[i])
		}
	}
}

func TestStoryLookupAcrossFeatures(t *testing.T) {
	room, _ := NewRoom("r1")
	f1, _ := NewFeature("f1", "Checkout")
	f2, _ := NewFeature("f2", "Search")
	s1, _ := NewStory("s1", "Cart", "")
	s2, _ := NewStory("s2", "Filters", "http://x")
	f1.Stories = append(f1.Stories, s1)
	f2.Stories = append(f2.Stories, s2)
	room.Features = append(room.Features, f1, f2)

	if got := room.Story("s2"); got != s2 {
		t.Errorf("Story(s2) = %v, want the story under f2", got)
	}
	if got := room.Story("nope"); got != nil {
		t.Errorf("Story(nope) = %v, want nil", got)
	}
	if got := room.Feature("f1"); got != f1 {
		t.Errorf("Feature(f1) = %v, want f1", got)
	}
}

func TestCloneFeaturesIsIndependent(t *testing.T) {
	room, _ := NewRoom("r1")
	f, _ := NewFeature("f1", "Checkout")
	s, _ := NewStory("s1", "Cart", "")
	f.Stories = append(f.Stories, s)
	room.Features = append(room.Features, f)

	clone := room.CloneFeatures()
	s.FinalScores = FinalScores{BE: 3, FE: 2, QA: 1, US: 6}
	s.URL = "http://changed"

	if got := clone[0].Stories[0].FinalScores.US; got != 0 {
		t.Errorf("clone US = %v, want 0 after mutating original", got)
	}
	if got := clone[0].Stories[0].URL; got != "" {
		t.Errorf("clone url = %q, want empty after mutating original", got)
	}
}
