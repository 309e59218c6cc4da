// Package domain holds the estimation documents and their validation.
// No transport or lifecycle logic here.
package domain

type (
	RoomID    string
	FeatureID string
	StoryID   string
)

// Role buckets scores per discipline. Free-form on the wire, but these
// three are what totals are summed over.
type Role string

const (
	RoleBackend  Role = "BE"
	RoleFrontend Role = "FE"
	RoleQA       Role = "QA"
)

// Scores is a per-role score breakdown.
type Scores struct {
	BE float64 `json:"BE"`
	FE float64 `json:"FE"`
	QA float64 `json:"QA"`
}

// FinalScores is a story's recorded breakdown plus the derived US total.
type FinalScores struct {
	BE float64 `json:"BE"`
	FE float64 `json:"FE"`
	QA float64 `json:"QA"`
	US float64 `json:"US"`
}

// FinalizeScores derives US from the per-role parts. Negative parts are
// refused; missing parts arrive as zero from the decoder.
func FinalizeScores(s Scores) (FinalScores, error) {
	if s.BE < 0 || s.FE < 0 || s.QA < 0 {
		return FinalScores{}, ErrNegativeScore
	}
	return FinalScores{BE: s.BE, FE: s.FE, QA: s.QA, US: s.BE + s.FE + s.QA}, nil
}

// Room is the server-authoritative document one collaboration session
// lives in. The room owns its players, features and stories outright;
// ActiveStoryID is a by-identifier reference into the features tree.
type Room struct {
	ID                 RoomID     `json:"-"`
	Players            []*Player  `json:"players"`
	Features           []*Feature `json:"features"`
	ActiveStoryID      *StoryID   `json:"activeStoryId"`
	Revealed           bool       `json:"revealed"`
	EstimationFinished bool       `json:"estimationFinished"`
	Totals             Scores     `json:"totals"`
}

func NewRoom(id RoomID) (*Room, error) {
	if id == "" {
		return nil, ErrEmptyRoomID
	}
	return &Room{
		ID:       id,
		Players:  []*Player{},
		Features: []*Feature{},
	}, nil
}

func (r *Room) Feature(id FeatureID) *Feature {
	for _, f := range r.Features {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// Story searches every feature; story ids are unique room-wide.
func (r *Room) Story(id StoryID) *Story {
	for _, f := range r.Features {
		for _, s := range f.Stories {
			if s.ID == id {
				return s
			}
		}
	}
	return nil
}

func (r *Room) Player(id PlayerID) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// RemovePlayer drops the player with the given connection id, keeping
// join order for the rest. Reports whether anyone was removed.
func (r *Room) RemovePlayer(id PlayerID) bool {
	for i, p := range r.Players {
		if p.ID == id {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			return true
		}
	}
	return false
}

// SelectStory points the room at a new active story and resets the
// per-story flags and every vote. The story id is not resolved on
// purpose: an unknown id simply renders as nothing active.
func (r *Room) SelectStory(id StoryID) {
	r.ActiveStoryID = &id
	r.Revealed = false
	r.EstimationFinished = false
	for _, p := range r.Players {
		p.Vote = nil
	}
}

// CloneFeatures deep-copies the features tree, for collaborators that
// read it off the mutation thread.
func (r *Room) CloneFeatures() []*Feature {
	out := make([]*Feature, len(r.Features))
	for i, f := range r.Features {
		stories := make([]*Story, len(f.Stories))
		for j, s := range f.Stories {
			sc := *s
			stories[j] = &sc
		}
		fc := *f
		fc.Stories = stories
		out[i] = &fc
	}
	return out
}

// Feature is a named grouping of stories. Immutable after creation
// except through its story list.
type Feature struct {
	ID      FeatureID `json:"id"`
	Name    string    `json:"name"`
	Stories []*Story  `json:"stories"`
}

func NewFeature(id FeatureID, name string) (*Feature, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > MaxNameLen {
		return nil, ErrNameTooLong
	}
	return &Feature{ID: id, Name: name, Stories: []*Story{}}, nil
}

// Story is one unit of estimation. URL and FinalScores stay mutable
// after creation, name does not.
type Story struct {
	ID          StoryID     `json:"id"`
	Name        string      `json:"name"`
	URL         string      `json:"url"`
	FinalScores FinalScores `json:"finalScores"`
}

func NewStory(id StoryID, name, url string) (*Story, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > MaxNameLen {
		return nil, ErrNameTooLong
	}
	return &Story{ID: id, Name: name, URL: url}, nil
}
