package domain

type PlayerID string

const MaxNameLen = 64

// Player is one connected participant. ID is the connection identifier
// and is the ownership key for vote mutation.
type Player struct {
	ID            PlayerID `json:"id"`
	Name          string   `json:"name"`
	Role          Role     `json:"role"`
	IsScrumMaster bool     `json:"isScrumMaster"`
	Vote          *float64 `json:"vote"`
}

func NewPlayer(id PlayerID, name string, role Role, scrumMaster bool) (*Player, error) {
	if id == "" {
		return nil, ErrEmptyPlayerID
	}
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > MaxNameLen {
		return nil, ErrNameTooLong
	}
	return &Player{ID: id, Name: name, Role: role, IsScrumMaster: scrumMaster}, nil
}

func (p *Player) SetVote(v float64) {
	p.Vote = &v
}
