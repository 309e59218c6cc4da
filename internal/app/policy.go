package app

import (
	"github.com/avoron/planpoker/internal/core"
	"github.com/avoron/planpoker/internal/domain"
)

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	KickMember
	DropFrame
)

// Policy decides what happens to a member whose send buffer is full.
type Policy interface {
	OnBackPressure(roomID domain.RoomID, sid core.SessionID) BackpressureAction
}

type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(domain.RoomID, core.SessionID) BackpressureAction {
	return KickMember
}

// VotePolicy settles the scrum-master question: by default a scrum
// master facilitates and does not estimate. Set AllowScrumMaster from
// config to run the permissive variant.
type VotePolicy struct {
	AllowScrumMaster bool
}

func (p VotePolicy) CanVote(pl *domain.Player) error {
	if pl.IsScrumMaster && !p.AllowScrumMaster {
		return domain.ErrScrumMasterVote
	}
	return nil
}
