package app

import (
	"github.com/rs/zerolog/log"

	"github.com/avoron/planpoker/internal/core"
	"github.com/avoron/planpoker/internal/domain"
)

// Vote records the caller's own vote. Locked rooms refuse votes; the
// scrum-master rule comes from the vote policy.
func (o *Orchestrator) Vote(sid core.SessionID, roomID domain.RoomID, value float64) error {
	if roomID == "" {
		return domain.ErrEmptyRoomID
	}
	room, ok := o.Rooms.Get(roomID)
	if !ok {
		return domain.ErrRoomNotFound
	}
	if room.EstimationFinished {
		return domain.ErrVotingLocked
	}
	player := room.Player(domain.PlayerID(sid))
	if player == nil {
		return domain.ErrPlayerNotFound
	}
	if err := o.Votes.CanVote(player); err != nil {
		return err
	}
	player.SetVote(value)
	log.Debug().Str("module", "app.orch").Str("room", string(roomID)).Str("sid", string(sid)).Msg("vote recorded")
	o.broadcastRoom(room)
	return nil
}

// Reveal shows everyone's votes for the active story.
func (o *Orchestrator) Reveal(roomID domain.RoomID) error {
	room, ok := o.Rooms.Get(roomID)
	if !ok {
		return domain.ErrRoomNotFound
	}
	room.Revealed = true
	log.Info().Str("module", "app.orch").Str("room", string(roomID)).Msg("cards revealed")
	o.broadcastRoom(room)
	return nil
}
