package app

import (
	"github.com/rs/zerolog/log"

	"github.com/avoron/planpoker/internal/core"
	"github.com/avoron/planpoker/internal/domain"
)

// Join puts the connection's player into the room, creating the room on
// first join. Rejoining with the same connection replaces the old entry
// so a reconnect never leaves a ghost player behind.
func (o *Orchestrator) Join(sid core.SessionID, roomID domain.RoomID, name string, role domain.Role, scrumMaster bool) error {
	if roomID == "" {
		return domain.ErrEmptyRoomID
	}
	player, err := domain.NewPlayer(domain.PlayerID(sid), name, role, scrumMaster)
	if err != nil {
		return err
	}
	if prev, ok := o.Registry.RoomOf(sid); ok && prev != roomID {
		o.removeFromRoom(sid, prev)
		log.Info().Str("module", "app.orch").Str("sid", string(sid)).Str("from_room", string(prev)).Msg("left previous room")
	}
	room, err := o.Rooms.GetOrCreate(roomID)
	if err != nil {
		return err
	}
	room.RemovePlayer(player.ID)
	room.Players = append(room.Players, player)
	o.Registry.SetRoom(sid, roomID)
	log.Info().Str("module", "app.orch").Str("sid", string(sid)).Str("room", string(roomID)).Str("name", name).Msg("player joined")
	o.broadcastRoom(room)
	return nil
}

// Leave removes the player from its room without dropping the
// connection; the member can join another room afterwards.
func (o *Orchestrator) Leave(sid core.SessionID) error {
	roomID, ok := o.Registry.RoomOf(sid)
	if !ok {
		return domain.ErrRoomNotFound
	}
	o.removeFromRoom(sid, roomID)
	log.Info().Str("module", "app.orch").Str("sid", string(sid)).Str("room", string(roomID)).Msg("player left")
	return nil
}

// Disconnect is fired by the transport when a connection drops. Unknown
// sessions are a no-op: already removed, or never joined.
func (o *Orchestrator) Disconnect(sid core.SessionID) {
	if roomID, ok := o.Registry.RoomOf(sid); ok {
		o.removeFromRoom(sid, roomID)
		log.Info().Str("module", "app.orch").Str("sid", string(sid)).Str("room", string(roomID)).Msg("player disconnected")
	}
	o.Registry.Unbind(sid)
}

func (o *Orchestrator) removeFromRoom(sid core.SessionID, roomID domain.RoomID) {
	o.Registry.ClearRoom(sid)
	room, ok := o.Rooms.Get(roomID)
	if !ok {
		return
	}
	if room.RemovePlayer(domain.PlayerID(sid)) {
		o.broadcastRoom(room)
	}
}
