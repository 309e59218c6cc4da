package app

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/avoron/planpoker/internal/core"
	"github.com/avoron/planpoker/internal/domain"
)

// Read queries run on the dispatch loop too, so an outside reader never
// observes a half-applied mutation. A full queue fails the query rather
// than block the caller.

func (o *Orchestrator) RoomDocument(roomID domain.RoomID) ([]byte, bool) {
	type result struct {
		data []byte
		ok   bool
	}
	ch := make(chan result, 1)
	cmd := command{kind: "ROOM_DOCUMENT", fn: func() error {
		room, ok := o.Rooms.Get(roomID)
		if !ok {
			ch <- result{}
			return nil
		}
		data, err := json.Marshal(room)
		if err != nil {
			log.Error().Err(err).Str("module", "app.query").Str("room", string(roomID)).Msg("marshal room")
			ch <- result{}
			return nil
		}
		ch <- result{data: data, ok: true}
		return nil
	}}
	select {
	case o.commands <- cmd:
	default:
		return nil, false
	}
	r := <-ch
	return r.data, r.ok
}

func (o *Orchestrator) RoomInfos() []core.RoomInfo {
	ch := make(chan []core.RoomInfo, 1)
	cmd := command{kind: "ROOM_INFOS", fn: func() error {
		ch <- o.Rooms.List()
		return nil
	}}
	select {
	case o.commands <- cmd:
	default:
		return nil
	}
	return <-ch
}
