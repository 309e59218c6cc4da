package app

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/avoron/planpoker/internal/core"
	"github.com/avoron/planpoker/internal/domain"
)

// SnapshotSink takes a best-effort dump of a room's features tree.
// Implementations must never block the caller.
type SnapshotSink interface {
	Offer(roomID domain.RoomID, features []*domain.Feature)
}

// Orchestrator owns the command handlers. Every mutation runs on the
// dispatch loop (see dispatcher.go), so handlers never race each other
// and broadcast always observes a fully-applied document.
type Orchestrator struct {
	Registry  *Registry
	Rooms     core.RoomStore
	IDs       core.IDGenerator
	Votes     VotePolicy
	Policy    Policy
	Snapshots SnapshotSink

	// EmitErrors switches on the ERROR event channel; the baseline
	// contract is silent no-op.
	EmitErrors bool

	commands chan command
}

func NewOrchestrator(reg *Registry, rooms core.RoomStore, ids core.IDGenerator) *Orchestrator {
	return &Orchestrator{
		Registry: reg,
		Rooms:    rooms,
		IDs:      ids,
		Policy:   SimplePolicy{},
		commands: make(chan command, 256),
	}
}

const (
	EventRoomState = "ROOM_STATE"
	EventError     = "ERROR"
)

type roomStateEvent struct {
	Type string `json:"type"`
	*domain.Room
}

type errorEvent struct {
	Type    string `json:"type"`
	Command string `json:"command,omitempty"`
	Error   string `json:"error"`
}

// broadcastRoom fans the full document out to every member of the room.
// A member that cannot keep up is handled per the backpressure policy.
func (o *Orchestrator) broadcastRoom(room *domain.Room) {
	frame, err := json.Marshal(roomStateEvent{Type: EventRoomState, Room: room})
	if err != nil {
		log.Error().Err(err).Str("module", "app.orch").Str("room", string(room.ID)).Msg("marshal room state")
		return
	}
	sent := 0
	for _, m := range o.Registry.MembersOfRoom(room.ID) {
		if err := m.Conn.TrySend(core.Frame(frame)); err != nil {
			switch o.Policy.OnBackPressure(room.ID, m.SID) {
			case KickMember:
				o.Registry.Cancel(m.SID)
			case DropFrame, NoAction:
			}
			continue
		}
		sent++
	}
	log.Debug().Str("module", "app.orch").Str("room", string(room.ID)).Int("sent_to", sent).Msg("room state broadcast")
}

func (o *Orchestrator) sendError(sid core.SessionID, kind string, cause error) {
	frame, err := json.Marshal(errorEvent{Type: EventError, Command: kind, Error: cause.Error()})
	if err != nil {
		return
	}
	_ = o.Registry.Send(sid, core.Frame(frame))
}

func (o *Orchestrator) offerSnapshot(room *domain.Room) {
	if o.Snapshots != nil {
		// Deep copy: the writer reads the tree off the mutation thread.
		o.Snapshots.Offer(room.ID, room.CloneFeatures())
	}
}
