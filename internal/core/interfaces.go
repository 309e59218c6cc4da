package core

import "github.com/avoron/planpoker/internal/domain"

// Frame is one marshaled wire message.
type Frame []byte

type SessionID string

// Conn abstracts the command/state transport endpoint.
// Owned by the adapter; the adapter must Close() it.
type Conn interface {
	TrySend(Frame) error
	Close()
}

// IDGenerator issues feature and story identifiers. Injected so tests
// can pin ids and production can use UUIDs.
type IDGenerator interface {
	NewID() string
}

// RoomInfo is a read-only occupancy view for APIs.
type RoomInfo struct {
	ID          domain.RoomID `json:"id"`
	PlayerCount int           `json:"player_count"`
}

// RoomStore owns every room document in the process. Rooms are created
// lazily and never deleted within this scope.
type RoomStore interface {
	GetOrCreate(id domain.RoomID) (*domain.Room, error)
	Get(id domain.RoomID) (*domain.Room, bool)
	List() []RoomInfo
}
