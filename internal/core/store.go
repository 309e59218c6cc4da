package core

import (
	"sync"

	"github.com/avoron/planpoker/internal/domain"
	"github.com/rs/zerolog/log"
)

// storeImpl is a threadsafe in-memory room store. The mutation loop is
// the only writer of room contents; the lock guards the map itself for
// concurrent readers (REST surface).
type storeImpl struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]*domain.Room
}

func NewRoomStore() RoomStore {
	return &storeImpl{rooms: make(map[domain.RoomID]*domain.Room)}
}

func (s *storeImpl) GetOrCreate(id domain.RoomID) (*domain.Room, error) {
	s.mu.RLock()
	room, ok := s.rooms[id]
	s.mu.RUnlock()
	if ok {
		return room, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if room, ok = s.rooms[id]; ok {
		return room, nil
	}
	room, err := domain.NewRoom(id)
	if err != nil {
		return nil, err
	}
	s.rooms[id] = room
	log.Info().Str("module", "core.store").Str("room", string(id)).Msg("room created")
	return room, nil
}

func (s *storeImpl) Get(id domain.RoomID) (*domain.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	return room, ok
}

func (s *storeImpl) List() []RoomInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]RoomInfo, 0, len(s.rooms))
	for id, r := range s.rooms {
		out = append(out, RoomInfo{ID: id, PlayerCount: len(r.Players)})
	}
	return out
}
