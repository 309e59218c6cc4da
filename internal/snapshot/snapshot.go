// Package snapshot dumps each room's features tree to disk on a
// best-effort basis. A failed or skipped write never touches in-memory
// state and never delays a broadcast.
package snapshot

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/avoron/planpoker/internal/domain"
)

type job struct {
	roomID   domain.RoomID
	features []*domain.Feature
}

type Writer struct {
	dir  string
	jobs chan job
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir, jobs: make(chan job, 64)}
}

// Offer hands the tree to the worker without blocking; a full queue
// drops the snapshot, the next mutation will offer a fresher one anyway.
func (w *Writer) Offer(roomID domain.RoomID, features []*domain.Feature) {
	select {
	case w.jobs <- job{roomID: roomID, features: features}:
	default:
		log.Warn().Str("module", "snapshot").Str("room", string(roomID)).Msg("snapshot queue full, dropped")
	}
}

func (w *Writer) Run(ctx context.Context) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		log.Error().Err(err).Str("module", "snapshot").Str("dir", w.dir).Msg("mkdir failed, snapshots disabled")
		return
	}
	log.Info().Str("module", "snapshot").Str("dir", w.dir).Msg("snapshot writer started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "snapshot").Msg("snapshot writer shutting down")
			return
		case j := <-w.jobs:
			w.write(j)
		}
	}
}

func (w *Writer) write(j job) {
	data, err := json.MarshalIndent(j.features, "", "  ")
	if err != nil {
		log.Error().Err(err).Str("module", "snapshot").Str("room", string(j.roomID)).Msg("marshal snapshot")
		return
	}
	path := filepath.Join(w.dir, string(j.roomID)+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Error().Err(err).Str("module", "snapshot").Str("path", path).Msg("write snapshot")
	}
}
