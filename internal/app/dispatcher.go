package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/avoron/planpoker/internal/core"
)

type command struct {
	kind string
	sid  core.SessionID
	fn   func() error
}

// Do enqueues one command for the dispatch loop. Enqueue never blocks
// the transport's read pump: when the queue is full the command is
// dropped, same posture as the send side.
func (o *Orchestrator) Do(kind string, sid core.SessionID, fn func() error) {
	select {
	case o.commands <- command{kind: kind, sid: sid, fn: fn}:
	default:
		log.Warn().Str("module", "app.dispatch").Str("kind", kind).Str("sid", string(sid)).Msg("queue full, command dropped")
	}
}

// Run is the single mutation thread. Commands from one connection keep
// their send order; commands from different connections interleave in
// arrival order, one fully applied before the next begins.
func (o *Orchestrator) Run(ctx context.Context) {
	log.Info().Str("module", "app.dispatch").Msg("dispatch loop started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "app.dispatch").Msg("dispatch loop shutting down")
			return
		case cmd := <-o.commands:
			o.exec(cmd)
		}
	}
}

func (o *Orchestrator) exec(cmd command) {
	if err := cmd.fn(); err != nil {
		log.Debug().Err(err).Str("module", "app.dispatch").Str("kind", cmd.kind).Str("sid", string(cmd.sid)).Msg("command rejected")
		if o.EmitErrors {
			o.sendError(cmd.sid, cmd.kind, err)
		}
	}
}
