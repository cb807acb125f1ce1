package filecrypt

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// runContext carries the plumbing one EncryptFile/DecryptFile call needs
// through the pipeline's internal helpers: the caller's context.Context
// (for cancellation, spec.md §5) and a RunID correlating that call's log
// lines. It is the narrow descendant of Caddy's Context type described
// in SPEC_FULL.md §9 — filecrypt has no config-reload lifecycle, so only
// the cancellation-plumbing part of Caddy's Context survives here.
type runContext struct {
	context.Context
	runID uuid.UUID
}

func newRunContext(ctx context.Context) runContext {
	return runContext{Context: ctx, runID: uuid.New()}
}

// logger returns a logger annotated with this run's ID, so concurrent
// EncryptFile/DecryptFile calls can be told apart in logs.
func (rc runContext) logger() *zap.Logger {
	return Log().With(zap.String("run_id", rc.runID.String()))
}
