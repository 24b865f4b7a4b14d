package emit

import (
	"context"

	"go.uber.org/zap"
)

// LogEmitter writes events as structured log lines through a *zap.Logger.
// Msg becomes the log message; RunID and ProcessID become fields on every
// line; Meta entries become additional fields via zap.Any.
type LogEmitter struct {
	logger *zap.Logger
}

// NewLogEmitter wraps an existing *zap.Logger. Pass zap.NewNop() in tests
// that don't care about log output.
func NewLogEmitter(logger *zap.Logger) *LogEmitter {
	return &LogEmitter{logger: logger}
}

func (e *LogEmitter) Emit(ev Event) {
	fields := make([]zap.Field, 0, len(ev.Meta)+2)
	fields = append(fields, zap.String("run_id", ev.RunID), zap.Int("process_id", ev.ProcessID))
	for k, v := range ev.Meta {
		fields = append(fields, zap.Any(k, v))
	}
	e.logger.Info(ev.Msg, fields...)
}

func (e *LogEmitter) EmitBatch(_ context.Context, events []Event) error {
	for _, ev := range events {
		e.Emit(ev)
	}
	return nil
}

// Flush syncs the underlying zap core. Errors writing to certain fds (a
// terminal stdout, in particular) are expected from zap.Sync and ignored.
func (e *LogEmitter) Flush(_ context.Context) error {
	_ = e.logger.Sync()
	return nil
}
