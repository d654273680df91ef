// Package diagnostics adapts the PGN scanner's recoverable-error reports
// onto a structured zap logger, matching the rest of the codebase's
// logging conventions.
package diagnostics

import (
	"go.uber.org/zap"

	"github.com/discochess/polybook/internal/pgn"
)

// ZapSink reports scanner diagnostics through a *zap.Logger at Warn level.
type ZapSink struct {
	logger *zap.Logger
}

// NewZapSink returns a sink that logs through logger. A nil logger falls
// back to zap.NewNop().
func NewZapSink(logger *zap.Logger) *ZapSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapSink{logger: logger}
}

// Report implements pgn.DiagnosticSink.
func (z *ZapSink) Report(d pgn.Diagnostic) {
	z.logger.Warn("pgn: recoverable scan error",
		zap.String("state", d.State),
		zap.Int64("offset", d.Offset),
		zap.ByteString("window", d.Window),
	)
}

var _ pgn.DiagnosticSink = (*ZapSink)(nil)
