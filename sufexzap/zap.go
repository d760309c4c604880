// Package sufexzap adapts sufexlog.Logger onto a go.uber.org/zap logger, the
// same structured-logging library pulled transitively through
// go-datatrails-common/logger in the wider retrieved pack. The sufex core
// itself never imports zap -- only this adapter does -- matching spec.md
// §6's framing of the logger as an external collaborator reached through a
// narrow interface.
package sufexzap

import (
	"go.uber.org/zap"

	"github.com/jogojapan/sufex/sufexlog"
)

type adapter struct {
	s *zap.SugaredLogger
}

// New wraps z as a sufexlog.Logger.
func New(z *zap.Logger) sufexlog.Logger {
	return &adapter{s: z.Sugar()}
}

func (a *adapter) Log(sev sufexlog.Severity, msg string, fields ...sufexlog.Field) {
	args := make([]any, 0, len(fields)*2)
	for _, f := range fields {
		args = append(args, f.Key, f.Val)
	}
	switch sev {
	case sufexlog.Trace, sufexlog.Debug:
		a.s.Debugw(msg, args...)
	case sufexlog.Info:
		a.s.Infow(msg, args...)
	case sufexlog.Warn:
		a.s.Warnw(msg, args...)
	default:
		a.s.Errorw(msg, args...)
	}
}
