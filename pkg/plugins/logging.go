package plugins

import (
	"context"
	"log/slog"

	"github.com/goliatone/go-codeinput/pkg/codeinput"
)

// Logging records every lifecycle hook it observes. A nil Logger uses the
// instance logger.
type Logging struct {
	Logger *slog.Logger
	Level  slog.Level
}

// NewLogging returns a logging plugin writing at debug level.
func NewLogging(logger *slog.Logger) *Logging {
	return &Logging{Logger: logger, Level: slog.LevelDebug}
}

func (l *Logging) ObservedAttributes() []string { return nil }

func (l *Logging) BeforeHighlight(inst *codeinput.Instance) {
	l.log(inst, codeinput.HookBeforeHighlight)
}

func (l *Logging) AfterHighlight(inst *codeinput.Instance) {
	l.log(inst, codeinput.HookAfterHighlight)
}

func (l *Logging) BeforeElementsAdded(inst *codeinput.Instance) {
	l.log(inst, codeinput.HookBeforeElementsAdded)
}

func (l *Logging) AfterElementsAdded(inst *codeinput.Instance) {
	l.log(inst, codeinput.HookAfterElementsAdded)
}

func (l *Logging) AttributeChanged(inst *codeinput.Instance, name, oldValue, newValue string) {
	l.log(inst, codeinput.HookAttributeChanged,
		slog.String("attribute", name),
		slog.String("old", oldValue),
		slog.String("new", newValue),
	)
}

func (l *Logging) log(inst *codeinput.Instance, hook codeinput.Hook, attrs ...slog.Attr) {
	logger := l.Logger
	if logger == nil {
		logger = inst.Logger()
	}
	attrs = append([]slog.Attr{
		slog.String("hook", hook.String()),
		slog.String("lang", inst.Lang()),
		slog.Int("length", len(inst.Value())),
	}, attrs...)
	logger.LogAttrs(context.Background(), l.Level, "code-input hook", attrs...)
}
