package indicator

import (
	"context"
	"log/slog"
	"sync"

	"expiry-scanner/internal/domain/port"
)

// LogDriver линии без железа: только пишет переключения в лог.
type LogDriver struct {
	logger *slog.Logger

	mu    sync.Mutex
	lines map[string]*logLine
}

// NewLogDriver создаёт драйвер для сухих прогонов.
func NewLogDriver(logger *slog.Logger) *LogDriver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogDriver{
		logger: logger.With("component", "indicator.log"),
		lines:  make(map[string]*logLine),
	}
}

// Line возвращает линию по имени, создавая её при первом обращении.
func (d *LogDriver) Line(name string) (port.IndicatorLine, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if l, ok := d.lines[name]; ok {
		return l, nil
	}
	l := &logLine{name: name, logger: d.logger}
	d.lines[name] = l
	return l, nil
}

// Close ничего не освобождает.
func (d *LogDriver) Close() error { return nil }

// Active имена включённых линий.
func (d *LogDriver) Active() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	var names []string
	for name, l := range d.lines {
		if l.isOn() {
			names = append(names, name)
		}
	}
	return names
}

type logLine struct {
	name   string
	logger *slog.Logger

	mu sync.Mutex
	on bool
}

func (l *logLine) Name() string { return l.name }

func (l *logLine) Set(ctx context.Context, on bool) error {
	l.mu.Lock()
	changed := l.on != on
	l.on = on
	l.mu.Unlock()

	if changed {
		state := "off"
		if on {
			state = "on"
		}
		l.logger.Info("indicator "+state, "line", l.name)
	}
	return nil
}

func (l *logLine) isOn() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on
}

var _ port.IndicatorDriver = (*LogDriver)(nil)
