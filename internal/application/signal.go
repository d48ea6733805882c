package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"expiry-scanner/internal/domain/entity"
	"expiry-scanner/internal/domain/port"
)

// SignalPanel связывает группы срока годности с линиями индикации.
// В каждый момент включено не больше одной линии.
type SignalPanel struct {
	lines  map[entity.ShelfLife]port.IndicatorLine
	logger *slog.Logger
}

// NewSignalPanel создаёт панель. Для каждой из четырёх групп нужна линия;
// несколько групп могут делить одну линию.
func NewSignalPanel(lines map[entity.ShelfLife]port.IndicatorLine, logger *slog.Logger) (*SignalPanel, error) {
	for _, s := range []entity.ShelfLife{
		entity.ShelfLifeExpired,
		entity.ShelfLifeExpiringSoon,
		entity.ShelfLifeValid,
		entity.ShelfLifeUnparseable,
	} {
		if lines[s] == nil {
			return nil, fmt.Errorf("no indicator line for %s", s)
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SignalPanel{lines: lines, logger: logger}, nil
}

// Hold включает линию группы на время d и гарантированно выключает её,
// даже если ctx отменён раньше.
func (p *SignalPanel) Hold(ctx context.Context, s entity.ShelfLife, d time.Duration) (err error) {
	line, ok := p.lines[s]
	if !ok {
		return fmt.Errorf("no indicator line for %s", s)
	}

	if err := p.ReleaseAll(ctx); err != nil {
		return err
	}

	if err := line.Set(ctx, true); err != nil {
		return fmt.Errorf("activate %s: %w", line.Name(), err)
	}
	p.logger.Debug("indicator on", "line", line.Name(), "shelf_life", s, "hold", d)

	defer func() {
		if offErr := line.Set(context.WithoutCancel(ctx), false); offErr != nil {
			err = errors.Join(err, fmt.Errorf("deactivate %s: %w", line.Name(), offErr))
		}
		p.logger.Debug("indicator off", "line", line.Name())
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ReleaseAll выключает все линии панели. Ошибки отдельных линий собираются.
func (p *SignalPanel) ReleaseAll(ctx context.Context) error {
	seen := make(map[port.IndicatorLine]bool, len(p.lines))
	var errs []error
	for _, line := range p.lines {
		if seen[line] {
			continue
		}
		seen[line] = true
		if err := line.Set(ctx, false); err != nil {
			errs = append(errs, fmt.Errorf("deactivate %s: %w", line.Name(), err))
		}
	}
	return errors.Join(errs...)
}
