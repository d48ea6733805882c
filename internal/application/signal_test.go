package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"expiry-scanner/internal/domain/entity"
	"expiry-scanner/internal/domain/port"
)

func TestNewSignalPanel_RequiresEveryShelfLife(t *testing.T) {
	b := newBoard("red", "green")
	_, err := NewSignalPanel(map[entity.ShelfLife]port.IndicatorLine{
		entity.ShelfLifeExpired: b.lines["red"],
		entity.ShelfLifeValid:   b.lines["green"],
	}, nil)
	require.Error(t, err)
}

func TestSignalPanel_HoldIsExclusive(t *testing.T) {
	b := newBoard("red", "yellow", "green")
	b.lines["green"].on = true

	panel, err := NewSignalPanel(standardPanel(b), nil)
	require.NoError(t, err)

	require.NoError(t, panel.Hold(context.Background(), entity.ShelfLifeExpiringSoon, time.Millisecond))
	require.Equal(t, []string{"yellow"}, b.activated)
	require.Equal(t, 1, b.maxActive)
	require.Empty(t, b.active())
}

func TestSignalPanel_ReleaseAllIsIdempotent(t *testing.T) {
	b := newBoard("red", "yellow", "green")
	panel, err := NewSignalPanel(standardPanel(b), nil)
	require.NoError(t, err)

	require.NoError(t, panel.ReleaseAll(context.Background()))
	require.NoError(t, panel.ReleaseAll(context.Background()))
	require.Empty(t, b.active())
	require.Empty(t, b.activated)
}

func TestSignalPanel_ReleaseAllJoinsErrors(t *testing.T) {
	b := newBoard("red", "yellow", "green")
	broken := errors.New("pin busy")
	b.lines["yellow"].err = broken

	panel, err := NewSignalPanel(standardPanel(b), nil)
	require.NoError(t, err)

	err = panel.ReleaseAll(context.Background())
	require.ErrorIs(t, err, broken)
	require.Contains(t, err.Error(), "yellow")
}

func TestSignalPanel_HoldStopsOnCancel(t *testing.T) {
	b := newBoard("red", "yellow", "green")
	panel, err := NewSignalPanel(standardPanel(b), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	err = panel.Hold(ctx, entity.ShelfLifeValid, time.Minute)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(start), 5*time.Second)
	require.Empty(t, b.active())
}
