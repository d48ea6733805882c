package app

import (
	"context"
	"image"
	"sync"

	"expiry-scanner/internal/domain/entity"
	"expiry-scanner/internal/domain/port"
)

type fakeSource struct {
	err   error
	calls int
}

func (f *fakeSource) Capture(ctx context.Context) (image.Image, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

type fakeEncoder struct {
	err error
}

func (f *fakeEncoder) Encode(img image.Image) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("jpeg"), nil
}

func (f *fakeEncoder) MimeType() string { return "image/jpeg" }

type fakeExtractor struct {
	text  string
	err   error
	got   port.ExtractionRequest
	calls int
}

func (f *fakeExtractor) Extract(ctx context.Context, req port.ExtractionRequest) (string, error) {
	f.calls++
	f.got = req
	return f.text, f.err
}

type fakeNotifier struct {
	texts []string
	err   error

	// Состояние доски на момент вызова.
	board     *board
	activated []string
	active    []string

	// block держит вызов до отмены ctx.
	block bool
}

func (f *fakeNotifier) Notify(ctx context.Context, text string) error {
	f.texts = append(f.texts, text)
	if f.board != nil {
		f.board.mu.Lock()
		f.activated = append([]string(nil), f.board.activated...)
		f.board.mu.Unlock()
		f.active = f.board.active()
	}
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return f.err
}

// board следит за всеми линиями и помнит максимум одновременно включённых.
type board struct {
	mu        sync.Mutex
	lines     map[string]*fakeLine
	maxActive int
	activated []string
}

func newBoard(names ...string) *board {
	b := &board{lines: make(map[string]*fakeLine)}
	for _, n := range names {
		b.lines[n] = &fakeLine{name: n, board: b}
	}
	return b
}

func (b *board) active() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var on []string
	for name, l := range b.lines {
		if l.on {
			on = append(on, name)
		}
	}
	return on
}

type fakeLine struct {
	name  string
	on    bool
	err   error
	board *board
}

func (l *fakeLine) Name() string { return l.name }

func (l *fakeLine) Set(ctx context.Context, on bool) error {
	if l.err != nil {
		return l.err
	}
	b := l.board
	b.mu.Lock()
	defer b.mu.Unlock()
	l.on = on
	if on {
		b.activated = append(b.activated, l.name)
	}
	count := 0
	for _, other := range b.lines {
		if other.on {
			count++
		}
	}
	if count > b.maxActive {
		b.maxActive = count
	}
	return nil
}

// standardPanel повторяет раскладку по умолчанию: unparseable делит красную линию.
func standardPanel(b *board) map[entity.ShelfLife]port.IndicatorLine {
	return map[entity.ShelfLife]port.IndicatorLine{
		entity.ShelfLifeExpired:      b.lines["red"],
		entity.ShelfLifeExpiringSoon: b.lines["yellow"],
		entity.ShelfLifeValid:        b.lines["green"],
		entity.ShelfLifeUnparseable:  b.lines["red"],
	}
}
