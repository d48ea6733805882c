package vision

import "errors"

var (
	// ErrStreamNotOpened поток камеры не открылся
	ErrStreamNotOpened = errors.New("cannot open camera stream")

	// ErrNoFrame поток открыт, но кадр не прочитан
	ErrNoFrame = errors.New("failed to capture frame")
)
