package indicator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"expiry-scanner/internal/domain/port"
)

// GPIODriver управляет линиями через GPIO одноплатника (periph.io).
type GPIODriver struct {
	lookup func(name string) gpio.PinIO

	mu    sync.Mutex
	lines map[string]*gpioLine
}

// NewGPIODriver инициализирует драйверы хоста. Имена линий как в gpioreg,
// например "GPIO27".
func NewGPIODriver() (*GPIODriver, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("gpio host init: %w", err)
	}
	return newGPIODriver(gpioreg.ByName), nil
}

func newGPIODriver(lookup func(name string) gpio.PinIO) *GPIODriver {
	return &GPIODriver{
		lookup: lookup,
		lines:  make(map[string]*gpioLine),
	}
}

// Line возвращает линию по имени пина. Повторный вызов отдаёт ту же линию.
func (d *GPIODriver) Line(name string) (port.IndicatorLine, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if l, ok := d.lines[name]; ok {
		return l, nil
	}

	pin := d.lookup(name)
	if pin == nil {
		return nil, fmt.Errorf("gpio pin %q not found", name)
	}
	l := &gpioLine{name: name, pin: pin}
	d.lines[name] = l
	return l, nil
}

// Close опускает все выданные линии и отпускает пины.
func (d *GPIODriver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var errs []error
	for name, l := range d.lines {
		if err := l.pin.Out(gpio.Low); err != nil {
			errs = append(errs, fmt.Errorf("gpio %s low: %w", name, err))
		}
		if err := l.pin.Halt(); err != nil {
			errs = append(errs, fmt.Errorf("gpio %s halt: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

type gpioLine struct {
	name string
	pin  gpio.PinIO
}

func (l *gpioLine) Name() string { return l.name }

func (l *gpioLine) Set(ctx context.Context, on bool) error {
	level := gpio.Low
	if on {
		level = gpio.High
	}
	if err := l.pin.Out(level); err != nil {
		return fmt.Errorf("gpio %s out %s: %w", l.name, level, err)
	}
	return nil
}

var _ port.IndicatorDriver = (*GPIODriver)(nil)
