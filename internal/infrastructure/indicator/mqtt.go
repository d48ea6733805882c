package indicator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"expiry-scanner/internal/domain/port"
)

const (
	mqttConnectTimeout = 5 * time.Second
	mqttPublishTimeout = 2 * time.Second
	payloadOn          = "1"
	payloadOff         = "0"
)

// MQTTConfig параметры подключения к брокеру.
type MQTTConfig struct {
	Broker      string // host:port
	ClientID    string
	TopicPrefix string // состояние линии публикуется в <prefix>/<line>
	QoS         byte
}

// MQTTDriver публикует состояние линий в MQTT для удалённой панели индикации.
// Сообщения retained, чтобы панель видела текущее состояние после переподключения.
type MQTTDriver struct {
	client mqtt.Client
	cfg    MQTTConfig
	logger *slog.Logger

	mu    sync.Mutex
	lines map[string]*mqttLine
}

// NewMQTTDriver подключается к брокеру.
func NewMQTTDriver(cfg MQTTConfig, logger *slog.Logger) (*MQTTDriver, error) {
	if cfg.Broker == "" {
		return nil, errors.New("mqtt broker is required")
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL(cfg.Broker))
	opts.SetClientID(cfg.ClientID)
	opts.SetConnectTimeout(mqttConnectTimeout)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(mqttConnectTimeout) {
		return nil, fmt.Errorf("mqtt connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connection failed: %w", err)
	}

	return newMQTTDriver(client, cfg, logger), nil
}

func newMQTTDriver(client mqtt.Client, cfg MQTTConfig, logger *slog.Logger) *MQTTDriver {
	if logger == nil {
		logger = slog.Default()
	}
	return &MQTTDriver{
		client: client,
		cfg:    cfg,
		logger: logger.With("component", "indicator.mqtt"),
		lines:  make(map[string]*mqttLine),
	}
}

// Line возвращает линию, которая публикует в <prefix>/<name>.
func (d *MQTTDriver) Line(name string) (port.IndicatorLine, error) {
	if name == "" {
		return nil, errors.New("mqtt line name is empty")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if l, ok := d.lines[name]; ok {
		return l, nil
	}
	l := &mqttLine{name: name, topic: d.topic(name), driver: d}
	d.lines[name] = l
	return l, nil
}

// Close отключается от брокера.
func (d *MQTTDriver) Close() error {
	d.client.Disconnect(250)
	return nil
}

func (d *MQTTDriver) topic(name string) string {
	prefix := strings.TrimSuffix(d.cfg.TopicPrefix, "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

func (d *MQTTDriver) publish(topic, payload string) error {
	token := d.client.Publish(topic, d.cfg.QoS, true, payload)
	if !token.WaitTimeout(mqttPublishTimeout) {
		return fmt.Errorf("publish %s timeout", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	d.logger.Debug("published", "topic", topic, "payload", payload)
	return nil
}

type mqttLine struct {
	name   string
	topic  string
	driver *MQTTDriver
}

func (l *mqttLine) Name() string { return l.name }

func (l *mqttLine) Set(ctx context.Context, on bool) error {
	if err := ctx.Err(); err != nil && on {
		return err
	}
	payload := payloadOff
	if on {
		payload = payloadOn
	}
	return l.driver.publish(l.topic, payload)
}

func brokerURL(broker string) string {
	if strings.Contains(broker, "://") {
		return broker
	}
	return "tcp://" + broker
}

var _ port.IndicatorDriver = (*MQTTDriver)(nil)
