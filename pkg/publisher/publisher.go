// Package publisher sends computed cost summaries to Home Assistant
// over MQTT, so a home dashboard can track electricity spend next to
// the meters feeding it.
package publisher

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/jtuomin/sahkolasku/pkg/config"
	"github.com/jtuomin/sahkolasku/pkg/cost"
	"github.com/jtuomin/sahkolasku/pkg/logger"
)

const (
	defaultTopicPrefix = "sahkolasku"
	connectTimeout     = 10 * time.Second
	publishTimeout     = 5 * time.Second
)

// Payload is the JSON message published for one summary.
type Payload struct {
	CostEUR  float64 `json:"cost_eur"`
	UsageKWh float64 `json:"usage_kwh"`
	Hours    int     `json:"hours"`
	From     string  `json:"from"`
	To       string  `json:"to"`
}

// Publisher sends summaries to an MQTT broker.
type Publisher struct {
	client      mqtt.Client
	topicPrefix string
	logger      logger.Logger
}

// New connects to the broker named in the configuration.
func New(cfg config.HAConfig, log logger.Logger) (*Publisher, error) {
	if !cfg.Enabled {
		return nil, ErrPublishingDisabled
	}
	if cfg.Broker == "" {
		return nil, ErrNoBroker
	}

	topicPrefix := cfg.TopicPrefix
	if topicPrefix == "" {
		topicPrefix = defaultTopicPrefix
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s", cfg.Broker))
	opts.SetClientID("sahkolasku")
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectTimeout(connectTimeout)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
	}

	return &Publisher{
		client:      client,
		topicPrefix: topicPrefix,
		logger:      log,
	}, nil
}

// Publish sends one summary to the summary topic.
func (p *Publisher) Publish(summary cost.Summary) error {
	body, err := json.Marshal(NewPayload(summary))
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	topic := p.topicPrefix + "/summary"

	token := p.client.Publish(topic, 1, true, body)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("%w: %s", ErrPublishTimeout, topic)
	}
	if token.Error() != nil {
		return fmt.Errorf("publishing to %s: %w", topic, token.Error())
	}

	p.logger.Info("published cost summary", "topic", topic)

	return nil
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}

// NewPayload converts a summary into the published message shape,
// with cost rounded to cents and usage to whole kWh, matching the
// displayed values.
func NewPayload(summary cost.Summary) Payload {
	return Payload{
		CostEUR:  math.Round(summary.TotalCost*100) / 100,
		UsageKWh: math.Round(summary.TotalKWh),
		Hours:    summary.Records,
		From:     summary.From.Format(time.RFC3339),
		To:       summary.To.Format(time.RFC3339),
	}
}
