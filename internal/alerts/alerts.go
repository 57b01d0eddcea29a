package alerts

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"dealertrack/internal/models"
)

// Publisher emits alerts when an operation's audit trail turns suspicious.
type Publisher interface {
	SuspiciousOperation(stats models.OperationStats) error
	Close()
}

// SuspiciousAlert is the message published for a flagged operation.
type SuspiciousAlert struct {
	AlertID         string    `json:"alert_id"`
	Operation       string    `json:"operation"`
	ChangeCount     int       `json:"change_count"`
	RegressionCount int       `json:"regression_count"`
	FlaggedAt       time.Time `json:"flagged_at"`
}

const (
	streamName     = "ALERTS"
	streamSubjects = "alerts.>"
	alertSubject   = "alerts.suspicious-operation"
)

// NATSPublisher publishes alerts to a JetStream stream.
type NATSPublisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewNATSPublisher connects to NATS and ensures the alert stream exists.
func NewNATSPublisher(url string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url, nats.Timeout(10*time.Second), nats.RetryOnFailedConnect(true), nats.MaxReconnects(5), nats.ReconnectWait(time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	if _, err := js.StreamInfo(streamName); err != nil {
		log.Printf("Stream %s not found, attempting to create it...", streamName)
		if _, createErr := js.AddStream(&nats.StreamConfig{
			Name:     streamName,
			Subjects: []string{streamSubjects},
			Storage:  nats.FileStorage,
		}); createErr != nil {
			nc.Close()
			return nil, fmt.Errorf("failed to create NATS stream %s: %w", streamName, createErr)
		}
		log.Printf("Successfully created NATS stream %s", streamName)
	}

	return &NATSPublisher{conn: nc, js: js}, nil
}

// SuspiciousOperation publishes one alert for the flagged operation.
func (p *NATSPublisher) SuspiciousOperation(stats models.OperationStats) error {
	alert := SuspiciousAlert{
		AlertID:         uuid.New().String(),
		Operation:       stats.Operation,
		ChangeCount:     stats.ChangeCount,
		RegressionCount: stats.RegressionCount,
		FlaggedAt:       time.Now().UTC(),
	}
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal alert for operation %s: %w", stats.Operation, err)
	}

	pubAck, err := p.js.Publish(alertSubject, payload)
	if err != nil {
		return fmt.Errorf("failed to publish alert for operation %s: %w", stats.Operation, err)
	}
	log.Printf("Published suspicious-operation alert %s for operation %s (Stream: %s, Sequence: %d)",
		alert.AlertID, stats.Operation, pubAck.Stream, pubAck.Sequence)
	return nil
}

func (p *NATSPublisher) Close() {
	p.conn.Close()
}

// NopPublisher is used when no NATS server is configured; alerts are only
// logged.
type NopPublisher struct{}

func (NopPublisher) SuspiciousOperation(stats models.OperationStats) error {
	log.Printf("Operation %s flagged suspicious (%d regressions); alert publishing disabled",
		stats.Operation, stats.RegressionCount)
	return nil
}

func (NopPublisher) Close() {}
