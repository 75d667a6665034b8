package events

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"storefront-admin-service/internal/models"
)

// Subjects published for the audit trail.
const (
	SubjectProductCreated     = "admin.product.created"
	SubjectProductUpdated     = "admin.product.updated"
	SubjectProductDeleted     = "admin.product.deleted"
	SubjectTransactionUpdated = "admin.transaction.updated"
	SubjectTransactionDeleted = "admin.transaction.deleted"
)

const auditStream = "ADMIN_AUDIT"

// AuditEvent is the envelope for every admin mutation published to NATS.
type AuditEvent struct {
	EventID    string                 `json:"eventId"`
	EventType  string                 `json:"eventType"`
	Actor      string                 `json:"actor"`
	ResourceID uint                   `json:"resourceId"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
}

// Publisher publishes audit events to NATS JetStream. It is optional: when
// NATS_URL is unset the service runs without it.
type Publisher struct {
	nc     *nats.Conn
	js     nats.JetStreamContext
	logger *logrus.Entry
}

// NewPublisher connects to NATS and ensures the audit stream exists.
func NewPublisher(logger *logrus.Logger) (*Publisher, error) {
	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = nats.DefaultURL
	}

	nc, err := nats.Connect(natsURL,
		nats.Name("storefront-admin-service"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to get JetStream context: %w", err)
	}

	if _, err := js.StreamInfo(auditStream); err != nil {
		if _, err := js.AddStream(&nats.StreamConfig{
			Name:     auditStream,
			Subjects: []string{"admin.>"},
		}); err != nil {
			logger.WithError(err).Warn("Failed to ensure audit stream (may already exist)")
		}
	}

	return &Publisher{
		nc:     nc,
		js:     js,
		logger: logger.WithField("component", "audit-events"),
	}, nil
}

// Close closes the NATS connection.
func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}

// PublishProductCreated publishes a product created audit event.
func (p *Publisher) PublishProductCreated(product *models.Product, actor string) {
	p.publish(SubjectProductCreated, AuditEvent{
		EventType:  SubjectProductCreated,
		Actor:      actor,
		ResourceID: product.ID,
		Payload: map[string]interface{}{
			"name":   product.Name,
			"price":  product.Price,
			"status": product.Status,
		},
	})
}

// PublishProductUpdated publishes a product updated audit event.
func (p *Publisher) PublishProductUpdated(product *models.Product, actor string) {
	p.publish(SubjectProductUpdated, AuditEvent{
		EventType:  SubjectProductUpdated,
		Actor:      actor,
		ResourceID: product.ID,
		Payload: map[string]interface{}{
			"name":     product.Name,
			"price":    product.Price,
			"status":   product.Status,
			"variants": len(product.Variants),
		},
	})
}

// PublishProductDeleted publishes a product deleted audit event.
func (p *Publisher) PublishProductDeleted(productID uint, actor string) {
	p.publish(SubjectProductDeleted, AuditEvent{
		EventType:  SubjectProductDeleted,
		Actor:      actor,
		ResourceID: productID,
	})
}

// PublishTransactionUpdated publishes a transaction updated audit event.
func (p *Publisher) PublishTransactionUpdated(transaction *models.Transaction, actor string) {
	p.publish(SubjectTransactionUpdated, AuditEvent{
		EventType:  SubjectTransactionUpdated,
		Actor:      actor,
		ResourceID: transaction.ID,
		Payload: map[string]interface{}{
			"status": transaction.Status,
		},
	})
}

// PublishTransactionDeleted publishes a transaction deleted audit event.
func (p *Publisher) PublishTransactionDeleted(transactionID uint, actor string) {
	p.publish(SubjectTransactionDeleted, AuditEvent{
		EventType:  SubjectTransactionDeleted,
		Actor:      actor,
		ResourceID: transactionID,
	})
}

// publish fills in envelope fields and publishes asynchronously so the
// request path never blocks on the broker.
func (p *Publisher) publish(subject string, event AuditEvent) {
	event.EventID = uuid.New().String()
	event.Timestamp = time.Now().UTC()

	go func() {
		data, err := json.Marshal(event)
		if err != nil {
			p.logger.WithError(err).Error("Failed to marshal audit event")
			return
		}

		if _, err := p.js.Publish(subject, data); err != nil {
			p.logger.WithFields(logrus.Fields{
				"eventType":  event.EventType,
				"resourceId": event.ResourceID,
			}).WithError(err).Error("Failed to publish audit event")
		}
	}()
}
