package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageType — тип сообщения в очереди.
type MessageType string

// Типы сообщений.
const (
	MessageTypeWorkflowChanged MessageType = "workflow.changed"
)

// ChangeReason — причина изменения workflow.
type ChangeReason string

// Причины изменения.
const (
	ReasonCreated         ChangeReason = "created"
	ReasonStepAdded       ChangeReason = "step_added"
	ReasonDependencyAdded ChangeReason = "dependency_added"
	ReasonDeleted         ChangeReason = "deleted"
)

// Message — сообщение для публикации.
type Message struct {
	// ID — уникальный идентификатор сообщения.
	ID string `json:"id"`

	// Type — тип сообщения.
	Type MessageType `json:"type"`

	// Payload — полезная нагрузка.
	Payload any `json:"payload"`

	// Timestamp — время создания.
	Timestamp time.Time `json:"timestamp"`
}

// WorkflowChangedPayload — payload события об изменении workflow.
type WorkflowChangedPayload struct {
	WorkflowID uuid.UUID    `json:"workflow_id"`
	Slug       string       `json:"slug"`
	Reason     ChangeReason `json:"reason"`
}

// Publisher публикует события в RabbitMQ.
type Publisher struct {
	conn   *Connection
	logger *slog.Logger
}

// NewPublisher создаёт новый Publisher.
func NewPublisher(conn *Connection, logger *slog.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: logger,
	}
}

// Publish публикует сообщение в указанный exchange с routing key.
func (p *Publisher) Publish(ctx context.Context, exchange Exchange, routingKey RoutingKey, msg *Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	return p.conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.PublishWithContext(
			ctx,
			string(exchange),
			string(routingKey),
			false,
			false,
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent, // сообщение переживёт рестарт RabbitMQ
				MessageId:    msg.ID,
				Timestamp:    msg.Timestamp,
				Body:         body,
			},
		)
		if err != nil {
			return fmt.Errorf("publish to %s/%s: %w", exchange, routingKey, err)
		}

		p.logger.Debug("published message",
			"exchange", exchange,
			"routing_key", routingKey,
			"message_id", msg.ID,
			"type", msg.Type,
		)

		return nil
	})
}

// PublishWorkflowChanged публикует событие об изменении workflow.
// Потребитель: валидатор.
func (p *Publisher) PublishWorkflowChanged(ctx context.Context, workflowID uuid.UUID, slug string, reason ChangeReason) error {
	msg := &Message{
		ID:   uuid.New().String(),
		Type: MessageTypeWorkflowChanged,
		Payload: WorkflowChangedPayload{
			WorkflowID: workflowID,
			Slug:       slug,
			Reason:     reason,
		},
		Timestamp: time.Now(),
	}

	return p.Publish(ctx, ExchangeWorkflows, RoutingKeyChanged, msg)
}
