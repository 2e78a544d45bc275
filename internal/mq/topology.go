package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange — тип для имени обменника.
type Exchange string

// Queue — тип для имени очереди.
type Queue string

// RoutingKey — тип для ключа маршрутизации.
type RoutingKey string

// Топология Stepline.
const (
	// ExchangeWorkflows — обменник событий об изменении workflows.
	ExchangeWorkflows Exchange = "stepline.workflows"

	// QueueWorkflowsChanged — очередь валидатора.
	QueueWorkflowsChanged Queue = "workflows.changed"

	// RoutingKeyChanged — ключ маршрутизации событий изменения.
	RoutingKeyChanged RoutingKey = "changed"
)

// SetupTopology объявляет обменники, очереди и привязки.
// Идемпотентна: повторное объявление с теми же параметрами безопасно.
func SetupTopology(ctx context.Context, conn *Connection) error {
	return conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.ExchangeDeclare(
			string(ExchangeWorkflows), // name
			"direct",                  // type
			true,                      // durable
			false,                     // auto-deleted
			false,                     // internal
			false,                     // no-wait
			nil,                       // arguments
		)
		if err != nil {
			return fmt.Errorf("declare exchange %s: %w", ExchangeWorkflows, err)
		}

		_, err = ch.QueueDeclare(
			string(QueueWorkflowsChanged), // name
			true,                          // durable
			false,                         // auto-delete
			false,                         // exclusive
			false,                         // no-wait
			nil,                           // arguments
		)
		if err != nil {
			return fmt.Errorf("declare queue %s: %w", QueueWorkflowsChanged, err)
		}

		err = ch.QueueBind(
			string(QueueWorkflowsChanged),
			string(RoutingKeyChanged),
			string(ExchangeWorkflows),
			false, // no-wait
			nil,   // arguments
		)
		if err != nil {
			return fmt.Errorf("bind queue %s: %w", QueueWorkflowsChanged, err)
		}

		return nil
	})
}
