package queue

import (
    "encoding/json"
    "time"

    "github.com/google/uuid"
    "github.com/streadway/amqp"

    "github.com/mailpost/mailing-backend/internal/model"
)

// DeliveryEventsQueue is the durable queue delivery attempts fan out to.
const DeliveryEventsQueue = "delivery_events"

// AttemptEvent mirrors a recorded MailAttempt for downstream consumers.
type AttemptEvent struct {
    AttemptID      int       `json:"attempt_id"`
    SendingID      int       `json:"sending_id"`
    RecipientEmail string    `json:"recipient_email"`
    Status         string    `json:"status"`
    ServerResponse string    `json:"server_response"`
    AttemptedAt    time.Time `json:"attempted_at"`
}

// Publisher is implemented by anything that can fan out attempt events.
// Publishing is best-effort; the delivery log in Postgres stays the source
// of truth.
type Publisher interface {
    PublishAttempt(a *model.MailAttempt, recipientEmail string) error
    Close() error
}

// AMQPPublisher publishes attempt events to RabbitMQ.
type AMQPPublisher struct {
    conn *amqp.Connection
    ch   *amqp.Channel
}

func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
    conn, err := amqp.Dial(url)
    if err != nil {
        return nil, err
    }

    ch, err := conn.Channel()
    if err != nil {
        conn.Close()
        return nil, err
    }

    _, err = ch.QueueDeclare(
        DeliveryEventsQueue,
        true,  // durable
        false, // delete when unused
        false, // exclusive
        false, // no-wait
        nil,   // arguments
    )
    if err != nil {
        ch.Close()
        conn.Close()
        return nil, err
    }

    return &AMQPPublisher{conn: conn, ch: ch}, nil
}

func (p *AMQPPublisher) PublishAttempt(a *model.MailAttempt, recipientEmail string) error {
    event := AttemptEvent{
        AttemptID:      a.ID,
        SendingID:      a.SendingID,
        RecipientEmail: recipientEmail,
        Status:         a.Status,
        ServerResponse: a.ServerResponse,
        AttemptedAt:    a.AttemptedAt,
    }

    body, err := json.Marshal(event)
    if err != nil {
        return err
    }

    return p.ch.Publish(
        "",                  // default exchange
        DeliveryEventsQueue, // routing key
        false,               // mandatory
        false,               // immediate
        amqp.Publishing{
            ContentType:  "application/json",
            DeliveryMode: amqp.Persistent,
            MessageId:    uuid.NewString(),
            Timestamp:    a.AttemptedAt,
            Body:         body,
        },
    )
}

func (p *AMQPPublisher) Close() error {
    if err := p.ch.Close(); err != nil {
        p.conn.Close()
        return err
    }
    return p.conn.Close()
}

var _ Publisher = (*AMQPPublisher)(nil)
