package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("bookmarket-service/nats-publisher")

// Publisher sends JSON domain events with the trace context in message headers.
type Publisher struct {
	conn   *nats.Conn
	logger *logger.Logger
}

func NewPublisher(url string, log *logger.Logger, appName string) (*Publisher, error) {
	log.Info("NATS Publisher: connecting", zap.String("url", url))

	opts := []nats.Option{
		nats.Name(fmt.Sprintf("%s NATS Publisher", appName)),
		nats.Timeout(10 * time.Second),
		nats.ErrorHandler(func(_ *nats.Conn, sub *nats.Subscription, err error) {
			subject := ""
			if sub != nil {
				subject = sub.Subject
			}
			log.Error("NATS error", zap.String("subject", subject), zap.Error(err))
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(*nats.Conn) {
			log.Info("NATS connection closed")
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		log.Error("NATS Publisher: failed to connect", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}
	log.Info("NATS Publisher: connected", zap.String("url", conn.ConnectedUrl()))
	return &Publisher{conn: conn, logger: log.Named("NATSPublisher")}, nil
}

func (p *Publisher) Publish(ctx context.Context, subject string, data interface{}) error {
	ctx, span := tracer.Start(ctx, "NATS.Publish."+subject,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(attribute.String("messaging.destination.name", subject)))
	defer span.End()

	msg, err := newMessage(ctx, subject, data)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if err := p.conn.PublishMsg(msg); err != nil {
		p.logger.Error("Failed to publish message", zap.String("subject", subject), zap.Error(err))
		span.RecordError(err)
		return fmt.Errorf("failed to publish message to subject %s: %w", subject, err)
	}
	p.logger.Debug("Message published", zap.String("subject", subject), zap.Int("data_size_bytes", len(msg.Data)))
	return nil
}

// newMessage encodes data and injects the current trace context.
func newMessage(ctx context.Context, subject string, data interface{}) (*nats.Msg, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal data for subject %s: %w", subject, err)
	}
	msg := nats.NewMsg(subject)
	msg.Data = payload
	msg.Header = make(nats.Header)
	otel.GetTextMapPropagator().Inject(ctx, HeaderCarrier(msg.Header))
	return msg, nil
}

// HeaderCarrier adapts nats.Header to propagation.TextMapCarrier.
type HeaderCarrier nats.Header

func (c HeaderCarrier) Get(key string) string { return nats.Header(c).Get(key) }

func (c HeaderCarrier) Set(key, value string) { nats.Header(c).Set(key, value) }

func (c HeaderCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	if p.conn == nil || p.conn.IsClosed() {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.logger.Error("Failed to drain NATS connection", zap.Error(err))
		p.conn.Close()
	}
}
