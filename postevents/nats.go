package postevents

import (
	"context"

	"github.com/nats-io/nats.go"
	"github.com/yatube/backend/logger"
	"github.com/yatube/backend/post"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

type NatsPublisher struct {
	nc *nats.Conn
}

func NewNatsPublisher(nc *nats.Conn) *NatsPublisher {
	return &NatsPublisher{nc: nc}
}

func (p *NatsPublisher) PublishPostCreated(ctx context.Context, post *post.Post) error {
	return p.publish(ctx, SubjectPostCreated, post)
}

func (p *NatsPublisher) PublishPostEdited(ctx context.Context, post *post.Post) error {
	return p.publish(ctx, SubjectPostEdited, post)
}

func (p *NatsPublisher) publish(ctx context.Context, subject string, post *post.Post) error {
	msg, err := newNatsMsg(ctx, subject, post)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Debug("publishing post event", "subject", subject, "post_id", post.ID)
	return p.nc.PublishMsg(msg)
}

// newNatsMsg carries the trace context of ctx in the message headers.
func newNatsMsg(ctx context.Context, subject string, post *post.Post) (*nats.Msg, error) {
	data, err := marshalEvent(subject, post)
	if err != nil {
		return nil, err
	}
	msg := &nats.Msg{
		Subject: subject,
		Data:    data,
		Header:  nats.Header{},
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(msg.Header))
	return msg, nil
}
