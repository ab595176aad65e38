package contract

import (
	"context"
	"github.com/nats-io/nats.go/jetstream"
	"infinitech-web/outbound/email"
)

//go:generate mockgen -source=contract.go -destination=mocks/contract.go -package=mocks

// Mailer delivers a composed message and returns its message id.
type Mailer interface {
	Configured() bool
	Send(ctx context.Context, msg email.Message) (string, error)
}

// Publisher is the subset of jetstream.JetStream used to announce submissions.
type Publisher interface {
	Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}
