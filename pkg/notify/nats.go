package notify

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/banahub/bayshore-backend-go/log"
)

const (
	subjectCrownTransferred = "bayshore.crown.transferred"
	subjectTrailRecorded    = "bayshore.trail.recorded"
)

type (
	NatsPublisher struct {
		conn *nats.Conn
		l    *log.Logger
	}
	Option func(*NatsPublisher)
)

var _ Publisher = (*NatsPublisher)(nil)

func WithLogger(l *log.Logger) Option {
	return func(p *NatsPublisher) {
		p.l = l
	}
}

func NewNatsPublisher(conn *nats.Conn, opts ...Option) *NatsPublisher {
	ret := &NatsPublisher{
		conn: conn,
		l:    log.Default().Named("notify.nats"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

func (p *NatsPublisher) PublishCrownTransferred(ev *CrownTransferredEvent) error {
	return p.publish(fmt.Sprintf("%s.%d", subjectCrownTransferred, ev.Area), ev)
}

func (p *NatsPublisher) PublishTrailRecorded(ev *TrailRecordedEvent) error {
	return p.publish(fmt.Sprintf("%s.%d", subjectTrailRecorded, ev.Area), ev)
}

func (p *NatsPublisher) Close() {
	p.conn.Close()
}

func (p *NatsPublisher) publish(subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if err := p.conn.Publish(subject, data); err != nil {
		p.l.Error("publish failed",
			log.String("subject", subject), log.ErrorField(err))
		return err
	}
	p.l.Debug("published", log.String("subject", subject))
	return nil
}
