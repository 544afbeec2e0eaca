package notify

import "sync"

// LocalPublisher keeps events in process. Single node deployments and
// tests use it in place of the NATS publisher.
type LocalPublisher struct {
	mutex  sync.Mutex
	crowns []*CrownTransferredEvent
	trails []*TrailRecordedEvent
}

var _ Publisher = (*LocalPublisher)(nil)

func NewLocalPublisher() *LocalPublisher {
	return &LocalPublisher{}
}

func (p *LocalPublisher) PublishCrownTransferred(ev *CrownTransferredEvent) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.crowns = append(p.crowns, ev)
	return nil
}

func (p *LocalPublisher) PublishTrailRecorded(ev *TrailRecordedEvent) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.trails = append(p.trails, ev)
	return nil
}

func (p *LocalPublisher) Close() {}

// CrownEvents returns the events published so far.
func (p *LocalPublisher) CrownEvents() []*CrownTransferredEvent {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return append([]*CrownTransferredEvent{}, p.crowns...)
}

// TrailEvents returns the events published so far.
func (p *LocalPublisher) TrailEvents() []*TrailRecordedEvent {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return append([]*TrailRecordedEvent{}, p.trails...)
}
