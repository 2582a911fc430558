package core

import (
	"fmt"

	"github.com/asaskevich/EventBus"
)

// Event topics published after successful operations.
const (
	TopicSnapshotChanged       = "snapshot:changed"
	TopicSessionChanged        = "session:changed"
	TopicCartChanged           = "cart:changed"
	TopicAdministratorsChanged = "administrators:changed"
)

// Event describes which operation changed a part of the state.
type Event struct {
	Topic     string
	Operation string
}

type effect uint8

const (
	changedSnapshot effect = 1 << iota
	changedSession
	changedCart
	changedAdministrators
)

var effectTopics = []struct {
	flag  effect
	topic string
}{
	{changedSnapshot, TopicSnapshotChanged},
	{changedSession, TopicSessionChanged},
	{changedCart, TopicCartChanged},
	{changedAdministrators, TopicAdministratorsChanged},
}

// Subscribe registers fn for a topic. Handlers run synchronously after the
// operation has released the service lock and may call back into the service.
// Events raised by such calls are queued and delivered once the running
// handler returns. Handlers must not Subscribe or Unsubscribe.
func (s *Service) Subscribe(topic string, fn func(Event)) error {
	if err := s.bus.Subscribe(topic, fn); err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}
	return nil
}

// Unsubscribe removes a handler registered with Subscribe.
func (s *Service) Unsubscribe(topic string, fn func(Event)) error {
	return s.bus.Unsubscribe(topic, fn)
}

// publish queues the events for changed and drains the queue unless another
// call is already draining it. The bus holds its lock while handlers run, so
// only the draining call may touch it.
func (s *Service) publish(operation string, changed effect) {
	s.dispatchMu.Lock()
	for _, et := range effectTopics {
		if changed&et.flag != 0 {
			s.pending = append(s.pending, Event{Topic: et.topic, Operation: operation})
		}
	}
	if s.dispatching {
		s.dispatchMu.Unlock()
		return
	}
	s.dispatching = true
	s.dispatchMu.Unlock()

	for {
		ev, ok := s.nextEvent()
		if !ok {
			return
		}
		if s.bus.HasCallback(ev.Topic) {
			s.bus.Publish(ev.Topic, ev)
		}
	}
}

// nextEvent pops the oldest queued event. An empty queue ends the drain.
func (s *Service) nextEvent() (Event, bool) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()
	if len(s.pending) == 0 {
		s.dispatching = false
		s.pending = nil
		return Event{}, false
	}
	ev := s.pending[0]
	s.pending = s.pending[1:]
	return ev, true
}

func newBus() EventBus.Bus { return EventBus.New() }
