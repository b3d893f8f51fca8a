package utils

import (
	"github.com/sasha-s/go-deadlock"
)

// Subscribers that fall this far behind lose messages instead of stalling
// the publisher.
const SUBSCRIBER_BUFFER = 64

type Topic[T any] struct {
	subscribers map[chan T]struct{}
	mutex       deadlock.Mutex
}

func NewTopic[T any]() *Topic[T] {
	return &Topic[T]{
		subscribers: make(map[chan T]struct{}),
	}
}

// Publish delivers value to every subscriber with room for it and returns how
// many subscribers dropped it.
func (t *Topic[T]) Publish(value T) (dropped int) {
	t.mutex.Lock()
	for subscriber := range t.subscribers {
		select {
		case subscriber <- value:
		default:
			dropped++
		}
	}
	t.mutex.Unlock()
	return dropped
}

type Subscriber[T any] struct {
	channel chan T
	topic   *Topic[T]
}

func (t *Topic[T]) Subscribe() *Subscriber[T] {
	channel := make(chan T, SUBSCRIBER_BUFFER)
	t.mutex.Lock()
	t.subscribers[channel] = struct{}{}
	t.mutex.Unlock()

	return &Subscriber[T]{channel, t}
}

func (t *Subscriber[T]) Recv() <-chan T {
	return t.channel
}

func (t *Subscriber[T]) Done() {
	topic := t.topic
	topic.mutex.Lock()
	delete(topic.subscribers, t.channel)
	topic.mutex.Unlock()
}
