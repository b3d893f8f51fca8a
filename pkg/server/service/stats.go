package service

import (
	"context"
	"time"

	"github.com/cfoust/tactilink/pkg/utils"

	"github.com/sasha-s/go-deadlock"
)

const (
	OpTranscribe        = "transcribe"
	OpReverseTranscribe = "reverse-transcribe"
	OpSignage           = "signage"
	OpMirrorSignage     = "mirror-signage"
)

// Event describes one completed operation.
type Event struct {
	Op       string
	Duration time.Duration
	Symbols  int
	CacheHit bool
}

type Stats struct {
	counts    map[string]uint64
	symbols   uint64
	cacheHits uint64
	busy      time.Duration
	mutex     deadlock.RWMutex
}

func NewStats() *Stats {
	return &Stats{
		counts: make(map[string]uint64),
	}
}

func (s *Stats) Record(event Event) {
	s.mutex.Lock()
	s.counts[event.Op]++
	s.symbols += uint64(event.Symbols)
	if event.CacheHit {
		s.cacheHits++
	}
	s.busy += event.Duration
	s.mutex.Unlock()
}

// Poll records events until ctx is done.
func (s *Stats) Poll(ctx context.Context, subscriber *utils.Subscriber[Event]) {
	defer subscriber.Done()

	for {
		select {
		case event := <-subscriber.Recv():
			s.Record(event)
		case <-ctx.Done():
			return
		}
	}
}

type Snapshot struct {
	Requests  map[string]uint64 `json:"requests"`
	Symbols   uint64            `json:"symbols"`
	CacheHits uint64            `json:"cache_hits"`
	// Total time spent in the codec and renderer, in seconds.
	Busy float64 `json:"busy"`
}

func (s *Stats) Snapshot() Snapshot {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	requests := make(map[string]uint64, len(s.counts))
	for op, count := range s.counts {
		requests[op] = count
	}

	return Snapshot{
		Requests:  requests,
		Symbols:   s.symbols,
		CacheHits: s.cacheHits,
		Busy:      s.busy.Seconds(),
	}
}
