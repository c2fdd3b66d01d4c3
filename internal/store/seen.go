package store

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Seen is a bounded set of alert identities. Entries fall out on capacity
// (least recently used first) or after the TTL, so memory stays flat no
// matter how long the process runs or how noisy the backend gets.
type Seen struct {
	lru *expirable.LRU[string, struct{}]
}

func NewSeen(maxKeys int, ttl time.Duration) *Seen {
	if maxKeys <= 0 {
		maxKeys = 4096
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Seen{lru: expirable.NewLRU[string, struct{}](maxKeys, nil, ttl)}
}

// Seen reports whether the key was marked and is still live, refreshing its
// recency so hot alerts are not evicted while the backend keeps serving them.
func (s *Seen) Seen(key string) bool {
	_, ok := s.lru.Get(key)
	return ok
}

func (s *Seen) Mark(key string) {
	s.lru.Add(key, struct{}{})
}

func (s *Seen) Len() int {
	return s.lru.Len()
}
