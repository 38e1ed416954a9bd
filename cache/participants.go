// Package cache holds the bounded membership-set cache that accelerates the
// hot participant check. It is strictly a read-through accelerator: a miss
// always falls back to storage and the cache is never the system of record.
package cache

import (
	"log/slog"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

// ParticipantCache maps a conversation ID to the set of its active
// participant user IDs. Capacity is fixed; inserting past it evicts the
// single least-recently-used entry, and a hit promotes the entry.
type ParticipantCache struct {
	entries *lru.Cache[uuid.UUID, map[uuid.UUID]struct{}]
	log     *slog.Logger
}

func NewParticipantCache(capacity int, log *slog.Logger) (*ParticipantCache, error) {
	entries, err := lru.New[uuid.UUID, map[uuid.UUID]struct{}](capacity)
	if err != nil {
		return nil, err
	}
	return &ParticipantCache{entries: entries, log: log}, nil
}

// Get returns a copy of the cached participant set. Callers get a copy so a
// later Put or membership mutation can never alias into a set they are
// still reading.
func (c *ParticipantCache) Get(conversationID uuid.UUID) (map[uuid.UUID]struct{}, bool) {
	set, ok := c.entries.Get(conversationID)
	if !ok {
		return nil, false
	}
	out := make(map[uuid.UUID]struct{}, len(set))
	for id := range set {
		out[id] = struct{}{}
	}
	return out, true
}

// Put inserts or overwrites the participant set for a conversation.
func (c *ParticipantCache) Put(conversationID uuid.UUID, userIDs []uuid.UUID) {
	set := make(map[uuid.UUID]struct{}, len(userIDs))
	for _, id := range userIDs {
		set[id] = struct{}{}
	}
	if evicted := c.entries.Add(conversationID, set); evicted {
		c.log.Debug("participant cache evicted LRU entry", "inserted", conversationID)
	}
}

// Delete invalidates one conversation. Called after every operation that
// adds, removes, or re-adds a participant.
func (c *ParticipantCache) Delete(conversationID uuid.UUID) {
	c.entries.Remove(conversationID)
}

// Len reports the number of cached conversations, for the stats endpoint.
func (c *ParticipantCache) Len() int {
	return c.entries.Len()
}
