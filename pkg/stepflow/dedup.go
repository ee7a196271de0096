package stepflow

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/randalmurphal/stepflow/pkg/stepflow/message"
)

// DefaultDedupCacheSize bounds the seen-key cache when deduplication
// is enabled and no explicit size is given.
const DefaultDedupCacheSize = 1000

// KeyFunc computes a deduplication identity for an event.
type KeyFunc func(event map[string]any) string

// DefaultKeyFunc keys an event by its string id when present,
// otherwise by a content hash of the type discriminant and the
// canonical JSON encoding of the payload. Two structurally equal
// anonymous events therefore collapse to one.
func DefaultKeyFunc(event map[string]any) string {
	o := message.Object(event)
	if id, ok := o.String("id"); ok && id != "" {
		return id
	}

	data, err := json.Marshal(event)
	if err != nil {
		data = []byte(o.Type())
	}
	h := sha256.New()
	h.Write([]byte(o.Type()))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// seenCache is a bounded FIFO set of event keys. When full, admitting
// a new key evicts the oldest. Not safe for concurrent use; the
// session's lock covers it.
type seenCache struct {
	keys  map[string]struct{}
	order []string
	limit int
}

func newSeenCache(limit int) *seenCache {
	if limit <= 0 {
		limit = DefaultDedupCacheSize
	}
	return &seenCache{
		keys:  make(map[string]struct{}, limit),
		order: make([]string, 0, limit),
		limit: limit,
	}
}

// Admit records the key and reports whether it was new.
func (c *seenCache) Admit(key string) bool {
	if _, seen := c.keys[key]; seen {
		return false
	}
	if len(c.order) >= c.limit {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.keys, oldest)
	}
	c.keys[key] = struct{}{}
	c.order = append(c.order, key)
	return true
}

// Forget removes a key so a later identical event is admitted again.
func (c *seenCache) Forget(key string) {
	if _, seen := c.keys[key]; !seen {
		return
	}
	delete(c.keys, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Reset drops all keys.
func (c *seenCache) Reset() {
	c.keys = make(map[string]struct{}, c.limit)
	c.order = c.order[:0]
}

// Len reports the number of cached keys.
func (c *seenCache) Len() int {
	return len(c.keys)
}
