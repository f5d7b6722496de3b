package content

import (
	"sync"
	"time"
)

// postIDs hands out time-derived post ids that never repeat, even when two
// posts are created within the same millisecond.
type postIDs struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func newPostIDs(now func() time.Time) *postIDs {
	if now == nil {
		now = time.Now
	}
	return &postIDs{now: now}
}

func (g *postIDs) next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// observe keeps future ids above an id restored from storage.
func (g *postIDs) observe(id int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if id > g.last {
		g.last = id
	}
}
