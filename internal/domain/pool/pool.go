package pool

import (
	"math/rand"
	"sync"
)

// Item is a single servable entry: a video, a poster, anything with an
// identifier and optional match tags.
type Item struct {
	ID    string
	Title string
	URL   string
	Tags  []string
}

// Scorer rates how well an item matches a free-text query on a 0-100 scale.
type Scorer func(query string, item Item) int

// Pool tracks a fixed universe of items and the subset that has not been
// served yet. When the remaining subset empties it is refilled from the
// universe before the next serve, so exhaustion is never observable from
// the outside.
type Pool struct {
	mu        sync.Mutex
	rng       *rand.Rand
	universe  []Item
	remaining []Item
}

// New constructs an empty pool.
func New() *Pool {
	return NewWithRand(nil)
}

// NewWithRand constructs a pool using the given RNG. A nil rng falls back
// to the shared math/rand source; tests pass a seeded one.
func NewWithRand(rng *rand.Rand) *Pool {
	return &Pool{rng: rng}
}

// Load populates the universe once. Calling it again when the universe is
// already non-empty is a no-op, matching the load-at-startup contract.
func (p *Pool) Load(items []Item) {
	p.LoadWithServed(items, nil)
}

// LoadWithServed populates the universe and leaves items the predicate
// marks as already served out of the first cycle. They return on the next
// refill, which is how a persisted played flag is reset.
func (p *Pool) LoadWithServed(items []Item, served func(Item) bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.universe) > 0 {
		return
	}
	p.universe = append([]Item(nil), items...)
	p.remaining = make([]Item, 0, len(p.universe))
	for _, item := range p.universe {
		if served != nil && served(item) {
			continue
		}
		p.remaining = append(p.remaining, item)
	}
}

// Len reports the universe size.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.universe)
}

// Remaining reports how many items have not been served in the current cycle.
func (p *Pool) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.remaining)
}

// ServeRandom picks one remaining item uniformly at random, removes it and
// returns it. The second return is false only when the universe is empty.
func (p *Pool) ServeRandom() (Item, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.universe) == 0 {
		return Item{}, false
	}
	p.refillIfEmptyLocked()
	idx := p.intn(len(p.remaining))
	item := p.remaining[idx]
	p.removeLocked(idx)
	return item, true
}

// ServeByMatch scores every remaining item against the query and serves the
// one with the strictly highest score, provided it reaches the threshold.
// Ties keep the earliest item in load order. When the best score falls
// below the threshold nothing is removed and ok is false.
//
// The refill guard runs before scoring: an exhausted pool is reset even
// though the match may still fail against the full universe. That fallback
// is intentional, it mirrors the reset-then-retry behavior of the serve
// contract.
func (p *Pool) ServeByMatch(query string, score Scorer, threshold int) (Item, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.universe) == 0 {
		return Item{}, false
	}
	p.refillIfEmptyLocked()

	bestIdx := -1
	bestScore := -1
	for i, item := range p.remaining {
		if s := score(query, item); s > bestScore {
			bestScore = s
			bestIdx = i
		}
	}
	if bestIdx < 0 || bestScore < threshold {
		return Item{}, false
	}
	item := p.remaining[bestIdx]
	p.removeLocked(bestIdx)
	return item, true
}

func (p *Pool) refillIfEmptyLocked() {
	if len(p.remaining) == 0 {
		p.remaining = append([]Item(nil), p.universe...)
	}
}

func (p *Pool) removeLocked(idx int) {
	p.remaining = append(p.remaining[:idx], p.remaining[idx+1:]...)
}

func (p *Pool) intn(n int) int {
	if n <= 1 {
		return 0
	}
	if p.rng != nil {
		return p.rng.Intn(n)
	}
	return rand.Intn(n)
}
