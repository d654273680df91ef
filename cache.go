package polybook

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/discochess/polybook/internal/query"
)

// queryCache memoises Find results by FEN string, grounded on the same
// hashicorp/golang-lru/v2 strategy the teacher's cachedstore/cachestrategy
// package wraps for shard caching.
type queryCache struct {
	cache *lru.Cache[string, *query.Result]
}

func newQueryCache(size int) *queryCache {
	c, err := lru.New[string, *query.Result](size)
	if err != nil {
		// Only returns an error for a non-positive size, already guarded
		// by the caller checking cfg.cacheSize > 0.
		panic(err)
	}
	return &queryCache{cache: c}
}

func (q *queryCache) get(fen string) (*query.Result, bool) {
	return q.cache.Get(fen)
}

func (q *queryCache) add(fen string, result *query.Result) {
	q.cache.Add(fen, result)
}

func (q *queryCache) len() int {
	return q.cache.Len()
}
