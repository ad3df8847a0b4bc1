package services

import (
	"github.com/coral-tools/coralsearch/internal/core/domain"
)

// aggregator collapses the unordered hit stream into one entry per path.
// It is mutated by exactly one goroutine; producers only enqueue events.
type aggregator struct {
	best map[string]domain.SearchHit
}

func newAggregator() *aggregator {
	return &aggregator{best: make(map[string]domain.SearchHit)}
}

// apply folds one hit into the path mapping. A content hit always wins
// over a filename-only hit; among content hits the first seen is kept,
// which is the first matching line in file order.
func (a *aggregator) apply(hit domain.SearchHit) {
	cur, ok := a.best[hit.Path]
	if !ok {
		a.best[hit.Path] = hit
		return
	}
	if cur.Origin == domain.OriginContent {
		return
	}
	if hit.Origin == domain.OriginContent {
		a.best[hit.Path] = hit
	}
}

// resultSet returns the final lexicographically sorted set.
func (a *aggregator) resultSet() domain.ResultSet {
	rs := make(domain.ResultSet, 0, len(a.best))
	for _, hit := range a.best {
		rs = append(rs, hit)
	}
	rs.Sort()
	return rs
}
