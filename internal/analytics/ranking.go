package analytics

import "sort"

// Group is one row of a leaderboard.
type Group struct {
	Key      string `json:"key"`
	Total    int64  `json:"total"`
	Sessions int    `json:"sessions"`
}

// KeyFunc extracts the grouping key of a record.
type KeyFunc[T Entry] func(T) string

// Rank groups records by key, sums amounts, and orders groups by total
// descending. Equal totals keep first-encountered order. topN <= 0 keeps all.
func Rank[T Entry](records []T, key KeyFunc[T], topN int) []Group {
	return RankSeeded(records, key, topN, nil)
}

// RankSeeded is Rank with a set of keys registered before any record, so
// they appear with zero totals when they have no records. Seeded keys take
// precedence in tie order over keys first seen in records.
func RankSeeded[T Entry](records []T, key KeyFunc[T], topN int, seed []string) []Group {
	groups := collect(records, key, seed)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Total > groups[j].Total
	})
	return truncate(groups, topN)
}

// RankBySessions orders groups by session count instead of amount.
func RankBySessions[T Entry](records []T, key KeyFunc[T], topN int) []Group {
	groups := collect(records, key, nil)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Sessions > groups[j].Sessions
	})
	return truncate(groups, topN)
}

func collect[T Entry](records []T, key KeyFunc[T], seed []string) []Group {
	index := make(map[string]int, len(seed))
	groups := make([]Group, 0, len(seed))
	for _, k := range seed {
		if _, ok := index[k]; ok {
			continue
		}
		index[k] = len(groups)
		groups = append(groups, Group{Key: k})
	}
	for _, rec := range records {
		k := key(rec)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].Total += rec.EntryAmount()
		groups[i].Sessions++
	}
	return groups
}

func truncate(groups []Group, topN int) []Group {
	if topN > 0 && len(groups) > topN {
		return groups[:topN]
	}
	return groups
}
