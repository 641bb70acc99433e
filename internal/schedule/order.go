package schedule

import (
	"sort"

	"projectdash/pkg/domain"
)

// Link states that TestCase immediately precedes Next.
type Link struct {
	TestCase string
	Next     string
}

// Links extracts occurs-before pairs from strategy rows, dropping rows where
// either side is blank.
func Links(records []domain.TestStrategyRecord) []Link {
	out := make([]Link, 0, len(records))
	for _, r := range records {
		if r.TestCase == "" || r.OccursBefore == "" {
			continue
		}
		out = append(out, Link{TestCase: r.TestCase, Next: r.OccursBefore})
	}
	return out
}

// Reconstruct returns the linear order described by links. A test case listed
// more than once keeps its last successor. An empty link set yields an empty
// order.
func Reconstruct(links []Link) ([]string, error) {
	if len(links) == 0 {
		return []string{}, nil
	}
	next := make(map[string]string, len(links))
	for _, l := range links {
		next[l.TestCase] = l.Next
	}
	successors := make(map[string]struct{}, len(next))
	for _, v := range next {
		successors[v] = struct{}{}
	}
	var heads []string
	for k := range next {
		if _, ok := successors[k]; !ok {
			heads = append(heads, k)
		}
	}
	if len(heads) != 1 {
		sort.Strings(heads)
		return nil, &domain.MalformedScheduleError{Heads: heads}
	}

	order := make([]string, 0, len(next)+1)
	visited := make(map[string]int, len(next)+1)
	for cur, ok := heads[0], true; ok; cur, ok = next[cur] {
		if at, seen := visited[cur]; seen {
			cycle := append(append([]string{}, order[at:]...), cur)
			return nil, &domain.MalformedScheduleError{Heads: heads, Cycle: cycle}
		}
		visited[cur] = len(order)
		order = append(order, cur)
	}
	return order, nil
}
