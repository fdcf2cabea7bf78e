// Package cluster groups accepted pairs into connected components via
// union-find and picks one representative per cluster by the lexicographic
// priority rule in spec §4.5. Path compression plus union-by-anything is
// sufficient; the node population is the set of endpoints of accepted
// pairs. Rows in no accepted pair never enter the forest; the pipeline
// keeps them as they are when it assembles the deduplicated roster.
package cluster

import (
	"sort"
	"strconv"

	"github.com/careroster/providerdedup/internal/features"
	"github.com/careroster/providerdedup/internal/normalize"
	"github.com/careroster/providerdedup/internal/roster"
)

// Cluster is a connected component with a sorted member list and a chosen
// representative.
type Cluster struct {
	ID             string
	Members        []int
	Representative int
}

type unionFind struct {
	parent map[int]int
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[int]int)}
}

func (u *unionFind) find(x int) int {
	if _, ok := u.parent[x]; !ok {
		u.parent[x] = x
		return x
	}
	root := x
	for u.parent[root] != root {
		root = u.parent[root]
	}
	for u.parent[x] != root {
		u.parent[x], x = root, u.parent[x]
	}
	return root
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}

// AcceptedPair is an edge (i, j) whose composite score met the acceptance
// threshold.
type AcceptedPair struct {
	I, J int
}

// Build runs union-find over pairs and returns one Cluster per connected
// component, each with its members sorted ascending and an id of
// "cluster_" + min(members).
func Build(pairs []AcceptedPair, rows []roster.Row, feats []features.DerivedFeatures) []Cluster {
	uf := newUnionFind()
	for _, p := range pairs {
		uf.union(p.I, p.J)
	}

	groups := make(map[int][]int)
	for _, p := range pairs {
		root := uf.find(p.I)
		groups[root] = append(groups[root], p.I, p.J)
	}

	clusters := make([]Cluster, 0, len(groups))
	for root, members := range groups {
		_ = root
		uniq := dedupeSorted(members)
		rep := representative(uniq, rows, feats)
		clusters = append(clusters, Cluster{
			ID:             clusterID(uniq),
			Members:        uniq,
			Representative: rep,
		})
	}

	sort.Slice(clusters, func(a, b int) bool {
		return clusters[a].Members[0] < clusters[b].Members[0]
	})
	return clusters
}

func dedupeSorted(xs []int) []int {
	seen := make(map[int]struct{}, len(xs))
	out := xs[:0:0]
	for _, x := range xs {
		if _, ok := seen[x]; ok {
			continue
		}
		seen[x] = struct{}{}
		out = append(out, x)
	}
	sort.Ints(out)
	return out
}

func clusterID(members []int) string {
	return "cluster_" + strconv.Itoa(members[0])
}

// representative picks the member maximizing, in lexicographic order:
// has_npi, has_license, last_updated (as a timestamp, absent -> 0),
// -row_index (smaller index preferred as final tie-break).
func representative(members []int, rows []roster.Row, feats []features.DerivedFeatures) int {
	best := members[0]
	bestKey := repKey(best, rows, feats)
	for _, m := range members[1:] {
		k := repKey(m, rows, feats)
		if greater(k, bestKey) {
			best = m
			bestKey = k
		}
	}
	return best
}

type repPriority struct {
	hasNPI       int
	hasLicense   int
	lastUpdated  int64
	negRowIndex  int
}

func repKey(idx int, rows []roster.Row, feats []features.DerivedFeatures) repPriority {
	f := feats[idx]
	hasNPI := 0
	if f.NPIKey != "" {
		hasNPI = 1
	}
	hasLicense := 0
	if f.LicenseKey != "" && f.LicenseKey != "|" {
		hasLicense = 1
	}
	var ts int64
	if idx < len(rows) {
		if t, ok := parseLastUpdated(rows[idx].LastUpdated); ok {
			ts = t
		}
	}
	return repPriority{hasNPI: hasNPI, hasLicense: hasLicense, lastUpdated: ts, negRowIndex: -idx}
}

func greater(a, b repPriority) bool {
	if a.hasNPI != b.hasNPI {
		return a.hasNPI > b.hasNPI
	}
	if a.hasLicense != b.hasLicense {
		return a.hasLicense > b.hasLicense
	}
	if a.lastUpdated != b.lastUpdated {
		return a.lastUpdated > b.lastUpdated
	}
	return a.negRowIndex > b.negRowIndex
}

// parseLastUpdated parses row's raw last_updated via normalize.NormalizeDateTime,
// returning its UnixNano timestamp. Absent/unparsable falls through to 0
// (the Unix epoch), which sorts below any parsed date after 1970-01-01;
// parsed dates before 1970 have negative timestamps and sort below absent.
func parseLastUpdated(raw string) (int64, bool) {
	t, ok := normalize.NormalizeDateTime(raw)
	if !ok {
		return 0, false
	}
	return t.UnixNano(), true
}
