// Package block generates candidate pairs for the pair scorer by grouping
// rows that share one of several blocking keys, plus a sorted-neighborhood
// sweep over surnames. The inverted-index shape (map[key][]index, size-
// capped, several independent key families) follows the gedcom duplicate
// detector's BlockIndex.
package block

import (
	"sort"
	"strconv"

	"github.com/careroster/providerdedup/internal/features"
)

const snBucketSize = 40

// DefaultMinBlock and DefaultMaxBlock bound retained block sizes; open
// question per spec design notes — not derivable from source, kept as
// named, documented tunables.
const (
	DefaultMinBlock = 1
	DefaultMaxBlock = 500
)

// Pair is an unordered pair of row indices with I < J.
type Pair struct {
	I, J int
}

// Blocker groups rows by blocking key and emits deduplicated candidate
// pairs from the retained blocks.
type Blocker struct {
	MinBlock int
	MaxBlock int
}

// NewBlocker constructs a Blocker with the spec's default block-size
// window.
func NewBlocker() *Blocker {
	return &Blocker{MinBlock: DefaultMinBlock, MaxBlock: DefaultMaxBlock}
}

// Blocks maps a blocking key to the list of row indices sharing it. Lists
// are not guaranteed sorted (sn: buckets follow surname order);
// CandidatePairs sorts each list before pairing.
type Blocks map[string][]int

// Build computes the blocking-key index over every row's DerivedFeatures.
func (b *Blocker) Build(feats []features.DerivedFeatures) Blocks {
	index := make(Blocks)
	add := func(key string, i int) {
		if key == "" {
			return
		}
		index[key] = append(index[key], i)
	}

	for i, f := range feats {
		if f.NPIKey != "" {
			add("npi:"+f.NPIKey, i)
		}
		if f.PhoneDigits != "" {
			if len(f.PhoneDigits) >= 7 {
				add("phone7:"+f.PhoneDigits[len(f.PhoneDigits)-7:], i)
			}
			if len(f.PhoneDigits) >= 3 {
				add("phone3:"+f.PhoneDigits[:3], i)
			}
		}
		if f.LicenseKey != "" && f.LicenseKey != "|" {
			add("lic:"+f.LicenseKey, i)
		}
		if f.Zip3 != "" {
			add("zip:"+f.Zip3, i)
		}
		if f.CityStateKey != "" && f.CityStateKey != "|" {
			add("cityst:"+f.CityStateKey, i)
		}
		if f.NameKey != "" {
			add("namekey:"+f.NameKey, i)
		}
		if f.Zip3 != "" && len(f.LastClean) >= 3 {
			add("loose:"+f.Zip3+"_"+f.LastClean[:3], i)
		}
	}

	for _, key := range snBlocks(feats) {
		add(key.key, key.idx)
	}

	return index
}

type snEntry struct {
	key string
	idx int
}

// snBlocks implements the sorted-neighborhood sweep: sort row indices by
// last_clean, then bucket contiguous positions in groups of snBucketSize.
func snBlocks(feats []features.DerivedFeatures) []snEntry {
	order := make([]int, len(feats))
	for i := range feats {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return feats[order[a]].LastClean < feats[order[b]].LastClean
	})

	entries := make([]snEntry, len(order))
	for pos, idx := range order {
		bucket := pos / snBucketSize
		entries[pos] = snEntry{key: "sn:" + strconv.Itoa(bucket), idx: idx}
	}
	return entries
}

// CandidatePairs retains blocks whose member count falls in [MinBlock,
// MaxBlock], then returns the deduplicated union of all unordered pairs
// drawn from each retained block's members.
func (b *Blocker) CandidatePairs(index Blocks) []Pair {
	seen := make(map[Pair]struct{})
	var pairs []Pair
	for _, members := range index {
		n := len(members)
		if n < b.MinBlock || n > b.MaxBlock {
			continue
		}
		sorted := append([]int(nil), members...)
		sort.Ints(sorted)
		for x := 0; x < len(sorted); x++ {
			for y := x + 1; y < len(sorted); y++ {
				p := Pair{I: sorted[x], J: sorted[y]}
				if _, dup := seen[p]; dup {
					continue
				}
				seen[p] = struct{}{}
				pairs = append(pairs, p)
			}
		}
	}
	return pairs
}
