package block

import (
	"testing"

	"github.com/careroster/providerdedup/internal/features"
)

func TestBuildAndCandidatePairs(t *testing.T) {
	feats := []features.DerivedFeatures{
		{NPIKey: "1234567890", PhoneDigits: "4155550100", LastClean: "lovelace", Zip3: "951"},
		{NPIKey: "1234567890", PhoneDigits: "4155550199", LastClean: "lovelac", Zip3: "951"},
		{NPIKey: "", PhoneDigits: "2125550000", LastClean: "smith", Zip3: "100"},
	}

	b := NewBlocker()
	index := b.Build(feats)
	if _, ok := index["npi:1234567890"]; !ok {
		t.Fatalf("expected npi: block to exist")
	}
	if len(index["npi:1234567890"]) != 2 {
		t.Errorf("npi block size = %d, want 2", len(index["npi:1234567890"]))
	}

	pairs := b.CandidatePairs(index)
	found := false
	for _, p := range pairs {
		if p.I == 0 && p.J == 1 {
			found = true
		}
		if p.I >= p.J {
			t.Errorf("pair %+v violates i < j", p)
		}
	}
	if !found {
		t.Errorf("expected pair (0,1) from shared NPI block")
	}
}

func TestCandidatePairsRespectsBlockSizeWindow(t *testing.T) {
	b := &Blocker{MinBlock: 2, MaxBlock: 2}
	index := Blocks{
		"k1": {0, 1},       // size 2, retained
		"k2": {0, 1, 2, 3}, // size 4, dropped
	}
	pairs := b.CandidatePairs(index)
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1 (only k1 retained)", len(pairs))
	}
	if pairs[0] != (Pair{I: 0, J: 1}) {
		t.Errorf("got %+v, want {0 1}", pairs[0])
	}
}

func TestCandidatePairsDeduplicatesAcrossBlocks(t *testing.T) {
	b := NewBlocker()
	index := Blocks{
		"k1": {0, 1},
		"k2": {0, 1},
	}
	pairs := b.CandidatePairs(index)
	if len(pairs) != 1 {
		t.Errorf("got %d pairs, want 1 deduplicated pair", len(pairs))
	}
}

func TestSortedNeighborhoodBucketing(t *testing.T) {
	feats := make([]features.DerivedFeatures, 45)
	for i := range feats {
		feats[i] = features.DerivedFeatures{LastClean: string(rune('a' + i%26))}
	}
	entries := snBlocks(feats)
	buckets := make(map[string]int)
	for _, e := range entries {
		buckets[e.key]++
	}
	if len(buckets) < 2 {
		t.Errorf("expected at least 2 sn buckets for 45 rows, got %d", len(buckets))
	}
}
