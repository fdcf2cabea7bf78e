package score

import (
	"testing"

	"github.com/careroster/providerdedup/internal/block"
	"github.com/careroster/providerdedup/internal/features"
)

func adaLovelaceFeatures() (ri, rj features.DerivedFeatures) {
	ri = features.DerivedFeatures{
		CleanName:   "ada lovelace",
		NameGrams:   map[string]struct{}{"ad": {}, "da": {}},
		AddrText:    "100 main st san jose ca",
		AddrGrams:   map[string]struct{}{"10": {}, "00": {}},
		PhoneDigits: "4155550100",
		NPIKey:      "1234567890",
		LicenseKey:  "CA|A1",
	}
	rj = features.DerivedFeatures{
		CleanName:   "ada lovelace",
		NameGrams:   map[string]struct{}{"ad": {}, "da": {}},
		AddrText:    "200 other st san jose ca",
		AddrGrams:   map[string]struct{}{"20": {}, "00": {}},
		PhoneDigits: "4155550100",
		NPIKey:      "1234567890",
		LicenseKey:  "CA|A1",
	}
	return
}

func TestScoreExactNPITwin(t *testing.T) {
	ri, rj := adaLovelaceFeatures()
	s := NewScorer([]features.DerivedFeatures{ri, rj}, 10)
	ps := s.Score(0, 1)

	if !ps.NPIMatch {
		t.Errorf("expected NPIMatch = true")
	}
	if !ps.PhoneMatch {
		t.Errorf("expected PhoneMatch = true")
	}
	if ps.LicenseScore != 1.0 {
		t.Errorf("LicenseScore = %v, want 1.0", ps.LicenseScore)
	}
	// total = 0.27*1.0 + 0*1 + 0.08*addr + 0.50*1 + 0.15*1 >= 0.92
	if ps.Total < 0.90 {
		t.Errorf("Total = %v, want >= 0.90", ps.Total)
	}
}

func TestScoreSymmetry(t *testing.T) {
	ri, rj := adaLovelaceFeatures()
	s := NewScorer([]features.DerivedFeatures{ri, rj}, 10)
	a := s.Score(0, 1)
	b := s.Score(1, 0)
	if a != b {
		t.Errorf("Score(0,1) = %+v, Score(1,0) = %+v, want equal", a, b)
	}
}

func TestScoreEarlyExit(t *testing.T) {
	feats := []features.DerivedFeatures{
		{CleanName: "ada lovelace", NameGrams: map[string]struct{}{"ad": {}}},
		{CleanName: "bob johnson", NameGrams: map[string]struct{}{"bo": {}}},
	}
	s := NewScorer(feats, 10)
	ps := s.Score(0, 1)
	if ps.Total != 0.0 {
		t.Errorf("Total = %v, want 0.0 for early-exit gate", ps.Total)
	}
}

func TestScoreCacheMemoizes(t *testing.T) {
	ri, rj := adaLovelaceFeatures()
	s := NewScorer([]features.DerivedFeatures{ri, rj}, 10)
	first := s.Score(0, 1)
	second := s.Score(0, 1)
	if first != second {
		t.Errorf("cached score should be identical across calls")
	}
}

func TestScoreAllSerialAndParallelAgree(t *testing.T) {
	n := 25 // C(25,2) = 300 pairs, comfortably above the parallel floor
	feats := make([]features.DerivedFeatures, n)
	for i := range feats {
		feats[i] = features.DerivedFeatures{
			CleanName:   "ada lovelace",
			NameGrams:   map[string]struct{}{"ad": {}},
			AddrText:    "addr",
			AddrGrams:   map[string]struct{}{"ad": {}},
			PhoneDigits: "4155550100",
			NPIKey:      "1234567890",
			LicenseKey:  "CA|A1",
		}
	}
	var pairs []block.Pair
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, block.Pair{I: i, J: j})
		}
	}

	serial := NewScorer(feats, len(pairs)).ScoreAll(pairs, false)
	parallel := NewScorer(feats, len(pairs)).ScoreAll(pairs, true)

	if len(serial) != len(parallel) {
		t.Fatalf("length mismatch: serial=%d parallel=%d", len(serial), len(parallel))
	}
	for i := range serial {
		if serial[i] != parallel[i] {
			t.Errorf("mismatch at %d: serial=%+v parallel=%+v", i, serial[i], parallel[i])
		}
	}
}
