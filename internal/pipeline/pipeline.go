// Package pipeline wires every stage — feature extraction, blocking,
// scoring, clustering, standardization, roster merge, outlier removal, and
// quality assessment — into the single fixed order spec.md §4.10 describes,
// the way pipeline.py's top-level run() composes its stage methods. This is
// the one package that holds no algorithm of its own; it is grounded on the
// teacher's orchestration layer the same way app/services composes
// repositories and matchers behind one entry point.
package pipeline

import (
	"sort"

	"go.uber.org/zap"

	"github.com/careroster/providerdedup/internal/block"
	"github.com/careroster/providerdedup/internal/cluster"
	"github.com/careroster/providerdedup/internal/features"
	"github.com/careroster/providerdedup/internal/merge"
	"github.com/careroster/providerdedup/internal/outlier"
	"github.com/careroster/providerdedup/internal/quality"
	"github.com/careroster/providerdedup/internal/roster"
	"github.com/careroster/providerdedup/internal/score"
)

// DefaultThreshold is the pair-score acceptance cutoff the driver applies
// when the caller's Options.Threshold is zero (spec.md §4.10).
const DefaultThreshold = 0.72

// Options configures one run of Preprocessing. Zero values of Threshold,
// MinBlock, MaxBlock and Logger fall back to their defaults. The bool
// fields have no such fallback: a zero RemoveOutliers skips the outlier
// filter, and a zero Parallel scores serially.
type Options struct {
	Threshold      float64
	MinBlock       int
	MaxBlock       int
	Parallel       bool
	RemoveOutliers bool
	DataPath       string
	Logger         *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Threshold == 0 {
		o.Threshold = DefaultThreshold
	}
	if o.MinBlock == 0 {
		o.MinBlock = block.DefaultMinBlock
	}
	if o.MaxBlock == 0 {
		o.MaxBlock = block.DefaultMaxBlock
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// DupPair is one accepted candidate pair, carrying both identifying fields
// and the full score breakdown for analyst review.
type DupPair struct {
	I1, I2       int
	ProviderID1  string
	ProviderID2  string
	Name1        string
	Name2        string
	Score        float64
	NameScore    float64
	NPIMatch     bool
	AddrScore    float64
	PhoneMatch   bool
	LicenseScore float64
}

// Summary is the comprehensive run summary spec.md §4.10/§6 describes.
type Summary struct {
	TotalRecords       int
	CandidatePairs     int
	DuplicatePairs     int
	UniqueInvolved     int
	Clusters           int
	OutliersRemoved    int
	FinalRecords       int
	ExpiredLicenses    int
	MissingNPI         int
	ProvidersAvailable int
	CAState            int
	NYState            int
	FormattingIssues   int
	ComplianceRate     float64
	DataQualityScore   float64
}

// Result is everything one Preprocessing run produces.
type Result struct {
	DupPairs []DupPair
	Clusters []cluster.Cluster
	Merged   []roster.Row
	Summary  Summary
}

// Preprocessing runs the full detection-to-quality-report pipeline over
// rows in the fixed order: extract features, block, score pairs, accept
// pairs meeting opts.Threshold, cluster, pick one representative row per
// cluster plus every singleton, standardize, left-join the external
// reference tables, optionally drop years_in_practice outliers, and score
// data quality over the ORIGINAL (pre-dedup) rows.
//
// An empty candidate-pair set is not an error: Preprocessing returns no dup
// pairs and no clusters, keeps every input row and passes it through
// standardize, merge and the optional outlier filter, and scores quality
// over the original roster.
func Preprocessing(rows []roster.Row, opts Options) (Result, error) {
	opts = opts.withDefaults()
	logger := opts.Logger

	if err := validate(rows); err != nil {
		return Result{}, err
	}

	extractor := features.NewExtractor(logger)
	feats := extractor.Extract(rows)

	blocker := &block.Blocker{MinBlock: opts.MinBlock, MaxBlock: opts.MaxBlock}
	blocks := blocker.Build(feats)
	pairs := blocker.CandidatePairs(blocks)

	summary := Summary{TotalRecords: len(rows), CandidatePairs: len(pairs)}

	if len(pairs) == 0 {
		logger.Info("no candidate pairs produced", zap.Int("rows", len(rows)))
		return finish(rows, feats, nil, nil, summary, opts)
	}

	scorer := score.NewScorer(feats, len(pairs))
	scored := scorer.ScoreAll(pairs, opts.Parallel)

	var accepted []cluster.AcceptedPair
	var dupPairs []DupPair
	for _, s := range scored {
		if s.Score.Total < opts.Threshold {
			continue
		}
		accepted = append(accepted, cluster.AcceptedPair{I: s.Pair.I, J: s.Pair.J})
		dupPairs = append(dupPairs, DupPair{
			I1: s.Pair.I, I2: s.Pair.J,
			ProviderID1: rows[s.Pair.I].ProviderID, ProviderID2: rows[s.Pair.J].ProviderID,
			Name1: feats[s.Pair.I].CleanName, Name2: feats[s.Pair.J].CleanName,
			Score: s.Score.Total, NameScore: s.Score.NameScore, NPIMatch: s.Score.NPIMatch,
			AddrScore: s.Score.AddrScore, PhoneMatch: s.Score.PhoneMatch, LicenseScore: s.Score.LicenseScore,
		})
	}
	sort.SliceStable(dupPairs, func(a, b int) bool { return dupPairs[a].Score > dupPairs[b].Score })

	summary.DuplicatePairs = len(dupPairs)

	clusters := cluster.Build(accepted, rows, feats)
	summary.Clusters = len(clusters)

	return finish(rows, feats, clusters, dupPairs, summary, opts)
}

// finish assembles the deduplicated roster (one representative per cluster
// plus every row untouched by any accepted pair), applies standardize,
// merge, and the optional outlier filter, and scores quality over the
// ORIGINAL rows.
func finish(rows []roster.Row, feats []features.DerivedFeatures, clusters []cluster.Cluster, dupPairs []DupPair, summary Summary, opts Options) (Result, error) {
	logger := opts.Logger

	inCluster := make(map[int]struct{})
	clusterOf := make(map[int]int, len(clusters))
	for ci, c := range clusters {
		for _, m := range c.Members {
			inCluster[m] = struct{}{}
			clusterOf[m] = ci
		}
	}

	var deduped []roster.Row
	keptRep := make(map[int]struct{}, len(clusters))
	for i, r := range rows {
		if _, dup := inCluster[i]; !dup {
			deduped = append(deduped, r)
			continue
		}
		ci := clusterOf[i]
		if clusters[ci].Representative != i {
			continue
		}
		if _, done := keptRep[ci]; done {
			continue
		}
		keptRep[ci] = struct{}{}
		deduped = append(deduped, r)
	}

	uniqueInvolved := len(inCluster)
	summary.UniqueInvolved = uniqueInvolved

	standardized := standardizeRows(deduped)

	merger := merge.NewMerger(opts.DataPath, logger)
	merged, err := merger.Merge(standardized)
	if err != nil {
		return Result{}, err
	}

	var outliersRemoved int
	final := merged
	if opts.RemoveOutliers {
		kept, removed := outlierFilter().Apply(merged)
		final = kept
		outliersRemoved = removed
	}
	summary.OutliersRemoved = outliersRemoved
	summary.FinalRecords = len(final)

	summary.ExpiredLicenses = countExpired(final)
	summary.MissingNPI = countMissingNPI(final)
	summary.ProvidersAvailable = countAccepting(final)
	summary.CAState = countState(final, "CA")
	summary.NYState = countState(final, "NY")

	q := quality.NewAssessor().Assess(rows, quality.UniquenessInput{UniqueInvolved: uniqueInvolved})
	summary.FormattingIssues = q.TotalFormatErrors
	summary.DataQualityScore = q.Overall
	summary.ComplianceRate = complianceRate(summary.ExpiredLicenses, summary.MissingNPI, summary.FinalRecords)

	return Result{
		DupPairs: dupPairs,
		Clusters: clusters,
		Merged:   final,
		Summary:  summary,
	}, nil
}
