// Command providerdedup runs the provider-roster deduplication and quality
// pipeline once against an input CSV and writes its outputs to disk. The
// startup sequence (load config, init logger, init components, run) follows
// the teacher's root main.go, adapted from a long-lived HTTP server to a
// single run-to-completion batch job.
package main

import (
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/careroster/providerdedup/internal/config"
	"github.com/careroster/providerdedup/internal/pipeline"
	"github.com/careroster/providerdedup/internal/roster"
)

func main() {
	inputPath := flag.String("input", "", "path to the input roster CSV (required)")
	configDir := flag.String("config", "", "directory containing pipeline.yaml")
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		log.Fatalf("providerdedup: loading config: %v", err)
	}

	logger := initLogger(cfg.Env)
	defer logger.Sync()

	if *inputPath == "" {
		logger.Fatal("missing required -input flag")
	}

	logger.Info("starting provider dedup run",
		zap.String("input", *inputPath),
		zap.Float64("threshold", cfg.Threshold),
		zap.Bool("parallel", cfg.Parallel),
	)

	rows, err := roster.LoadCSV(*inputPath)
	if err != nil {
		logger.Fatal("failed to load roster", zap.Error(err))
	}

	result, err := pipeline.Preprocessing(rows, pipeline.Options{
		Threshold:      cfg.Threshold,
		MinBlock:       cfg.MinBlock,
		MaxBlock:       cfg.MaxBlock,
		Parallel:       cfg.Parallel,
		RemoveOutliers: cfg.RemoveOutliers,
		DataPath:       cfg.DataPath,
		Logger:         logger,
	})
	if err != nil {
		logger.Fatal("pipeline run failed", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.OutputPath, 0o755); err != nil {
		logger.Fatal("failed to create output directory", zap.Error(err))
	}

	if err := writeDupPairs(filepath.Join(cfg.OutputPath, "dup_pairs.csv"), result.DupPairs); err != nil {
		logger.Fatal("failed to write dup_pairs.csv", zap.Error(err))
	}
	if err := roster.WriteCSV(filepath.Join(cfg.OutputPath, "merged.csv"), result.Merged); err != nil {
		logger.Fatal("failed to write merged.csv", zap.Error(err))
	}
	if err := writeSummary(filepath.Join(cfg.OutputPath, "summary.yaml"), result.Summary); err != nil {
		logger.Fatal("failed to write summary.yaml", zap.Error(err))
	}

	logger.Info("run complete",
		zap.Int("total_records", result.Summary.TotalRecords),
		zap.Int("duplicate_pairs", result.Summary.DuplicatePairs),
		zap.Int("clusters", result.Summary.Clusters),
		zap.Int("final_records", result.Summary.FinalRecords),
		zap.Float64("data_quality_score", result.Summary.DataQualityScore),
	)
}

// initLogger mirrors the teacher's initLogger: production config in
// production, development config (human-readable, debug-level) otherwise.
func initLogger(env string) *zap.Logger {
	var zcfg zap.Config
	if env == "production" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	logger, err := zcfg.Build()
	if err != nil {
		log.Fatalf("providerdedup: cannot initialize logger: %v", err)
	}
	return logger
}

func writeDupPairs(path string, pairs []pipeline.DupPair) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{
		"i1", "i2", "provider_id_1", "provider_id_2", "name_1", "name_2",
		"score", "name_score", "npi_match", "addr_score", "phone_match", "license_score",
	}); err != nil {
		return err
	}
	for _, p := range pairs {
		if err := w.Write([]string{
			strconv.Itoa(p.I1), strconv.Itoa(p.I2), p.ProviderID1, p.ProviderID2, p.Name1, p.Name2,
			ftoa(p.Score), ftoa(p.NameScore), strconv.FormatBool(p.NPIMatch),
			ftoa(p.AddrScore), strconv.FormatBool(p.PhoneMatch), ftoa(p.LicenseScore),
		}); err != nil {
			return err
		}
	}
	return w.Error()
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}

func writeSummary(path string, s pipeline.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()
	return enc.Encode(summaryDoc{
		TotalRecords:       s.TotalRecords,
		CandidatePairs:     s.CandidatePairs,
		DuplicatePairs:     s.DuplicatePairs,
		UniqueInvolved:     s.UniqueInvolved,
		Clusters:           s.Clusters,
		OutliersRemoved:    s.OutliersRemoved,
		FinalRecords:       s.FinalRecords,
		ExpiredLicenses:    s.ExpiredLicenses,
		MissingNPI:         s.MissingNPI,
		ProvidersAvailable: s.ProvidersAvailable,
		CAState:            s.CAState,
		NYState:            s.NYState,
		FormattingIssues:   s.FormattingIssues,
		ComplianceRate:     s.ComplianceRate,
		DataQualityScore:   s.DataQualityScore,
	})
}

// summaryDoc maps pipeline.Summary onto the snake_case keys spec.md §6
// names for the summary artifact.
type summaryDoc struct {
	TotalRecords       int     `yaml:"total_records"`
	CandidatePairs     int     `yaml:"candidate_pairs"`
	DuplicatePairs     int     `yaml:"duplicate_pairs"`
	UniqueInvolved     int     `yaml:"unique_involved"`
	Clusters           int     `yaml:"clusters"`
	OutliersRemoved    int     `yaml:"outliers_removed"`
	FinalRecords       int     `yaml:"final_records"`
	ExpiredLicenses    int     `yaml:"expired_licenses"`
	MissingNPI         int     `yaml:"missing_npi"`
	ProvidersAvailable int     `yaml:"providers_available"`
	CAState            int     `yaml:"ca_state"`
	NYState            int     `yaml:"ny_state"`
	FormattingIssues   int     `yaml:"formatting_issues"`
	ComplianceRate     float64 `yaml:"compliance_rate"`
	DataQualityScore   float64 `yaml:"data_quality_score"`
}
