package training

import (
	"sync"

	"iptriage/features"
	"iptriage/triage"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultEnrichmentParallelism bounds the number of concurrent geo lookups
// during corpus preparation.
const DefaultEnrichmentParallelism = 8

// Prepared is the output of one corpus preparation pass: the frozen feature
// artifacts, the labeled feature matrix for the external model trainer, and
// the rows that survived filtering, aligned 1:1 with the matrix.
type Prepared struct {
	Artifacts *features.Artifacts
	Matrix    triage.FeatureMatrix
	Labels    []int
}

type preparerImpl struct {
	logger      zerolog.Logger
	addrs       triage.AddressClassifier
	geoDB       triage.GeoDB
	blacklist   triage.BlacklistEngine
	parallelism int
}

// Preparer turns a raw training corpus into feature artifacts plus a labeled
// matrix. It is a one-shot offline job, not safe for concurrent reuse.
type Preparer interface {
	Prepare(records []Record) (prepared *Prepared, err error)
}

// NewPreparer creates a corpus preparer.
func NewPreparer(logger zerolog.Logger, ac triage.AddressClassifier, geoDB triage.GeoDB, bl triage.BlacklistEngine, parallelism int) Preparer {
	if parallelism <= 0 {
		parallelism = DefaultEnrichmentParallelism
	}

	return &preparerImpl{
		logger:      logger,
		addrs:       ac,
		geoDB:       geoDB,
		blacklist:   bl,
		parallelism: parallelism,
	}
}

// Prepare runs the full corpus preparation pass. Per-record enrichment runs
// in parallel; the vocabulary fit completes over the whole surviving corpus
// before any row is encoded.
func (p *preparerImpl) Prepare(records []Record) (prepared *Prepared, err error) {
	rows := p.filterAndNormalize(records)
	enrichments := p.enrich(rows)

	for i := range rows {
		rows[i].enrichment = enrichments[rows[i].addr]
	}

	// Fit barrier: all aggregation over the corpus happens here, before the
	// first Encode call.
	artifacts := p.fitArtifacts(rows)

	assembler := features.NewAssembler(p.logger, p.addrs, p.geoDB, artifacts)

	matrix := make(triage.FeatureMatrix, 0, len(rows))
	labels := make([]int, 0, len(rows))
	for _, row := range rows {
		var vector []float64
		vector, err = assembler.AssembleEnriched(row.epochSeconds, row.locale, row.location, row.enrichment)
		if err != nil {
			return
		}

		matrix = append(matrix, vector)
		labels = append(labels, row.label)
	}

	prepared = &Prepared{Artifacts: artifacts, Matrix: matrix, Labels: labels}
	return
}

type normalizedRow struct {
	addr         string
	epochSeconds int64
	locale       string
	location     string
	label        int
	enrichment   triage.EnrichmentResult
}

func (p *preparerImpl) filterAndNormalize(records []Record) (rows []normalizedRow) {
	dropped := 0
	for _, rec := range records {
		if p.blacklist.Match(rec.Addr) {
			continue
		}

		epochSeconds, err := features.ParseTimestamp(rec.Timestamp)
		if err != nil {
			// Offline policy: a row with an unparseable timestamp is dropped,
			// unlike the online path which falls back to the current time.
			dropped++
			continue
		}

		rows = append(rows, normalizedRow{
			addr:         rec.Addr,
			epochSeconds: epochSeconds,
			locale:       rec.Locale,
			location:     rec.ClaimedLocation,
			label:        rec.ThreatLevel,
		})
	}

	if dropped > 0 {
		p.logger.Warn().Int("dropped", dropped).Msg("Dropped corpus rows with unparseable timestamps")
	}

	return
}

// enrich resolves each distinct address at most once, fanning lookups out
// across a bounded worker group.
func (p *preparerImpl) enrich(rows []normalizedRow) map[string]triage.EnrichmentResult {
	distinct := make(map[string]bool)
	for _, row := range rows {
		distinct[row.addr] = true
	}

	enrichments := make(map[string]triage.EnrichmentResult, len(distinct))
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(p.parallelism)

	for addr := range distinct {
		addr := addr
		g.Go(func() error {
			var enrichment triage.EnrichmentResult
			if p.addrs.IsLocalOrReserved(addr) {
				enrichment = triage.LocalOrReservedEnrichment()
			} else {
				enrichment = p.geoDB.Lookup(addr)
			}

			mu.Lock()
			enrichments[addr] = enrichment
			mu.Unlock()
			return nil
		})
	}

	// Lookups degrade to the unknown sentinel instead of failing.
	g.Wait()

	return enrichments
}

func (p *preparerImpl) fitArtifacts(rows []normalizedRow) *features.Artifacts {
	locales := make([]string, 0, len(rows))
	locations := make([]string, 0, len(rows))
	countries := make([]string, 0, len(rows))
	cities := make([]string, 0, len(rows))
	for _, row := range rows {
		locales = append(locales, row.locale)
		locations = append(locations, row.location)
		countries = append(countries, row.enrichment.Country)
		cities = append(cities, row.enrichment.City)
	}

	vocabularies := map[string]*features.Vocabulary{
		features.FeatureLocale:   features.FitVocabulary(locales),
		features.FeatureLocation: features.FitVocabulary(locations),
		features.FeatureCountry:  features.FitVocabulary(countries),
		features.FeatureCity:     features.FitVocabulary(cities),
	}

	return &features.Artifacts{
		Vocabularies: vocabularies,
		Means:        p.fitMeans(rows),
		Schema:       defaultSchema(),
	}
}

// fitMeans computes the per-column imputation means. Coordinates of rows
// whose lookup missed are excluded, the same way a column mean skips missing
// values; they are the rows the mean will later be imputed into.
func (p *preparerImpl) fitMeans(rows []normalizedRow) map[string]float64 {
	var timeSum float64
	var latSum, lonSum float64
	located := 0

	for _, row := range rows {
		timeSum += float64(row.epochSeconds)
		if row.enrichment.Status != triage.EnrichmentUnknown {
			latSum += row.enrichment.Latitude
			lonSum += row.enrichment.Longitude
			located++
		}
	}

	means := map[string]float64{
		features.FeatureTime:      0,
		features.FeatureLatitude:  0,
		features.FeatureLongitude: 0,
	}
	if len(rows) > 0 {
		means[features.FeatureTime] = timeSum / float64(len(rows))
	}
	if located > 0 {
		means[features.FeatureLatitude] = latSum / float64(located)
		means[features.FeatureLongitude] = lonSum / float64(located)
	}

	return means
}

func defaultSchema() []string {
	return []string{
		features.FeatureTime,
		features.FeatureLocale,
		features.FeatureLocation,
		features.FeatureCountry,
		features.FeatureCity,
		features.FeatureLatitude,
		features.FeatureLongitude,
	}
}
