package features

import (
	"fmt"
	"time"

	"iptriage/triage"

	"github.com/rs/zerolog"
)

// Assembler is the feature assembler plus the pre-enriched entry point the
// offline corpus preparation uses.
type Assembler interface {
	triage.FeatureAssembler
	AssembleEnriched(epochSeconds int64, locale string, claimedLocation string, enrichment triage.EnrichmentResult) (vector []float64, err error)
}

type assemblerImpl struct {
	logger    zerolog.Logger
	addrs     triage.AddressClassifier
	geoDB     triage.GeoDB
	artifacts *Artifacts
	now       func() time.Time
}

// NewAssembler creates the feature assembler used on the online scoring
// path. The artifacts must come from the same training run that produced the
// classifier, or every prediction silently degrades.
func NewAssembler(logger zerolog.Logger, ac triage.AddressClassifier, geoDB triage.GeoDB, artifacts *Artifacts) Assembler {
	return &assemblerImpl{
		logger:    logger,
		addrs:     ac,
		geoDB:     geoDB,
		artifacts: artifacts,
		now:       time.Now,
	}
}

// AssembleOne turns one raw request into a schema-aligned feature vector.
// An unparseable timestamp falls back to the current time so a single
// malformed request still receives a verdict.
func (a *assemblerImpl) AssembleOne(req triage.RawRequest) (vector []float64, err error) {
	epochSeconds, tsErr := ParseTimestamp(req.Timestamp)
	if tsErr != nil {
		a.logger.Debug().Str("timestamp", req.Timestamp).Msg("Unparseable timestamp, falling back to current time")
		epochSeconds = a.now().Unix()
	}

	// The decision policy short-circuits local/reserved addresses before the
	// assembler runs, so normally only public addresses reach the resolver.
	var enrichment triage.EnrichmentResult
	if a.addrs.IsLocalOrReserved(req.Addr) {
		enrichment = triage.LocalOrReservedEnrichment()
	} else {
		enrichment = a.geoDB.Lookup(req.Addr)
	}

	columns := a.assembleColumns(epochSeconds, req.Locale, req.ClaimedLocation, enrichment)
	vector, err = ProjectColumns(columns, a.artifacts.Schema)
	return
}

// AssembleEnriched builds a schema-aligned vector from a record whose
// timestamp and enrichment were already computed. The offline corpus
// preparation uses this after its fit barrier.
func (a *assemblerImpl) AssembleEnriched(epochSeconds int64, locale string, claimedLocation string, enrichment triage.EnrichmentResult) (vector []float64, err error) {
	columns := a.assembleColumns(epochSeconds, locale, claimedLocation, enrichment)
	vector, err = ProjectColumns(columns, a.artifacts.Schema)
	return
}

func (a *assemblerImpl) assembleColumns(epochSeconds int64, locale string, claimedLocation string, enrichment triage.EnrichmentResult) map[string]float64 {
	vocabs := a.artifacts.Vocabularies

	columns := map[string]float64{
		FeatureTime:     float64(epochSeconds),
		FeatureLocale:   float64(vocabs[FeatureLocale].Encode(locale)),
		FeatureLocation: float64(vocabs[FeatureLocation].Encode(claimedLocation)),
		FeatureCountry:  float64(vocabs[FeatureCountry].Encode(enrichment.Country)),
		FeatureCity:     float64(vocabs[FeatureCity].Encode(enrichment.City)),
	}

	// A failed lookup has no coordinates; impute from the frozen training
	// means rather than feeding the model zeros it never trained on.
	if enrichment.Status == triage.EnrichmentUnknown {
		columns[FeatureLatitude] = a.artifacts.Means[FeatureLatitude]
		columns[FeatureLongitude] = a.artifacts.Means[FeatureLongitude]
	} else {
		columns[FeatureLatitude] = enrichment.Latitude
		columns[FeatureLongitude] = enrichment.Longitude
	}

	return columns
}

// ProjectColumns reorders named columns to exactly the expected schema,
// dropping extras. A missing required column fails loudly with a schema
// mismatch; it is never silently zero-filled.
func ProjectColumns(columns map[string]float64, schema []string) (vector []float64, err error) {
	vector = make([]float64, 0, len(schema))
	for _, name := range schema {
		value, ok := columns[name]
		if !ok {
			vector = nil
			err = fmt.Errorf("required column %q is absent: %w", name, triage.ErrSchemaMismatch)
			return
		}
		vector = append(vector, value)
	}

	return
}
