package features

import "sort"

// Feature names as they appear in the trained model's schema. The raw
// request fields keep their corpus column names; the enriched fields keep
// the names the geo enrichment step introduced.
const (
	FeatureTime      = "Time"
	FeatureLocale    = "Accept-Language"
	FeatureLocation  = "Location"
	FeatureCountry   = "country"
	FeatureCity      = "city"
	FeatureLatitude  = "latitude"
	FeatureLongitude = "longitude"
)

// CategoricalFeatures are the features encoded through a vocabulary.
var CategoricalFeatures = []string{FeatureLocale, FeatureLocation, FeatureCountry, FeatureCity}

// Vocabulary is a frozen mapping from a categorical feature's raw string
// values to stable integer codes. It is built exactly once, from the training
// corpus, and reused unchanged at inference time; recomputing it per call
// would collapse every single-row categorical value to the same code.
type Vocabulary struct {
	Codes map[string]int `json:"codes"`
}

// FitVocabulary assigns each distinct observed value a code. Codes follow
// the lexicographic order of the distinct values, so a vocabulary rebuilt
// from the same corpus is bit-identical.
func FitVocabulary(values []string) *Vocabulary {
	distinct := make(map[string]bool)
	for _, value := range values {
		distinct[value] = true
	}

	ordered := make([]string, 0, len(distinct))
	for value := range distinct {
		ordered = append(ordered, value)
	}
	sort.Strings(ordered)

	codes := make(map[string]int, len(ordered))
	for i, value := range ordered {
		codes[value] = i
	}

	return &Vocabulary{Codes: codes}
}

// Encode returns the frozen code for a value, or UnseenCode for a value the
// training corpus never contained. It is pure and never fails.
func (v *Vocabulary) Encode(value string) int {
	if code, ok := v.Codes[value]; ok {
		return code
	}
	return v.UnseenCode()
}

// UnseenCode is the reserved code for values absent from the training
// vocabulary: one past the highest assigned code.
func (v *Vocabulary) UnseenCode() int {
	return len(v.Codes)
}
