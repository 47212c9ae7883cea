package triage

import "errors"

// ErrSchemaMismatch is returned when assembled features cannot be aligned to
// the classifier's expected schema. It is fatal for the request being scored
// and is never silently coerced into a verdict.
var ErrSchemaMismatch = errors.New("assembled features do not match the expected schema")

// FeatureAssembler turns one raw request into the numeric feature vector the
// classifier was trained on, using vocabularies, imputation means and schema
// frozen at training time.
type FeatureAssembler interface {
	AssembleOne(req RawRequest) (vector []float64, err error)
}
