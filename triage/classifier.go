package triage

// FeatureMatrix is a set of schema-aligned feature vectors, one row per
// surviving input record.
type FeatureMatrix [][]float64

// Classifier is a pretrained model treated as opaque: it takes a
// schema-conformant feature matrix and returns one class code per row.
type Classifier interface {
	Predict(m FeatureMatrix) (codes []int)
}
