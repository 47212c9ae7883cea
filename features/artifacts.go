package features

import (
	"encoding/json"
	"fmt"
)

// Artifacts bundles the training-time state the assembler needs at serving
// time: the frozen categorical vocabularies, the per-column imputation means
// and the classifier's expected schema. Produced once by the training job,
// loaded read-only at startup, never mutated.
type Artifacts struct {
	Vocabularies map[string]*Vocabulary `json:"vocabularies"`
	Means        map[string]float64     `json:"means"`
	Schema       []string               `json:"schema"`
}

// LoadArtifacts reads and validates the feature artifacts file. Any missing
// piece is a configuration error that must prevent startup.
func LoadArtifacts(fs ArtifactFileSystem, fileName string) (artifacts *Artifacts, err error) {
	buf, err := fs.ReadFile(fileName)
	if err != nil {
		err = fmt.Errorf("error while loading feature artifacts from %v: %w", fileName, err)
		return
	}

	a := &Artifacts{}
	if err = json.Unmarshal(buf, a); err != nil {
		err = fmt.Errorf("error while decoding feature artifacts from %v: %w", fileName, err)
		return
	}

	if err = a.validate(); err != nil {
		return
	}

	artifacts = a
	return
}

// Save persists the artifacts produced by the training job.
func (a *Artifacts) Save(fs ArtifactFileSystem, fileName string) (err error) {
	buf, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return
	}

	err = fs.WriteFile(fileName, buf)
	return
}

func (a *Artifacts) validate() (err error) {
	if len(a.Schema) == 0 {
		err = fmt.Errorf("feature artifacts contain an empty schema")
		return
	}

	for _, name := range CategoricalFeatures {
		if a.Vocabularies[name] == nil {
			err = fmt.Errorf("feature artifacts are missing the vocabulary for %q", name)
			return
		}
	}

	for _, name := range []string{FeatureLatitude, FeatureLongitude} {
		if _, ok := a.Means[name]; !ok {
			err = fmt.Errorf("feature artifacts are missing the imputation mean for %q", name)
			return
		}
	}

	return
}
