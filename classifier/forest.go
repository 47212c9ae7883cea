package classifier

import (
	"encoding/json"
	"fmt"

	"iptriage/triage"

	"github.com/rs/zerolog"
)

// treeNode is one node of a serialized decision tree. Leaf nodes have
// Left == -1 and carry the class code in Class.
type treeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Class     int     `json:"class"`
}

type tree struct {
	Nodes []treeNode `json:"nodes"`
}

type forestModel struct {
	FeatureCount int    `json:"featureCount"`
	Trees        []tree `json:"trees"`
}

type forestImpl struct {
	logger zerolog.Logger
	model  forestModel
}

// NewForestClassifier loads a pretrained decision-forest artifact. The
// artifact is produced by the external training tooling; a missing or
// malformed artifact is a fatal configuration error.
func NewForestClassifier(logger zerolog.Logger, fs ModelFileSystem, fileName string) (c triage.Classifier, err error) {
	buf, err := fs.ReadFile(fileName)
	if err != nil {
		err = fmt.Errorf("error while loading classifier model from %v: %w", fileName, err)
		return
	}

	model := forestModel{}
	if err = json.Unmarshal(buf, &model); err != nil {
		err = fmt.Errorf("error while decoding classifier model from %v: %w", fileName, err)
		return
	}

	if len(model.Trees) == 0 {
		err = fmt.Errorf("classifier model from %v contains no trees", fileName)
		return
	}

	c = &forestImpl{logger: logger, model: model}
	return
}

// Predict returns one class code per input row, by majority vote over the
// forest's trees.
func (f *forestImpl) Predict(m triage.FeatureMatrix) (codes []int) {
	codes = make([]int, 0, len(m))
	for _, vector := range m {
		codes = append(codes, f.predictOne(vector))
	}
	return
}

func (f *forestImpl) predictOne(vector []float64) (code int) {
	votes := make(map[int]int)
	for _, t := range f.model.Trees {
		votes[f.walk(t, vector)]++
	}

	bestVotes := -1
	for class, n := range votes {
		// Ties break toward the lower class code, matching a deterministic
		// argmax over the vote histogram.
		if n > bestVotes || (n == bestVotes && class < code) {
			bestVotes = n
			code = class
		}
	}
	return
}

func (f *forestImpl) walk(t tree, vector []float64) (class int) {
	i := 0
	for {
		node := t.Nodes[i]
		if node.Left == -1 {
			class = node.Class
			return
		}

		if node.Feature >= len(vector) {
			// Schema-conformant vectors cannot hit this; bail out rather
			// than index out of range on a corrupt artifact.
			f.logger.Error().Int("feature", node.Feature).Msg("Classifier model references a feature beyond the vector length")
			class = -1
			return
		}

		if vector[node.Feature] <= node.Threshold {
			i = node.Left
		} else {
			i = node.Right
		}
	}
}
