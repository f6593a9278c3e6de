package inference

import (
	"context"
	"errors"
	"fmt"

	"energypredictor/internal/features"
)

// TreeNode is a single node of a regression tree. Internal nodes send a
// sample left when x[Feature] <= Threshold, right otherwise.
type TreeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
	Leaf      bool    `json:"leaf"`
}

// Tree is a flattened regression tree rooted at node 0
type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

// RandomForest averages the outputs of its regression trees
type RandomForest struct {
	name         string
	featureNames []string
	trees        []Tree
}

// NewRandomForest builds a forest after checking the schema and tree structure.
func NewRandomForest(name string, featureNames []string, trees []Tree) (*RandomForest, error) {
	if err := checkSchema(featureNames); err != nil {
		return nil, err
	}
	if len(trees) == 0 {
		return nil, fmt.Errorf("%w: forest %s has no trees", ErrInvalidArtifact, name)
	}
	for i, tree := range trees {
		if err := validateTree(tree, len(featureNames)); err != nil {
			return nil, fmt.Errorf("%w: tree %d: %v", ErrInvalidArtifact, i, err)
		}
	}

	return &RandomForest{
		name:         name,
		featureNames: copyNames(featureNames),
		trees:        trees,
	}, nil
}

func validateTree(tree Tree, numFeatures int) error {
	n := len(tree.Nodes)
	if n == 0 {
		return errors.New("empty tree")
	}
	for i, node := range tree.Nodes {
		if node.Leaf {
			continue
		}
		if node.Feature < 0 || node.Feature >= numFeatures {
			return fmt.Errorf("node %d: feature index %d out of range", i, node.Feature)
		}
		// Children must point forward so evaluation always terminates.
		if node.Left <= i || node.Left >= n || node.Right <= i || node.Right >= n {
			return fmt.Errorf("node %d: invalid children %d/%d", i, node.Left, node.Right)
		}
	}
	return nil
}

// Name returns the registry name
func (m *RandomForest) Name() string { return m.name }

// Kind returns KindRandomForest
func (m *RandomForest) Kind() string { return KindRandomForest }

// FeatureNames returns the ordered feature layout
func (m *RandomForest) FeatureNames() []string { return copyNames(m.featureNames) }

// NumTrees returns the number of trees in the forest
func (m *RandomForest) NumTrees() int { return len(m.trees) }

// Predict returns the mean leaf value across all trees
func (m *RandomForest) Predict(ctx context.Context, v features.Vector) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(m.featureNames) != len(v) {
		return 0, fmt.Errorf("%w: model expects %d features, vector has %d", ErrSchemaMismatch, len(m.featureNames), len(v))
	}

	sum := 0.0
	for _, tree := range m.trees {
		sum += evalTree(tree, v)
	}
	return sum / float64(len(m.trees)), nil
}

func evalTree(tree Tree, v features.Vector) float64 {
	idx := 0
	for {
		node := tree.Nodes[idx]
		if node.Leaf {
			return node.Value
		}
		if v[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
}
