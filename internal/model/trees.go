package model

import (
	"errors"
	"fmt"
)

// Node is one entry of a flattened decision tree. Leaves have Left and Right
// set to -1 and carry Value; split nodes send x[Feature] <= Threshold left.
// Children always come after their parent in the slice.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

func (n Node) leaf() bool { return n.Left == -1 && n.Right == -1 }

type Tree struct {
	Nodes []Node `json:"nodes"`
}

func (t Tree) eval(row []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.leaf() {
			return n.Value
		}
		if row[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// TreeEnsemble covers both forest kinds. A random forest averages leaf
// probabilities; gradient boosting sums leaf log-odds on top of BaseScore.
type TreeEnsemble struct {
	Type         string   `json:"kind"`
	NumFeatures  int      `json:"num_features"`
	BaseScore    float64  `json:"base_score"`
	LearningRate *float64 `json:"learning_rate"`
	Trees        []Tree   `json:"trees"`
}

func (m *TreeEnsemble) Kind() string { return m.Type }

func (m *TreeEnsemble) PredictProba(row []float64) (float64, error) {
	if err := checkRow(row, m.NumFeatures); err != nil {
		return 0, err
	}

	var sum float64
	for _, t := range m.Trees {
		sum += t.eval(row)
	}
	if m.Type == KindRandomForest {
		return sum / float64(len(m.Trees)), nil
	}
	return sigmoid(m.BaseScore + *m.LearningRate*sum), nil
}

func (m *TreeEnsemble) validate(width int) error {
	if len(m.Trees) == 0 {
		return errors.New("tree ensemble has no trees")
	}
	if m.NumFeatures == 0 {
		m.NumFeatures = width
	}
	if m.NumFeatures != width {
		return fmt.Errorf("tree ensemble expects %d features for %d columns", m.NumFeatures, width)
	}
	if m.Type == KindGradientBoosting {
		if m.LearningRate == nil {
			lr := 1.0
			m.LearningRate = &lr
		}
		if *m.LearningRate <= 0 {
			return fmt.Errorf("learning rate %v must be positive", *m.LearningRate)
		}
	}

	for ti, t := range m.Trees {
		if len(t.Nodes) == 0 {
			return fmt.Errorf("tree %d is empty", ti)
		}
		for ni, n := range t.Nodes {
			if n.leaf() {
				if m.Type == KindRandomForest && (n.Value < 0 || n.Value > 1) {
					return fmt.Errorf("tree %d node %d: leaf probability %v outside [0,1]", ti, ni, n.Value)
				}
				continue
			}
			if n.Feature < 0 || n.Feature >= width {
				return fmt.Errorf("tree %d node %d: feature index %d out of range", ti, ni, n.Feature)
			}
			for _, child := range []int{n.Left, n.Right} {
				if child <= ni || child >= len(t.Nodes) {
					return fmt.Errorf("tree %d node %d: child %d out of order", ti, ni, child)
				}
			}
		}
	}
	return nil
}
