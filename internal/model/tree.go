package model

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Node is a single node of a regression tree. Leaves carry a prediction in
// Value; internal nodes split on Feature < Threshold.
type Node struct {
	Leaf      bool    `json:"leaf"`
	Value     float64 `json:"value,omitempty"`
	Feature   int     `json:"feature,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
	Left      *Node   `json:"left,omitempty"`
	Right     *Node   `json:"right,omitempty"`
}

// Predict walks the tree for one feature vector.
func (n *Node) Predict(vec []float64) float64 {
	node := n
	for !node.Leaf {
		if vec[node.Feature] < node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Value
}

// growTree fits a least-squares regression tree on the rows selected by idx,
// predicting targets (the boosting residuals). Splits greedily minimize the
// sum of squared errors; recursion stops at maxDepth or when a side would
// fall below minLeaf samples.
func growTree(features [][]float64, targets []float64, idx []int, depth, maxDepth, minLeaf int) *Node {
	leafValue := func() float64 {
		vals := make([]float64, len(idx))
		for i, j := range idx {
			vals[i] = targets[j]
		}
		return stat.Mean(vals, nil)
	}

	if depth >= maxDepth || len(idx) < 2*minLeaf {
		return &Node{Leaf: true, Value: leafValue()}
	}

	feature, threshold, ok := bestSplit(features, targets, idx, minLeaf)
	if !ok {
		return &Node{Leaf: true, Value: leafValue()}
	}

	var left, right []int
	for _, j := range idx {
		if features[j][feature] < threshold {
			left = append(left, j)
		} else {
			right = append(right, j)
		}
	}

	return &Node{
		Feature:   feature,
		Threshold: threshold,
		Left:      growTree(features, targets, left, depth+1, maxDepth, minLeaf),
		Right:     growTree(features, targets, right, depth+1, maxDepth, minLeaf),
	}
}

// bestSplit scans every feature for the threshold with the largest SSE
// reduction, using sorted order and running sums so each feature costs
// O(n log n). Returns ok=false when no split separates the rows.
func bestSplit(features [][]float64, targets []float64, idx []int, minLeaf int) (int, float64, bool) {
	n := len(idx)
	if n < 2*minLeaf {
		return 0, 0, false
	}

	var (
		totalSum, totalSq float64
		bestGain          = 0.0
		bestFeature       = -1
		bestThreshold     float64
	)
	for _, j := range idx {
		totalSum += targets[j]
		totalSq += targets[j] * targets[j]
	}
	parentSSE := totalSq - totalSum*totalSum/float64(n)

	order := make([]int, n)
	for f := 0; f < len(features[idx[0]]); f++ {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool {
			return features[order[a]][f] < features[order[b]][f]
		})

		var leftSum, leftSq float64
		for i := 0; i < n-1; i++ {
			j := order[i]
			leftSum += targets[j]
			leftSq += targets[j] * targets[j]

			// Candidate split between distinct consecutive values only.
			cur := features[j][f]
			next := features[order[i+1]][f]
			if cur == next {
				continue
			}
			nl := i + 1
			nr := n - nl
			if nl < minLeaf || nr < minLeaf {
				continue
			}

			rightSum := totalSum - leftSum
			rightSq := totalSq - leftSq
			leftSSE := leftSq - leftSum*leftSum/float64(nl)
			rightSSE := rightSq - rightSum*rightSum/float64(nr)

			gain := parentSSE - leftSSE - rightSSE
			if gain > bestGain {
				bestGain = gain
				bestFeature = f
				bestThreshold = (cur + next) / 2
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}
