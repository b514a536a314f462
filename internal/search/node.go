package search

import (
	"fmt"
	"strings"

	"github.com/lk16/reversi/internal/othello"
)

// Node is a position in the game tree.
type Node struct {
	// Move leads from the parent to this position. The root holds othello.RootMove.
	Move othello.Move

	// Mover is the color to move from this position.
	Mover othello.Square

	// Score starts as the heuristic evaluation and is replaced by the minimax value
	// for nodes with children.
	Score int

	// Children are ordered like the legal moves of the position.
	Children []*Node
}

// IsLeaf checks if the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// FindChild returns the child reached by move, or nil.
func (n *Node) FindChild(move othello.Move) *Node {
	for _, child := range n.Children {
		if child.Move == move {
			return child
		}
	}
	return nil
}

// Size returns the number of nodes in the tree.
func (n *Node) Size() int {
	size := 1
	for _, child := range n.Children {
		size += child.Size()
	}
	return size
}

// Height returns the number of edges on the longest path to a leaf.
func (n *Node) Height() int {
	height := 0
	for _, child := range n.Children {
		height = max(height, child.Height()+1)
	}
	return height
}

// String returns an indented representation of the tree, one node per line.
func (n *Node) String() string {
	var sb strings.Builder
	n.writeIndented(&sb, 0)
	return sb.String()
}

func (n *Node) writeIndented(sb *strings.Builder, depth int) {
	fmt.Fprintf(sb, "%s%s [%d] -> %s\n", strings.Repeat("  ", depth), n.Move, n.Score, n.Mover)

	for _, child := range n.Children {
		child.writeIndented(sb, depth+1)
	}
}
