package huffman

import (
	"container/heap"

	"github.com/dargueta/squeeze"
)

// Node is a node in a Huffman tree. Leaves hold a symbol; internal nodes always
// have exactly two children and a frequency equal to the sum of theirs.
type Node struct {
	Symbol      Symbol
	Freq        int64
	Left, Right *Node
	// seq orders nodes of equal frequency in the queue. Lower pops first.
	seq int
}

// IsLeaf returns true if the node has no children.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

type nodeQueue []*Node

func (q nodeQueue) Len() int { return len(q) }
func (q nodeQueue) Less(i, j int) bool {
	if q[i].Freq != q[j].Freq {
		return q[i].Freq < q[j].Freq
	}
	return q[i].seq < q[j].seq
}
func (q nodeQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x interface{}) { *q = append(*q, x.(*Node)) }
func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[0 : n-1]
	return item
}

// BuildTree builds a Huffman tree from a frequency table and returns its root.
//
// If the table only has one symbol, the root is that symbol's leaf and no merge
// is performed.
func BuildTree(freqs *FrequencyTable) (*Node, error) {
	if freqs == nil || freqs.Len() == 0 {
		return nil, squeeze.ErrEmptyInput.WithMessage("frequency table has no symbols")
	}

	queue := make(nodeQueue, 0, freqs.Len())
	nextSeq := 0
	for _, symbol := range freqs.order {
		queue = append(queue, &Node{Symbol: symbol, Freq: freqs.counts[symbol], seq: nextSeq})
		nextSeq++
	}
	heap.Init(&queue)

	for queue.Len() > 1 {
		left := heap.Pop(&queue).(*Node)
		right := heap.Pop(&queue).(*Node)

		parent := &Node{
			Freq:  left.Freq + right.Freq,
			Left:  left,
			Right: right,
			seq:   nextSeq,
		}
		nextSeq++
		heap.Push(&queue, parent)
	}
	return heap.Pop(&queue).(*Node), nil
}
