package huffman_test

import (
	"testing"

	"github.com/dargueta/squeeze"
	h "github.com/dargueta/squeeze/utilities/huffman"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTreeFromText(t *testing.T, text string) *h.Node {
	freqs, err := h.CountFrequencies(symbolsOf(text))
	require.NoError(t, err)
	root, err := h.BuildTree(freqs)
	require.NoError(t, err)
	require.NotNil(t, root)
	return root
}

// checkTreeInvariants verifies that every internal node has exactly two children
// and a frequency equal to the sum of theirs. It returns the number of leaves.
func checkTreeInvariants(t *testing.T, node *h.Node) int {
	if node.IsLeaf() {
		return 1
	}
	require.NotNil(t, node.Left, "internal node is missing its left child")
	require.NotNil(t, node.Right, "internal node is missing its right child")
	assert.Equal(t, node.Left.Freq+node.Right.Freq, node.Freq, "internal frequency is wrong")
	return checkTreeInvariants(t, node.Left) + checkTreeInvariants(t, node.Right)
}

// The two nodes with frequency 2 merge first. With the sequence tie-break, `a`
// (seen first) pops before `c`, and `b` (3) pops before the merged node (4).
func TestBuildTree__MergesLeastFrequentFirst(t *testing.T) {
	root := buildTreeFromText(t, "aabbbcc")

	assert.EqualValues(t, 7, root.Freq)
	require.True(t, root.Left.IsLeaf())
	assert.Equal(t, h.Symbol('b'), root.Left.Symbol)

	merged := root.Right
	require.False(t, merged.IsLeaf())
	assert.EqualValues(t, 4, merged.Freq)
	assert.Equal(t, h.Symbol('a'), merged.Left.Symbol)
	assert.Equal(t, h.Symbol('c'), merged.Right.Symbol)
}

func TestBuildTree__SingleSymbolIsLeafRoot(t *testing.T) {
	root := buildTreeFromText(t, "aaaa")
	assert.True(t, root.IsLeaf())
	assert.Equal(t, h.Symbol('a'), root.Symbol)
	assert.EqualValues(t, 4, root.Freq)
}

func TestBuildTree__Invariants(t *testing.T) {
	inputs := []string{
		"ab",
		"abracadabra",
		"mississippi river",
		"\x00\x01\x02\x03\x04\x05\x06\x07",
		"ééééèèêëëë→→→←",
	}

	for _, input := range inputs {
		t.Run(
			input,
			func(t *testing.T) {
				root := buildTreeFromText(t, input)
				freqs, _ := h.CountFrequencies(symbolsOf(input))
				assert.Equal(t, freqs.Len(), checkTreeInvariants(t, root), "wrong number of leaves")
				assert.Equal(t, freqs.Total(), root.Freq, "root frequency must equal input length")
			},
		)
	}
}

// The same input must always produce the same tree.
func TestBuildTree__Deterministic(t *testing.T) {
	input := "a man a plan a canal panama"
	expected := h.GenerateCodes(buildTreeFromText(t, input))
	for i := 0; i < 20; i++ {
		assert.Equal(t, expected, h.GenerateCodes(buildTreeFromText(t, input)))
	}
}

func TestBuildTree__Empty(t *testing.T) {
	root, err := h.BuildTree(nil)
	assert.ErrorIs(t, err, squeeze.ErrEmptyInput)
	assert.Nil(t, root)

	root, err = h.BuildTree(&h.FrequencyTable{})
	assert.ErrorIs(t, err, squeeze.ErrEmptyInput)
	assert.Nil(t, root)
}
