// Package huffman implements a Huffman entropy coder for text.
//
// Symbols are Unicode code points. Compression builds a frequency table over the
// whole input, merges the two least frequent nodes of a priority queue until a
// single root remains, and assigns every leaf the path from the root to it: "0"
// for each left branch and "1" for each right branch.
//
// The baseline output is the concatenation of every symbol's code written as
// literal '0' and '1' characters, so the "compressed" file is normally larger
// than the input. No code table is stored with it, which means it can't be
// decoded unless the table is kept separately. [WriteCodeTable] writes such a
// table, and [PackBits] offers a real eight-bits-per-byte form behind a
// versioned header.
//
// Text is read with universal newlines: "\r\n" and a lone "\r" both become a
// single "\n" symbol before counting.
//
// Ties in the priority queue are broken by sequence number. Leaves are numbered
// in the order their symbol first appears in the input, and every merged node
// is numbered after all nodes created before it. For a given input the tree, and
// therefore every code, is always the same.
package huffman
