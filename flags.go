package squeeze

// Option is a set of flags controlling optional output artifacts. The zero value
// gives the baseline behavior: Huffman output is '0'/'1' text and nothing else
// is written.
type Option uint

const (
	// OptionWriteCodeTable writes the Huffman code table next to the output as
	// `<output>.codes.csv`, making the output decodable.
	OptionWriteCodeTable = Option(1 << iota)
	// OptionPackBits stores the Huffman bit string packed eight bits to a byte
	// behind a versioned header instead of as '0'/'1' characters.
	OptionPackBits
)

const OptionNone = Option(0)

// Has returns true if all the flags in `flag` are set in `o`.
func (o Option) Has(flag Option) bool {
	return o&flag == flag
}
