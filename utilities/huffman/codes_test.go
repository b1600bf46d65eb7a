package huffman_test

import (
	"crypto/rand"
	"strings"
	"testing"

	"github.com/dargueta/squeeze"
	h "github.com/dargueta/squeeze/utilities/huffman"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codesForText(t *testing.T, text string) h.CodeTable {
	return h.GenerateCodes(buildTreeFromText(t, text))
}

func assertPrefixFree(t *testing.T, table h.CodeTable) {
	seen := make(map[string]h.Symbol, len(table))
	for symbol, code := range table {
		assert.NotEmpty(t, code, "symbol %q has an empty code", rune(symbol))
		if other, exists := seen[code]; exists {
			t.Errorf("symbols %q and %q share code %q", rune(symbol), rune(other), code)
		}
		seen[code] = symbol
	}

	for symbolA, codeA := range table {
		for symbolB, codeB := range table {
			if symbolA != symbolB && strings.HasPrefix(codeB, codeA) {
				t.Errorf(
					"code %q of %q is a prefix of code %q of %q",
					codeA, rune(symbolA), codeB, rune(symbolB))
			}
		}
	}
}

func TestGenerateCodes__Example(t *testing.T) {
	codes := codesForText(t, "aabbbcc")
	assert.Equal(t, h.CodeTable{'b': "0", 'a': "10", 'c': "11"}, codes)
	assert.NoError(t, codes.Validate())
}

func TestGenerateCodes__SingleSymbol(t *testing.T) {
	codes := codesForText(t, "aaaa")
	require.Len(t, codes, 1)
	assert.Equal(t, "0", codes['a'])
}

func TestGenerateCodes__NilRoot(t *testing.T) {
	assert.Empty(t, h.GenerateCodes(nil))
}

func TestGenerateCodes__PrefixFree(t *testing.T) {
	randomData := make([]byte, 4096)
	rand.Read(randomData)

	inputs := map[string]string{
		"two symbols":    "ab",
		"skewed":         strings.Repeat("a", 1000) + "bcdefg",
		"every ascii":    asciiAlphabet(),
		"unicode":        "日本語のテキスト、そして English text too.",
		"random latin-1": latin1Runes(randomData),
	}

	for name, input := range inputs {
		t.Run(
			name,
			func(t *testing.T) {
				codes := codesForText(t, input)
				freqs, _ := h.CountFrequencies(symbolsOf(input))
				assert.Len(t, codes, freqs.Len(), "every symbol needs exactly one code")
				assertPrefixFree(t, codes)
				assert.NoError(t, codes.Validate())
			},
		)
	}
}

func TestCodeTableValidate__Failures(t *testing.T) {
	tests := []struct {
		Name  string
		Table h.CodeTable
	}{
		{"empty", h.CodeTable{}},
		{"empty code", h.CodeTable{'a': "", 'b': "1"}},
		{"not binary", h.CodeTable{'a': "0", 'b': "12"}},
		{"duplicate code", h.CodeTable{'a': "10", 'b': "10"}},
		{"prefix", h.CodeTable{'a': "1", 'b': "10", 'c': "0"}},
		{"distant prefix", h.CodeTable{'a': "01", 'b': "0100", 'c': "011", 'd': "1"}},
	}

	for _, test := range tests {
		t.Run(
			test.Name,
			func(t *testing.T) {
				assert.ErrorIs(t, test.Table.Validate(), squeeze.ErrInvalidCodeTable)
			},
		)
	}
}

func asciiAlphabet() string {
	var builder strings.Builder
	for i := 0; i < 128; i++ {
		builder.WriteByte(byte(i))
	}
	return builder.String()
}

// latin1Runes maps every byte to the code point with the same value.
func latin1Runes(data []byte) string {
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}
