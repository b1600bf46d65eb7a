// Package compression implements the run-length encoding used for image files.
//
// The input is treated as a sequence of raw bytes. Each byte is mapped to the
// character with the same code point (ISO 8859-1), so every byte value from 0 to
// 255 is a valid symbol. Each maximal run of one symbol is written as the symbol
// followed by the length of the run in decimal, with no padding or separator:
//
//	aaabbbbc  ->  a3b4c1
//	xyz       ->  x1y1z1
//
// The resulting text is mapped back to bytes the same way, one byte per
// character, so the output of a run of N copies of byte B is B followed by the
// ASCII digits of N.
//
// Nothing is escaped. A run whose symbol is itself an ASCII digit is
// indistinguishable from part of the previous run's length, so data containing
// the bytes 0x30 to 0x39 can't always be decoded correctly. For example "a55"
// encodes to "a152", which decodes as 152 copies of "a". This is a limitation of
// the format and is kept as-is. Data without digit bytes always survives a round
// trip.
//
// Since most bytes of real image data don't repeat, the output is usually about
// twice the size of the input.
package compression
