// Package phraseidx implements PhraseIndex: an ordered set of phrases
// encoded as 3-byte-per-word-id byte strings, with combinatorial and
// sliding-window search over per-position candidate variants.
package phraseidx

// BE3Len is the number of bytes used to encode one word id.
const BE3Len = 3

// EncodeBE3 appends the 3 most-significant bytes of id's big-endian
// 32-bit rendering to dst. id must be < 1<<24.
func EncodeBE3(dst []byte, id uint32) []byte {
	return append(dst, byte(id>>16), byte(id>>8), byte(id))
}

// DecodeBE3 reads a 3-byte big-endian word id starting at b[0].
func DecodeBE3(b []byte) uint32 {
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

// EncodePhrase returns the phrase key for a sequence of word ids: the
// concatenation of each id's BE3 encoding.
func EncodePhrase(ids []uint32) []byte {
	out := make([]byte, 0, len(ids)*BE3Len)
	for _, id := range ids {
		out = EncodeBE3(out, id)
	}
	return out
}
