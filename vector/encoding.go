package vector

import (
	"encoding/binary"
	"fmt"
	"math"
)

// EncodeEmbedding packs an entry embedding for the entries.embedding column:
// four little-endian IEEE 754 bytes per value, no header. The dimension is
// recovered from the blob size. An empty vector encodes to nil.
func EncodeEmbedding(vec []float32) ([]byte, error) {
	if len(vec) == 0 {
		return nil, nil
	}
	b := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
	return b, nil
}

// DecodeEmbedding unpacks a blob written by EncodeEmbedding. A blob whose size
// is not a multiple of four is rejected.
func DecodeEmbedding(b []byte) ([]float32, error) {
	n, err := BlobDim(b)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	vec := make([]float32, n)
	for i := 0; i < n; i++ {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return vec, nil
}

// BlobDim reports how many float32 values an encoded embedding holds.
func BlobDim(b []byte) (int, error) {
	if len(b)%4 != 0 {
		return 0, fmt.Errorf("vector: invalid embedding blob length %d (not multiple of 4)", len(b))
	}
	return len(b) / 4, nil
}
