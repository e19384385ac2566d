package hash

import (
	"hash/crc32"

	"github.com/cespare/xxhash/v2"
)

// crc32cTable is pre-computed for the CRC32-Castagnoli polynomial.
// Computing this once avoids repeated MakeTable calls.
var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// CRC32C computes the CRC32-Castagnoli checksum of data.
// Uses hardware acceleration when available (SSE4.2, ARM CRC).
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, crc32cTable)
}

// Feature hashes a feature name to a 64-bit index.
//
// Callers mask the result into their store's index space. The upstream
// featurizer remains free to supply indices from any other hash; this is a
// convenience, not a contract.
func Feature(name string) uint64 {
	return xxhash.Sum64String(name)
}

// FeatureBytes is the []byte variant of Feature.
func FeatureBytes(name []byte) uint64 {
	return xxhash.Sum64(name)
}
