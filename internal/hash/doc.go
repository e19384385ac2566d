// Package hash provides the two hashing utilities used across banditgo:
// CRC32-Castagnoli checksums for snapshot integrity and xxhash for mapping
// feature names into the weight store's index space.
//
// CRC32C is hardware accelerated on x86 (SSE4.2) and ARM (CRC extension) and
// is the industry-standard choice for storage checksums (iSCSI, RocksDB,
// LevelDB). xxhash is used for feature hashing because it is the fastest
// high-quality 64-bit non-cryptographic hash available in pure Go.
package hash
