package banditgo

import "errors"

var (
	// ErrInvalidMagic is returned when a snapshot does not start with the
	// banditgo magic number.
	ErrInvalidMagic = errors.New("invalid snapshot magic")
	// ErrInvalidVersion is returned when a snapshot was written by an
	// incompatible format version.
	ErrInvalidVersion = errors.New("invalid snapshot version")
	// ErrChecksumMismatch is returned when a snapshot payload fails its
	// CRC32C integrity check.
	ErrChecksumMismatch = errors.New("snapshot checksum mismatch")
	// ErrTruncatedSnapshot is returned when a snapshot ends before its
	// declared payload.
	ErrTruncatedSnapshot = errors.New("truncated snapshot")
)
