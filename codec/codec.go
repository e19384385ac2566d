// Package codec centralizes snapshot payload compression.
//
// Codec selection is a breaking-change boundary: snapshots store the codec
// name in their header, and bytes produced by one codec never decode under
// another. ByName resolves the stored name on load.
package codec

import "errors"

var (
	// ErrUnknownCodec is returned when a snapshot names a codec that is not
	// built in.
	ErrUnknownCodec = errors.New("codec: unknown codec")
)

// Codec compresses and decompresses snapshot payloads.
// Implementations must be safe for concurrent use.
type Codec interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
	Name() string
}

// Default is the codec used when none is configured.
var Default Codec = Raw{}

// ByName returns a built-in codec by its stable name.
//
// This is used by the self-describing snapshot format, which stores the codec
// name in its header.
func ByName(name string) (Codec, error) {
	switch name {
	case "raw":
		return Raw{}, nil
	case "zstd":
		return Zstd{}, nil
	case "lz4":
		return LZ4{}, nil
	default:
		return nil, ErrUnknownCodec
	}
}

// Raw is the identity codec.
type Raw struct{}

// Compress returns data unchanged.
func (Raw) Compress(data []byte) ([]byte, error) { return data, nil }

// Decompress returns data unchanged.
func (Raw) Decompress(data []byte) ([]byte, error) { return data, nil }

// Name returns the stable codec name.
func (Raw) Name() string { return "raw" }
