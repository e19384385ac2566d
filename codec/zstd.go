package codec

import (
	"sync"

	"github.com/klauspost/compress/zstd"
)

var (
	zstdOnce    sync.Once
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
	zstdInitErr error
)

// zstdInit builds one shared encoder/decoder pair. EncodeAll/DecodeAll on a
// shared instance are safe for concurrent use.
func zstdInit() {
	zstdEncoder, zstdInitErr = zstd.NewWriter(nil)
	if zstdInitErr != nil {
		return
	}
	zstdDecoder, zstdInitErr = zstd.NewReader(nil)
}

// Zstd compresses snapshot payloads with Zstandard.
type Zstd struct{}

// Compress returns the zstd-compressed form of data.
func (Zstd) Compress(data []byte) ([]byte, error) {
	zstdOnce.Do(zstdInit)
	if zstdInitErr != nil {
		return nil, zstdInitErr
	}
	return zstdEncoder.EncodeAll(data, nil), nil
}

// Decompress reverses Compress.
func (Zstd) Decompress(data []byte) ([]byte, error) {
	zstdOnce.Do(zstdInit)
	if zstdInitErr != nil {
		return nil, zstdInitErr
	}
	return zstdDecoder.DecodeAll(data, nil)
}

// Name returns the stable codec name.
func (Zstd) Name() string { return "zstd" }
