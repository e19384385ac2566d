package banditgo

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hupe1980/banditgo/codec"
	"github.com/hupe1980/banditgo/epsilondecay"
	"github.com/hupe1980/banditgo/internal/binutil"
	"github.com/hupe1980/banditgo/internal/hash"
)

const (
	snapshotMagic   uint32 = 0x4F474442 // "BDGO", little-endian on disk
	snapshotVersion uint32 = 1

	// maxCodecNameLen bounds the codec name accepted from a snapshot header
	// so a corrupted length cannot drive allocation.
	maxCodecNameLen = 64

	// maxSnapshotPayload bounds the compressed payload length accepted from a
	// snapshot header for the same reason. 64 MiB comfortably covers the
	// largest ensemble the selector accepts.
	maxSnapshotPayload = 1 << 26
)

// Save writes a self-describing snapshot of the selector state: magic,
// version, codec name, codec-compressed payload and a CRC32C checksum of the
// compressed bytes. The weight store is not part of the snapshot; it has its
// own persistence contract.
func (l *Learner) Save(w io.Writer) error {
	var payload bytes.Buffer
	if _, err := l.selector.WriteTo(&payload); err != nil {
		l.opts.logger.LogSnapshotSave(l.opts.codec.Name(), 0, err)
		return fmt.Errorf("serialize selector: %w", err)
	}

	compressed, err := l.opts.codec.Compress(payload.Bytes())
	if err != nil {
		l.opts.logger.LogSnapshotSave(l.opts.codec.Name(), 0, err)
		return fmt.Errorf("compress snapshot: %w", err)
	}

	name := []byte(l.opts.codec.Name())
	bw := binutil.NewWriter(w)
	bw.Uint32(snapshotMagic)
	bw.Uint32(snapshotVersion)
	bw.Uint32(uint32(len(name)))
	bw.Bytes(name)
	bw.Uint64(uint64(len(compressed)))
	bw.Bytes(compressed)
	bw.Uint32(hash.CRC32C(compressed))

	l.opts.logger.LogSnapshotSave(l.opts.codec.Name(), bw.BytesWritten(), bw.Err())
	return bw.Err()
}

// Load replaces the Learner's selector state with the snapshot read from r,
// keeping the existing weight store. The load is atomic: a malformed or
// truncated snapshot leaves the Learner untouched.
func (l *Learner) Load(r io.Reader) error {
	restored, n, err := readSnapshot(r)
	if err != nil {
		l.opts.logger.LogSnapshotLoad(l.opts.codec.Name(), n, err)
		return err
	}
	if err := restored.AttachWeights(l.store); err != nil {
		l.opts.logger.LogSnapshotLoad(l.opts.codec.Name(), n, err)
		return err
	}
	l.selector = restored
	l.opts.logger.LogSnapshotLoad(l.opts.codec.Name(), n, nil)
	return nil
}

// Load builds a fresh Learner from a snapshot. The ensemble shape and
// hyperparameters come from the snapshot; store sizing options (WithSparse,
// WithBits, WithStrideShift, WithPrivacyActivation) apply as on New.
func Load(r io.Reader, optFns ...Option) (*Learner, error) {
	restored, _, err := readSnapshot(r)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	store, err := newStore(restored.NumConfigs(), &o)
	if err != nil {
		return nil, err
	}
	if err := restored.AttachWeights(store); err != nil {
		return nil, err
	}

	return &Learner{
		store:     store,
		selector:  restored,
		opts:      o,
		indexMask: (1 << o.bits) - 1,
	}, nil
}

// readSnapshot decodes and verifies one snapshot, returning fresh selector
// state and the number of bytes consumed.
func readSnapshot(r io.Reader) (*epsilondecay.Data, int64, error) {
	br := binutil.NewReader(r)

	magic := br.Uint32()
	if err := br.Err(); err != nil {
		return nil, br.BytesRead(), fmt.Errorf("%w: %w", ErrTruncatedSnapshot, err)
	}
	if magic != snapshotMagic {
		return nil, br.BytesRead(), fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, magic)
	}

	version := br.Uint32()
	if err := br.Err(); err != nil {
		return nil, br.BytesRead(), fmt.Errorf("%w: %w", ErrTruncatedSnapshot, err)
	}
	if version != snapshotVersion {
		return nil, br.BytesRead(), fmt.Errorf("%w: got %d", ErrInvalidVersion, version)
	}

	nameLen := br.Uint32()
	if br.Err() == nil && nameLen > maxCodecNameLen {
		return nil, br.BytesRead(), fmt.Errorf("%w: codec name length %d", ErrTruncatedSnapshot, nameLen)
	}
	name := br.Bytes(int(nameLen))
	payloadLen := br.Uint64()
	if err := br.Err(); err != nil {
		return nil, br.BytesRead(), fmt.Errorf("%w: %w", ErrTruncatedSnapshot, err)
	}
	if payloadLen > maxSnapshotPayload {
		return nil, br.BytesRead(), fmt.Errorf("%w: payload length %d", ErrTruncatedSnapshot, payloadLen)
	}

	c, err := codec.ByName(string(name))
	if err != nil {
		return nil, br.BytesRead(), err
	}

	compressed := br.Bytes(int(payloadLen))
	checksum := br.Uint32()
	if err := br.Err(); err != nil {
		return nil, br.BytesRead(), fmt.Errorf("%w: %w", ErrTruncatedSnapshot, err)
	}
	if hash.CRC32C(compressed) != checksum {
		return nil, br.BytesRead(), ErrChecksumMismatch
	}

	payload, err := c.Decompress(compressed)
	if err != nil {
		return nil, br.BytesRead(), fmt.Errorf("decompress snapshot: %w", err)
	}

	restored := &epsilondecay.Data{}
	if _, err := restored.ReadFrom(bytes.NewReader(payload)); err != nil {
		return nil, br.BytesRead(), err
	}
	return restored, br.BytesRead(), nil
}

// SaveToFile saves a snapshot to filename, writing through a temp file in the
// same directory so the rename is atomic.
func (l *Learner) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	// Match typical file permissions (best-effort).
	_ = tmp.Chmod(0644)

	buf := bufio.NewWriter(tmp)
	if err := l.Save(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpName, filename); err != nil {
		return err
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	// Success: prevent deferred cleanup from removing the final file.
	tmpName = ""
	return nil
}

// LoadFromFile builds a fresh Learner from a snapshot file.
func LoadFromFile(filename string, optFns ...Option) (*Learner, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(bufio.NewReader(f), optFns...)
}
