// SPDX-FileCopyrightText: © 2022 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package upkr

import (
	"errors"
	"fmt"
	"io"
	"math"
)

// DefaultMaxSize is the default limit for the size of the decompressed
// data.
const DefaultMaxSize = 1 << 30

// ReaderConfig stores the parameters for the Reader.
type ReaderConfig struct {
	// MaxSize limits the size of the decompressed data. Streams
	// that decode to more bytes are rejected with ErrOutputOverflow.
	MaxSize int64
}

// ApplyDefaults replaces a zero MaxSize with DefaultMaxSize.
func (cfg *ReaderConfig) ApplyDefaults() {
	if cfg.MaxSize == 0 {
		cfg.MaxSize = DefaultMaxSize
	}
}

// Verify checks the configuration for errors.
func (cfg *ReaderConfig) Verify() error {
	if cfg.MaxSize <= 0 {
		return fmt.Errorf("upkr: MaxSize must be positive")
	}
	return nil
}

// Reader reads the decompressed form of an upkr stream. The format
// stores no size information and marks the end of the stream in-band,
// so the whole stream is read and decoded when the Reader is created.
type Reader struct {
	data []byte
	r    int
}

// NewReader reads the stream z and provides a reader for the
// decompressed data. It uses the default configuration.
func NewReader(z io.Reader) (r *Reader, err error) {
	return NewReaderConfig(z, ReaderConfig{})
}

// NewReaderConfig reads the stream z and provides a reader for the
// decompressed data. Decoding happens during this call; the errors are
// those of Unpack plus any read error of z.
func NewReaderConfig(z io.Reader, cfg ReaderConfig) (r *Reader, err error) {
	cfg.ApplyDefaults()
	if err = cfg.Verify(); err != nil {
		return nil, err
	}
	if z == nil {
		return nil, errors.New("upkr: reader must be not nil")
	}
	src, err := io.ReadAll(z)
	if err != nil {
		return nil, err
	}
	limit := cfg.MaxSize
	if limit > math.MaxInt {
		limit = math.MaxInt
	}
	data, err := appendUnpacked(nil, src, int(limit))
	if err != nil {
		return nil, err
	}
	return &Reader{data: data}, nil
}

// Read reads the decompressed data.
func (r *Reader) Read(p []byte) (n int, err error) {
	if r.r >= len(r.data) {
		return 0, io.EOF
	}
	n = copy(p, r.data[r.r:])
	r.r += n
	return n, nil
}

// WriteTo writes the remaining decompressed data to w.
func (r *Reader) WriteTo(w io.Writer) (n int64, err error) {
	k, err := w.Write(r.data[r.r:])
	r.r += k
	return int64(k), err
}
