// SPDX-FileCopyrightText: © 2022 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package upkr

import (
	"bytes"
	"io"
	"math/rand"
	"testing"

	"github.com/ulikunitz/upkr/internal/randtxt"
	"github.com/ulikunitz/upkr/internal/refpack"
)

func TestReader(t *testing.T) {
	data := make([]byte, 1<<13)
	if _, err := io.ReadFull(
		randtxt.NewReader(rand.NewSource(3)), data); err != nil {
		t.Fatalf("randtxt error %s", err)
	}
	src := refpack.Pack(data)

	r, err := NewReader(bytes.NewReader(src))
	if err != nil {
		t.Fatalf("NewReader error %s", err)
	}
	buf := new(bytes.Buffer)
	if _, err = io.Copy(buf, r); err != nil {
		t.Fatalf("io.Copy error %s", err)
	}
	if !bytes.Equal(buf.Bytes(), data) {
		t.Fatalf("Reader returned different data")
	}
	// the reader is drained
	n, err := r.Read(make([]byte, 1))
	if n != 0 || err != io.EOF {
		t.Fatalf("Read after drain returned %d, %v; want 0, EOF",
			n, err)
	}
}

func TestReaderSmallReads(t *testing.T) {
	data := []byte("abcabcabcabc")
	r, err := NewReader(bytes.NewReader(refpack.Pack(data)))
	if err != nil {
		t.Fatalf("NewReader error %s", err)
	}
	var out []byte
	p := make([]byte, 1)
	for {
		n, err := r.Read(p)
		out = append(out, p[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read error %s", err)
		}
	}
	if !bytes.Equal(out, data) {
		t.Fatalf("got %q; want %q", out, data)
	}
}

func TestReaderWriteTo(t *testing.T) {
	data := []byte("write to writes the remaining data")
	r, err := NewReader(bytes.NewReader(refpack.Pack(data)))
	if err != nil {
		t.Fatalf("NewReader error %s", err)
	}
	buf := new(bytes.Buffer)
	n, err := r.WriteTo(buf)
	if err != nil {
		t.Fatalf("WriteTo error %s", err)
	}
	if n != int64(len(data)) {
		t.Fatalf("WriteTo returned %d; want %d", n, len(data))
	}
	if !bytes.Equal(buf.Bytes(), data) {
		t.Fatalf("WriteTo wrote %q; want %q", buf.Bytes(), data)
	}
}

func TestReaderMaxSize(t *testing.T) {
	src := refpack.Pack(make([]byte, 1000))
	_, err := NewReaderConfig(bytes.NewReader(src),
		ReaderConfig{MaxSize: 100})
	if err != ErrOutputOverflow {
		t.Fatalf("NewReaderConfig returned error %v; want %v",
			err, ErrOutputOverflow)
	}
}

func TestReaderConfigVerify(t *testing.T) {
	cfg := ReaderConfig{MaxSize: -1}
	if err := cfg.Verify(); err == nil {
		t.Fatalf("Verify accepted a negative MaxSize")
	}
	cfg = ReaderConfig{}
	cfg.ApplyDefaults()
	if cfg.MaxSize != DefaultMaxSize {
		t.Fatalf("ApplyDefaults set MaxSize to %d; want %d",
			cfg.MaxSize, DefaultMaxSize)
	}
	if err := cfg.Verify(); err != nil {
		t.Fatalf("Verify error %s", err)
	}
	if _, err := NewReaderConfig(bytes.NewReader(nil),
		ReaderConfig{MaxSize: -1}); err == nil {
		t.Fatalf("NewReaderConfig accepted a negative MaxSize")
	}
	if _, err := NewReaderConfig(nil, ReaderConfig{}); err == nil {
		t.Fatalf("NewReaderConfig accepted a nil reader")
	}
}
