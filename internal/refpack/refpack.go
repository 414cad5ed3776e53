// SPDX-FileCopyrightText: © 2022 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

// Package refpack implements a small upkr packer. The tests of the
// upkr package use it as a round-trip oracle; it is not part of the
// public API and doesn't aim for a good compression ratio. The model
// is maintained independently of the decoder so that both sides of the
// wire format are pinned by their own code.
package refpack

import (
	"encoding/binary"
	"math/bits"

	"github.com/ulikunitz/lz"
	"github.com/ulikunitz/upkr/rans"
)

// Context layout of the upkr model.
const (
	ctxIsMatch   = 0
	ctxNewOffset = 256
	ctxOffset    = 257
	ctxLength    = 321
	numContexts  = 385
)

// record stores a coded bit together with the probability the model
// held before it adapted. The coder consumes the records in reverse.
type record struct {
	prob rans.Prob
	bit  byte
}

// Encoder collects bits under the adaptive context model. The model
// adapts in coding order; the rANS state is computed afterwards by
// Bytes.
type Encoder struct {
	probs [numContexts]rans.Prob
	recs  []record
}

// NewEncoder returns an encoder with a fresh model.
func NewEncoder() *Encoder {
	e := new(Encoder)
	for i := range e.probs {
		e.probs[i] = rans.ProbInit
	}
	return e
}

// Bit codes a single bit under the context ctx and adapts the model.
func (e *Encoder) Bit(ctx, b int) {
	p := &e.probs[ctx]
	e.recs = append(e.recs, record{prob: *p, bit: byte(b & 1)})
	if b&1 != 0 {
		p.Inc()
	} else {
		p.Dec()
	}
}

// Literal codes the byte c over the literal tree contexts. The context
// of each bit is the preceding partial byte with its marker bit.
func (e *Encoder) Literal(c byte) {
	sym := uint32(c) | 0x100
	for i := 7; i >= 0; i-- {
		e.Bit(int(sym>>uint(i+1)), int(sym>>uint(i)&1))
	}
}

// Length codes the value v, which must be at least 1, as the
// interleaved length code at the context base ctx. The top bit of v is
// implicit in the terminating continue bit.
func (e *Encoder) Length(ctx int, v uint32) {
	if v == 0 {
		panic("refpack: length value must be at least 1")
	}
	n := bits.Len32(v) - 1
	for i := 0; i < n; i++ {
		e.Bit(ctx, 1)
		e.Bit(ctx+1, int(v>>uint(i)&1))
		ctx += 2
	}
	e.Bit(ctx, 0)
}

// Bytes runs the collected bits through the rANS coder in reverse
// order and returns the stream as the decoder reads it. The encoder
// state x stays in [1<<12, 1<<20); the final state is flushed in three
// bytes.
func (e *Encoder) Bytes() []byte {
	x := uint32(1 << 12)
	var buf []byte
	for i := len(e.recs) - 1; i >= 0; i-- {
		r := e.recs[i]
		p := uint32(r.prob)
		f := p
		if r.bit == 0 {
			f = 256 - p
		}
		for x >= f<<12 {
			buf = append(buf, byte(x))
			x >>= 8
		}
		if r.bit != 0 {
			x = (x/p)<<8 | x%p
		} else {
			x = (x/f)<<8 | (p + x%f)
		}
	}
	for i := 0; i < 3; i++ {
		buf = append(buf, byte(x))
		x >>= 8
	}
	// The bytes were collected backwards.
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf
}

// PackOps codes the operation sequence and the end-of-stream marker.
// Operations follow the decoder contract: a literal has LitLen 1 and
// the byte in Aux, a match has MatchLen and Offset set. The ops are
// coded as given, including ops no packer should emit, so tests can
// craft invalid streams.
func PackOps(ops []lz.Seq) []byte {
	e := NewEncoder()
	offset := uint32(0)
	prevMatch := false
	for _, s := range ops {
		if s.MatchLen == 0 {
			e.Bit(ctxIsMatch, 0)
			e.Literal(byte(s.Aux))
			prevMatch = false
			continue
		}
		e.Bit(ctxIsMatch, 1)
		switch {
		case prevMatch:
			e.Length(ctxOffset, s.Offset+1)
			offset = s.Offset
		case s.Offset == offset:
			e.Bit(ctxNewOffset, 0)
		default:
			e.Bit(ctxNewOffset, 1)
			e.Length(ctxOffset, s.Offset+1)
			offset = s.Offset
		}
		e.Length(ctxLength, s.MatchLen)
		prevMatch = true
	}
	e.Bit(ctxIsMatch, 1)
	if !prevMatch {
		e.Bit(ctxNewOffset, 1)
	}
	e.Length(ctxOffset, 1)
	return e.Bytes()
}

// Pack compresses data with a greedy parse over 4-byte hash chain
// candidates. Any output it produces is a valid stream for the
// decoder.
func Pack(data []byte) []byte {
	const (
		minMatch  = 4
		maxChain  = 16
		hashBytes = 4
	)
	var ops []lz.Seq
	chains := make(map[uint32][]int)
	insert := func(i int) {
		if i+hashBytes > len(data) {
			return
		}
		key := binary.LittleEndian.Uint32(data[i:])
		chains[key] = append(chains[key], i)
	}
	i := 0
	for i < len(data) {
		bestLen, bestOff := 0, 0
		if i+hashBytes <= len(data) {
			key := binary.LittleEndian.Uint32(data[i:])
			cand := chains[key]
			stop := len(cand) - maxChain
			if stop < 0 {
				stop = 0
			}
			for k := len(cand) - 1; k >= stop; k-- {
				j := cand[k]
				n := matchLen(data, j, i)
				if n > bestLen {
					bestLen, bestOff = n, i-j
				}
			}
		}
		if bestLen >= minMatch {
			ops = append(ops, lz.Seq{
				MatchLen: uint32(bestLen),
				Offset:   uint32(bestOff),
			})
			for k := 0; k < bestLen; k++ {
				insert(i + k)
			}
			i += bestLen
		} else {
			ops = append(ops, lz.Seq{
				LitLen: 1,
				Aux:    uint32(data[i]),
			})
			insert(i)
			i++
		}
	}
	return PackOps(ops)
}

// matchLen returns the length of the common prefix of data[j:] and
// data[i:] for j < i. The match may overlap the bytes it produces.
func matchLen(data []byte, j, i int) int {
	n := 0
	for i+n < len(data) && data[j+n] == data[i+n] {
		n++
	}
	return n
}
