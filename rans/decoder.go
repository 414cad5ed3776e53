// SPDX-FileCopyrightText: © 2022 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package rans

import "io"

// renormLimit is the lower bound of the decoder state. Bytes are
// shifted in until the state reaches it.
const renormLimit = 1 << 12

// Decoder decodes single bits from a byte stream. The zero value is
// invalid; use Init.
type Decoder struct {
	src     []byte
	off     int
	state   uint32
	trusted bool
}

// Init initializes the decoder for the byte stream src. The state
// starts at zero; the first renormalization fills it from the start of
// the stream. In trusted mode reads past the end of src are not
// checked and panic instead of returning an error.
func (d *Decoder) Init(src []byte, trusted bool) {
	*d = Decoder{src: src, trusted: trusted}
}

// DecodeBit decodes a single bit with the probability *p and adapts
// the probability toward the decoded value. It returns
// io.ErrUnexpectedEOF if the stream ends while the state requires
// renormalization, unless the decoder is trusted.
func (d *Decoder) DecodeBit(p *Prob) (b uint32, err error) {
	for d.state < renormLimit {
		if !d.trusted && d.off >= len(d.src) {
			return 0, io.ErrUnexpectedEOF
		}
		d.state = d.state<<8 | uint32(d.src[d.off])
		d.off++
	}
	low := d.state & 0xff
	pr := uint32(*p)
	if low < pr {
		d.state = pr*(d.state>>8) + low
		p.Inc()
		return 1, nil
	}
	d.state = (probOne-pr)*(d.state>>8) + low - pr
	p.Dec()
	return 0, nil
}

// Offset returns the number of bytes consumed from the stream.
func (d *Decoder) Offset() int { return d.off }
