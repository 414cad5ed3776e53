// SPDX-FileCopyrightText: © 2022 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package upkr

import "github.com/ulikunitz/upkr/rans"

// The context model provides one adaptive probability per context. The
// contexts form a single table with a fixed layout.
const (
	// ctxIsMatch decides between a match and a literal.
	ctxIsMatch = 0
	// Contexts 1 to 255 decode literal bytes. The index is the
	// partial byte including its marker bit.
	ctxLiteral = 1
	// ctxNewOffset decides between a new offset and the reuse of
	// the previous one.
	ctxNewOffset = 256
	// ctxOffset is the base of the offset length code, two contexts
	// per bit position.
	ctxOffset = 257
	// ctxLength is the base of the match length code, two contexts
	// per bit position.
	ctxLength = 321
	// numContexts is the size of the context table.
	numContexts = 385
)

// unpacker holds the full state of a single decompression call. Every
// call starts from a fresh value, so parallel calls don't share any
// state.
type unpacker struct {
	rd    rans.Decoder
	probs [numContexts]rans.Prob

	// out holds the decoded data in out[base:base+w]. In grow mode
	// out is extended by append, otherwise it is the caller's
	// destination buffer.
	out  []byte
	base int
	w    int

	// limit is the maximum number of bytes to decode.
	limit int
	grow  bool

	// offset is the most recently decoded match offset. Matches may
	// reuse it.
	offset    int
	prevMatch bool

	// trusted switches all stream validation off.
	trusted bool
}

func (u *unpacker) init(dst, src []byte, limit int, grow, trusted bool) {
	*u = unpacker{
		out:     dst,
		limit:   limit,
		grow:    grow,
		trusted: trusted,
	}
	if grow {
		u.base = len(dst)
	}
	u.rd.Init(src, trusted)
	for i := range u.probs {
		u.probs[i] = rans.ProbInit
	}
}

// writeByte appends a single decoded byte.
func (u *unpacker) writeByte(c byte) error {
	if u.grow {
		if u.w >= u.limit {
			return ErrOutputOverflow
		}
		u.out = append(u.out, c)
		u.w++
		return nil
	}
	if !u.trusted && u.w >= u.limit {
		return ErrOutputOverflow
	}
	u.out[u.base+u.w] = c
	u.w++
	return nil
}

// writeMatch copies m bytes starting off bytes behind the write
// position. The copy proceeds byte by byte because the source may
// overlap the bytes being written; an offset of 1 replicates the last
// byte m times.
func (u *unpacker) writeMatch(m, off int) error {
	if !u.trusted {
		if off <= 0 || off > u.w {
			return ErrInvalidOffset
		}
		if m > u.limit-u.w {
			return ErrOutputOverflow
		}
	}
	for ; m > 0; m-- {
		if err := u.writeByte(u.out[u.base+u.w-off]); err != nil {
			return err
		}
	}
	return nil
}
