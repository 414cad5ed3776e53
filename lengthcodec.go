// SPDX-FileCopyrightText: © 2022 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package upkr

// decodeLength decodes a value of at least 1 from the interleaved
// length code starting at context ctx. Continue bits use the contexts
// ctx, ctx+2, ctx+4 and so on, value bits the odd neighbors. Value
// bits are stored low to high; the terminating continue bit supplies
// the implicit top bit.
//
// Values are limited to 32 bits. Codes with more value bits don't fit
// a uint32 and are rejected before the code is fully read. Trusted
// decoding skips the check.
func (u *unpacker) decodeLength(ctx int) (v uint32, err error) {
	var bitPos uint
	for {
		if bitPos == 32 && !u.trusted {
			return 0, errLengthOverflow
		}
		b, err := u.rd.DecodeBit(&u.probs[ctx])
		if err != nil {
			return 0, err
		}
		if b == 0 {
			break
		}
		b, err = u.rd.DecodeBit(&u.probs[ctx+1])
		if err != nil {
			return 0, err
		}
		v |= b << bitPos
		bitPos++
		ctx += 2
	}
	return v | 1<<bitPos, nil
}
