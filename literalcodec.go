// SPDX-FileCopyrightText: © 2022 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package upkr

// decodeLiteral decodes a single literal byte over the binary tree of
// contexts 1 to 255. The context index is the partial byte with its
// marker bit, so each reachable bit prefix adapts an own probability.
// The marker bit is dropped by the conversion to byte.
func (u *unpacker) decodeLiteral() (c byte, err error) {
	sym := uint32(1)
	for sym < 0x100 {
		b, err := u.rd.DecodeBit(&u.probs[sym])
		if err != nil {
			return 0, err
		}
		sym = sym<<1 | b
	}
	return byte(sym), nil
}
