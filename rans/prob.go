// SPDX-FileCopyrightText: © 2022 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

// Package rans implements the adaptive binary rANS coder of the upkr
// format. A Decoder reads single bits from a byte stream; each bit
// carries its own probability, which adapts toward the decoded value.
package rans

// moveBits defines the number of bits used for the updates of
// probability values. The adaptation rate is 1/16.
const moveBits = 4

// probBits defines the number of bits of a probability value.
const probBits = 8

// probOne is the probability value representing 1.
const probOne = 1 << probBits

// rounding makes the probability updates round half up.
const rounding = 1 << (moveBits - 1)

// ProbInit defines 0.5 as initial value for prob values.
const ProbInit Prob = 1 << (probBits - 1)

// Prob represents the probability that a bit is 1 in units of 1/256.
// Values reachable from ProbInit stay in the range 1 to 255, so zero
// and one never become certain.
type Prob uint8

// Dec decreases the probability after a zero bit. The decrease is
// proportional to the probability value.
func (p *Prob) Dec() {
	*p -= Prob((uint32(*p) + rounding) >> moveBits)
}

// Inc increases the probability after a one bit. The increase is
// proportional to the difference of 1 and the probability value.
func (p *Prob) Inc() {
	*p += Prob((probOne - uint32(*p) + rounding) >> moveBits)
}
