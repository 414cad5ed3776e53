// SPDX-FileCopyrightText: © 2022 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package upkr

import (
	"errors"
	"io"
	"math"

	"github.com/ulikunitz/lz"
	"github.com/ulikunitz/upkr/xlog"
)

// Errors reported for invalid streams. The stream is checked before
// anything is written, so on error the destination holds the data
// decoded so far and nothing else.
var (
	// ErrTruncatedInput reports that the stream ended while more
	// input bytes were required.
	ErrTruncatedInput = errors.New("upkr: truncated input")
	// ErrOutputOverflow reports that the decoded data doesn't fit
	// the destination or exceeds the configured size limit.
	ErrOutputOverflow = errors.New("upkr: output exceeds limit")
	// ErrInvalidOffset reports a match offset of zero or one
	// reaching behind the start of the decoded data.
	ErrInvalidOffset = errors.New("upkr: invalid match offset")
)

var errEOS = errors.New("EOS marker")

var errLengthOverflow = errors.New("upkr: length code exceeds 32 bits")

// readOp decodes a single operation. Each operation is either a
// one-byte literal (LitLen 1, Aux holds the byte) or a match (MatchLen
// and Offset non-zero). The end of the stream is reported as errEOS.
func (u *unpacker) readOp() (seq lz.Seq, err error) {
	b, err := u.rd.DecodeBit(&u.probs[ctxIsMatch])
	if err != nil {
		return lz.Seq{}, err
	}
	if b == 0 {
		c, err := u.decodeLiteral()
		if err != nil {
			return lz.Seq{}, err
		}
		u.prevMatch = false
		return lz.Seq{LitLen: 1, Aux: uint32(c)}, nil
	}

	// A match directly after a match always carries a new offset;
	// the new-offset bit is not coded then.
	newOffset := u.prevMatch
	if !u.prevMatch {
		b, err = u.rd.DecodeBit(&u.probs[ctxNewOffset])
		if err != nil {
			return lz.Seq{}, err
		}
		newOffset = b != 0
	}
	if newOffset {
		v, err := u.decodeLength(ctxOffset)
		if err != nil {
			if err == errLengthOverflow {
				err = ErrInvalidOffset
			}
			return lz.Seq{}, err
		}
		if v == 1 {
			// offset zero marks the end of the stream
			return lz.Seq{}, errEOS
		}
		u.offset = int(v - 1)
	}
	n, err := u.decodeLength(ctxLength)
	if err != nil {
		if err == errLengthOverflow {
			err = ErrOutputOverflow
		}
		return lz.Seq{}, err
	}
	u.prevMatch = true
	return lz.Seq{MatchLen: n, Offset: uint32(u.offset)}, nil
}

// unpack runs the main loop until the end-of-stream marker. Input
// after the marker is not read.
func (u *unpacker) unpack() error {
	for {
		seq, err := u.readOp()
		if err != nil {
			switch err {
			case errEOS:
				return nil
			case io.ErrUnexpectedEOF:
				return ErrTruncatedInput
			}
			return err
		}
		xlog.Printf(debug, "seq %+v w %d", seq, u.w)
		if seq.MatchLen == 0 {
			err = u.writeByte(byte(seq.Aux))
		} else {
			err = u.writeMatch(int(seq.MatchLen), int(seq.Offset))
		}
		if err != nil {
			return err
		}
	}
}

// Unpack decompresses src into dst and returns the number of decoded
// bytes. dst is not grown; if the decoded data doesn't fit, Unpack
// returns ErrOutputOverflow. On error n reports the bytes decoded so
// far and dst[:n] holds them.
func Unpack(dst, src []byte) (n int, err error) {
	var u unpacker
	u.init(dst, src, len(dst), false, false)
	err = u.unpack()
	return u.w, err
}

// UnpackTrusted decompresses src into dst without validating the
// stream and returns the number of decoded bytes. The stream must be
// well formed and dst large enough for the decoded data; violations
// panic. Use Unpack for data from untrusted sources.
func UnpackTrusted(dst, src []byte) int {
	var u unpacker
	u.init(dst, src, len(dst), false, true)
	if err := u.unpack(); err != nil {
		panic(err)
	}
	return u.w
}

// AppendUnpacked appends the decompressed src to dst and returns the
// extended buffer. Match offsets refer to the decompressed data only;
// an existing prefix in dst is left alone. On error the returned
// buffer still carries the bytes decoded before the error.
func AppendUnpacked(dst, src []byte) ([]byte, error) {
	return appendUnpacked(dst, src, math.MaxInt)
}

func appendUnpacked(dst, src []byte, limit int) ([]byte, error) {
	var u unpacker
	u.init(dst, src, limit, true, false)
	err := u.unpack()
	return u.out, err
}
