// SPDX-FileCopyrightText: © 2022 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

// Package upkr decompresses data in the upkr format, a byte-aligned
// rANS coder with an adaptive binary context model over an LZ stream.
// The format has no header and no checksum; the end of the stream is
// marked in-band, so the size of the decompressed data is not known in
// advance.
//
// Unpack decompresses into a caller-provided buffer, AppendUnpacked
// grows the buffer as needed and Reader provides an io.Reader over the
// decompressed data. All three check the stream and report truncated
// input, overflowing output and invalid match offsets as errors.
// UnpackTrusted omits the checks for streams from a trusted source.
package upkr
