// SPDX-FileCopyrightText: © 2022 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

// Package randtxt provides a reader of endless pseudo text. The text
// repeats words from a small vocabulary, so it compresses well and
// gives the round-trip tests input with realistic literal and match
// statistics.
package randtxt

import "math/rand"

// vocabulary holds the words the reader samples from. Frequent words
// appear multiple times.
var vocabulary = []string{
	"the", "the", "the", "of", "of", "and", "and", "a", "a", "in",
	"to", "is", "was", "it", "for", "with", "he", "be", "on", "by",
	"at", "which", "have", "or", "from", "this", "one", "had", "not",
	"but", "what", "all", "were", "when", "we", "there", "can",
	"packer", "stream", "offset", "length", "context", "probability",
}

// Reader provides an endless stream of pseudo text. It must be
// created with NewReader.
type Reader struct {
	rnd  *rand.Rand
	tail []byte
	col  int
}

// NewReader creates a pseudo text reader using the given source.
func NewReader(src rand.Source) *Reader {
	return &Reader{rnd: rand.New(src)}
}

// word returns the next word including its separator.
func (r *Reader) word() []byte {
	w := vocabulary[r.rnd.Intn(len(vocabulary))]
	sep := " "
	r.col += len(w) + 1
	if r.col >= 72 {
		sep = "\n"
		r.col = 0
	} else if r.rnd.Intn(16) == 0 {
		sep = ". "
		r.col++
	}
	return append([]byte(w), sep...)
}

// Read fills p with pseudo text. It never returns an error.
func (r *Reader) Read(p []byte) (n int, err error) {
	for n < len(p) {
		if len(r.tail) == 0 {
			r.tail = r.word()
		}
		k := copy(p[n:], r.tail)
		r.tail = r.tail[k:]
		n += k
	}
	return n, nil
}
