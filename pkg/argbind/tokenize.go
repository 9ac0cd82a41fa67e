// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argbind

// occurrence is one identifier found in the input.
type occurrence struct {
	desc int     // position in Schema.descs
	name string  // identifier or alias as written
	raw  *string // paired value; nil for flags and missing values
	flag bool
}

// tokenize walks args left to right and pairs value-bearing identifiers
// with the token that follows them.
//
// A value is missing when the identifier is the last token or is followed
// by another known identifier. A token that matches no identifier is
// recorded as unknown; when it is followed by a token that is not an
// identifier either, that token is taken to be its value and skipped.
func (s *Schema) tokenize(args []string) (occs []occurrence, unknown []string) {
	for i := 0; i < len(args); i++ {
		tok := args[i]
		pos, ok := s.index[tok]
		if !ok {
			unknown = append(unknown, tok)
			if i+1 < len(args) && !s.isIdentifier(args[i+1]) {
				i++
			}
			continue
		}

		d := &s.descs[pos]
		if d.IsBoolFlag() {
			occs = append(occs, occurrence{desc: pos, name: tok, flag: true})
			continue
		}
		if i+1 >= len(args) || s.isIdentifier(args[i+1]) {
			occs = append(occs, occurrence{desc: pos, name: tok})
			continue
		}
		raw := args[i+1]
		i++
		occs = append(occs, occurrence{desc: pos, name: tok, raw: &raw})
	}
	return occs, unknown
}
