// Copyright 2020 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package html5

// isASCIILetter reports whether b is an ASCII letter (a-z, A-Z).
func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// isASCIIUpper reports whether b is an ASCII upper-case letter.
func isASCIIUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

// toASCIILower lower-cases b if it is an ASCII upper-case letter.
func toASCIILower(b byte) byte {
	if isASCIIUpper(b) {
		return b + ('a' - 'A')
	}
	return b
}

// isWhitespace reports whether b is ASCII whitespace as defined by the
// tokenizer: tab, line feed, form feed, or space. Carriage return is
// deliberately excluded; callers must not substitute a locale-dependent
// whitespace predicate.
func isWhitespace(b byte) bool {
	switch b {
	case '\t', '\n', '\x0c', ' ':
		return true
	}
	return false
}

// equalFold reports whether a and b are equal under ASCII case folding.
func equalFold(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if toASCIILower(a[i]) != toASCIILower(b[i]) {
			return false
		}
	}
	return true
}

// hasPrefixFold reports whether src[idx:] begins with prefix under ASCII
// case folding, without consuming any bytes.
func hasPrefixFold(src []byte, idx int, prefix string) bool {
	if idx+len(prefix) > len(src) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		if toASCIILower(src[idx+i]) != toASCIILower(prefix[i]) {
			return false
		}
	}
	return true
}

// hasPrefix reports whether src[idx:] begins with the literal prefix,
// without consuming any bytes.
func hasPrefix(src []byte, idx int, prefix string) bool {
	if idx+len(prefix) > len(src) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		if src[idx+i] != prefix[i] {
			return false
		}
	}
	return true
}

// trimWhitespace returns the sub-span of [start, end) with leading and
// trailing ASCII whitespace (per isWhitespace) removed.
func trimWhitespace(src []byte, start, end int) Span {
	for start < end && isWhitespace(src[start]) {
		start++
	}
	for end > start && isWhitespace(src[end-1]) {
		end--
	}
	return Span{Start: start, End: end}
}
