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

var voidTagNames = map[string]struct{}{
	"area":   {},
	"base":   {},
	"br":     {},
	"col":    {},
	"embed":  {},
	"hr":     {},
	"img":    {},
	"input":  {},
	"link":   {},
	"meta":   {},
	"source": {},
	"track":  {},
	"wbr":    {},
}

// IsVoid reports whether name (an element name, any ASCII case) is one of
// the fixed set of void elements: those that a conforming tree builder
// never expects a matching end tag for. The tokenizer itself never
// consults this; it is exposed for downstream consumers that still want
// it without re-deriving the WHATWG list.
func IsVoid(name []byte) bool {
	buf := make([]byte, len(name))
	for i, b := range name {
		buf[i] = toASCIILower(b)
	}
	_, ok := voidTagNames[string(buf)]
	return ok
}
