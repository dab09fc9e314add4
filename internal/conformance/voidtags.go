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

// Package conformance cross-checks hand-maintained tables in the html5
// package against golang.org/x/net/html/atom's generated element data,
// so the two don't silently drift apart as the WHATWG list changes.
package conformance

import "golang.org/x/net/html/atom"

// voidAtoms are the elements atom knows about that are also members of
// the WHATWG void-elements list. Kept separately from html5's own table
// so the html5 package's TestIsVoidAgreesWithConformanceTable can compare
// the two; this package does not import html5 (which would make this an
// import cycle).
var voidAtoms = []atom.Atom{
	atom.Area,
	atom.Base,
	atom.Br,
	atom.Col,
	atom.Embed,
	atom.Hr,
	atom.Img,
	atom.Input,
	atom.Link,
	atom.Meta,
	atom.Source,
	atom.Track,
	atom.Wbr,
}

// VoidTagNames returns the void element names as recognized by atom,
// lower-case, for comparison against html5.IsVoid.
func VoidTagNames() []string {
	names := make([]string, len(voidAtoms))
	for i, a := range voidAtoms {
		names[i] = a.String()
	}
	return names
}

// KnownElement reports whether name is a recognized HTML element at all,
// per atom's generated table - used to flag void-element candidates that
// atom doesn't even recognize as elements.
func KnownElement(name []byte) bool {
	return atom.Lookup(name) != 0
}
