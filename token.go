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

// Span is an inclusive-start, exclusive-end byte range into the buffer a
// Tokenizer was given to Next. It never owns bytes: Bytes re-slices the
// same buffer the caller passed in.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int { return s.End - s.Start }

// Empty reports whether the span covers zero bytes.
func (s Span) Empty() bool { return s.Start == s.End }

// Bytes re-slices src using the span. The caller's buffer must still be
// the one the span was produced from.
func (s Span) Bytes(src []byte) []byte { return src[s.Start:s.End] }

// TokenKind identifies which alternative of Token is populated.
type TokenKind int

const (
	// TokenText is a non-whitespace-only run of character data.
	TokenText TokenKind = iota
	// TokenTag is a start or end tag, emitted when return_attrs is false.
	TokenTag
	// TokenTagName is emitted in place of TokenTag when return_attrs is true.
	TokenTagName
	// TokenAttr is one attribute of the tag currently being scanned,
	// emitted only when return_attrs is true.
	TokenAttr
	// TokenDoctype is a DOCTYPE declaration.
	TokenDoctype
	// TokenComment is an HTML comment, or a CDATA section surfaced as one.
	TokenComment
	// TokenParseError reports a non-fatal violation; tokenization continues.
	TokenParseError
)

func (k TokenKind) String() string {
	switch k {
	case TokenText:
		return "Text"
	case TokenTag:
		return "Tag"
	case TokenTagName:
		return "TagName"
	case TokenAttr:
		return "Attr"
	case TokenDoctype:
		return "Doctype"
	case TokenComment:
		return "Comment"
	case TokenParseError:
		return "ParseError"
	default:
		return "Unknown"
	}
}

// TagKind fuses a tag's start/end nature with its attribute-presence and
// self-closing flags, avoiding a family of boolean fields.
type TagKind int

const (
	TagStart TagKind = iota
	TagStartAttrs
	TagStartSelf
	TagStartAttrsSelf
	TagEnd
)

func (k TagKind) String() string {
	switch k {
	case TagStart:
		return "Start"
	case TagStartAttrs:
		return "StartAttrs"
	case TagStartSelf:
		return "StartSelf"
	case TagStartAttrsSelf:
		return "StartAttrsSelf"
	case TagEnd:
		return "End"
	default:
		return "Unknown"
	}
}

// IsEnd reports whether the tag kind is an end tag.
func (k TagKind) IsEnd() bool { return k == TagEnd }

// SelfClosing reports whether the start tag carried a trailing "/>".
func (k TagKind) SelfClosing() bool { return k == TagStartSelf || k == TagStartAttrsSelf }

// HasAttrs reports whether the tag had at least one attribute.
func (k TagKind) HasAttrs() bool { return k == TagStartAttrs || k == TagStartAttrsSelf }

// AttrQuote records which quote character, if any, delimited an attribute
// value.
type AttrQuote int

const (
	QuoteNone AttrQuote = iota
	QuoteSingle
	QuoteDouble
)

func (q AttrQuote) String() string {
	switch q {
	case QuoteNone:
		return "None"
	case QuoteSingle:
		return "Single"
	case QuoteDouble:
		return "Double"
	default:
		return "Unknown"
	}
}

// Token is the single, fused representation of everything the tokenizer
// can emit. Which fields are meaningful depends on Kind; see the comment
// on each field. Token is a plain value: emitting one never allocates,
// since every payload is an integer offset pair into the caller's buffer.
type Token struct {
	Kind TokenKind

	// Span is the token's overall extent: the whole tag, the whole
	// comment (including "<!--"/"-->"), the whole doctype, or the text
	// run (already trimmed). For TokenParseError it locates the
	// offending bytes.
	Span Span

	// Name is the tag name (TokenTag, TokenTagName), the attribute name
	// (TokenAttr), or the doctype name (TokenDoctype, if HasName).
	Name Span

	// HasName reports whether Name is populated; only meaningful for
	// TokenDoctype, where the name is optional.
	HasName bool

	// TagKind classifies a TokenTag/TokenTagName as described above.
	TagKind TagKind

	// Quote and Value describe an attribute's value (TokenAttr only).
	// HasValue is false for a valueless attribute, in which case Value
	// and Quote are zero.
	Quote    AttrQuote
	Value    Span
	HasValue bool

	// Extra covers the public/system identifier region of a DOCTYPE
	// declaration (TokenDoctype only), for downstream inspection. It is
	// empty (Start == End) when neither identifier is present.
	Extra Span

	// ForceQuirks reports whether a DOCTYPE (TokenDoctype) should force
	// quirks mode in a downstream tree builder.
	ForceQuirks bool

	// Error identifies the violation for a TokenParseError.
	Error ErrorKind
}
