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

import "fmt"

// ErrorKind is the closed taxonomy of non-fatal tokenization violations.
// Every member mirrors a WHATWG parse-error name, except
// ErrDeprecatedAndUnsupported, a custom kind used when PLAINTEXT mode
// hits EOF.
type ErrorKind int

const (
	ErrAbruptClosingOfEmptyComment ErrorKind = iota
	ErrAbruptDoctypePublicIdentifier
	ErrAbruptDoctypeSystemIdentifier
	ErrEndTagWithTrailingSolidus
	ErrEOFBeforeTagName
	ErrEOFInAttributeValue
	ErrEOFInCDATA
	ErrEOFInComment
	ErrEOFInDoctype
	ErrEOFInScriptHTMLCommentLikeText
	ErrEOFInTag
	ErrIncorrectlyOpenedComment
	ErrIncorrectlyClosedComment
	ErrInvalidCharacterSequenceAfterDoctypeName
	ErrInvalidFirstCharacterOfTagName
	ErrMissingAttributeValue
	ErrMissingDoctypeName
	ErrMissingDoctypePublicIdentifier
	ErrMissingDoctypeSystemIdentifier
	ErrMissingEndTagName
	ErrMissingQuoteBeforeDoctypePublicIdentifier
	ErrMissingQuoteBeforeDoctypeSystemIdentifier
	ErrMissingWhitespaceAfterDoctypePublicKeyword
	ErrMissingWhitespaceAfterDoctypeSystemKeyword
	ErrMissingWhitespaceBeforeDoctypeName
	ErrMissingWhitespaceBetweenAttributes
	ErrMissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers
	ErrNestedComment
	ErrUnexpectedCharacterAfterDoctypeSystemIdentifier
	ErrUnexpectedCharacterInAttributeName
	ErrUnexpectedCharacterInUnquotedAttributeValue
	ErrUnexpectedEqualsSignBeforeAttributeName
	ErrUnexpectedNullCharacter
	ErrUnexpectedSolidusInTag
	ErrDeprecatedAndUnsupported
)

var errorKindNames = [...]string{
	"abrupt-closing-of-empty-comment",
	"abrupt-doctype-public-identifier",
	"abrupt-doctype-system-identifier",
	"end-tag-with-trailing-solidus",
	"eof-before-tag-name",
	"eof-in-attribute-value",
	"eof-in-cdata",
	"eof-in-comment",
	"eof-in-doctype",
	"eof-in-script-html-comment-like-text",
	"eof-in-tag",
	"incorrectly-opened-comment",
	"incorrectly-closed-comment",
	"invalid-character-sequence-after-doctype-name",
	"invalid-first-character-of-tag-name",
	"missing-attribute-value",
	"missing-doctype-name",
	"missing-doctype-public-identifier",
	"missing-doctype-system-identifier",
	"missing-end-tag-name",
	"missing-quote-before-doctype-public-identifier",
	"missing-quote-before-doctype-system-identifier",
	"missing-whitespace-after-doctype-public-keyword",
	"missing-whitespace-after-doctype-system-keyword",
	"missing-whitespace-before-doctype-name",
	"missing-whitespace-between-attributes",
	"missing-whitespace-between-doctype-public-and-system-identifiers",
	"nested-comment",
	"unexpected-character-after-doctype-system-identifier",
	"unexpected-character-in-attribute-name",
	"unexpected-character-in-unquoted-attribute-value",
	"unexpected-equals-sign-before-attribute-name",
	"unexpected-null-character",
	"unexpected-solidus-in-tag",
	"deprecated-and-unsupported",
}

// String returns the WHATWG-style kebab-case name of the error kind.
func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return "unknown-parse-error"
}

// optionError reports a misuse of the constructor, the only way the
// library fails fatally; tokenization itself never returns a Go error,
// since every violation it encounters is surfaced as a TokenParseError.
type optionError struct {
	reason string
}

func (e *optionError) Error() string {
	return fmt.Sprintf("html5: invalid option: %s", e.reason)
}
