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

// stateID names one of the tokenizer's states, following the section
// layout of the WHATWG HTML tokenization algorithm. Go has no tagged
// union, so the payload each state needs (run anchors, partially built
// tag/doctype, …) lives directly on Tokenizer instead of inside a
// separate per-state struct; stateID only selects which of those fields
// are live. See DESIGN.md for why this is preferred here over boxing a
// state interface, which would allocate on every transition.
type stateID uint8

const (
	stData stateID = iota
	stTagOpen
	stEndTagOpen
	stTagName
	stBeforeAttributeName
	stAttributeName
	stAfterAttributeName
	stBeforeAttributeValue
	stAttributeValueDoubleQuoted
	stAttributeValueSingleQuoted
	stAttributeValueUnquoted
	stAfterAttributeValueQuoted
	stSelfClosingStartTag
	stBogusComment
	stMarkupDeclarationOpen
	stCommentStart
	stCommentStartDash
	stComment
	stCommentLessThanSign
	stCommentLessThanSignBang
	stCommentLessThanSignBangDash
	stCommentLessThanSignBangDashDash
	stCommentEndDash
	stCommentEnd
	stCommentEndBang
	stBeforeDoctypeName
	stDoctypeName
	stAfterDoctypeName
	stAfterDoctypePublicKeyword
	stBeforeDoctypePublicIdentifier
	stDoctypePublicIdentifierDoubleQuoted
	stDoctypePublicIdentifierSingleQuoted
	stAfterDoctypePublicIdentifier
	stBetweenDoctypePublicAndSystemIdentifiers
	stAfterDoctypeSystemKeyword
	stBeforeDoctypeSystemIdentifier
	stDoctypeSystemIdentifierDoubleQuoted
	stDoctypeSystemIdentifierSingleQuoted
	stAfterDoctypeSystemIdentifier
	stBogusDoctype
	stCDATASection
	stCDATASectionBracket
	stCDATASectionEnd
	stRCData
	stRCDataLessThanSign
	stRCDataEndTagOpen
	stRCDataEndTagName
	stRawText
	stRawTextLessThanSign
	stRawTextEndTagOpen
	stRawTextEndTagName
	stScriptData
	stScriptDataLessThanSign
	stScriptDataEndTagOpen
	stScriptDataEndTagName
	stScriptDataEscapeStart
	stScriptDataEscapeStartDash
	stScriptDataEscaped
	stScriptDataEscapedDash
	stScriptDataEscapedDashDash
	stScriptDataEscapedLessThanSign
	stScriptDataEscapedEndTagOpen
	stScriptDataEscapedEndTagName
	stScriptDataDoubleEscapeStart
	stScriptDataDoubleEscaped
	stScriptDataDoubleEscapedDash
	stScriptDataDoubleEscapedDashDash
	stScriptDataDoubleEscapedLessThanSign
	stScriptDataDoubleEscapeEnd
	stPlaintext
	stEOF
)

var stateNames = [...]string{
	"Data",
	"TagOpen",
	"EndTagOpen",
	"TagName",
	"BeforeAttributeName",
	"AttributeName",
	"AfterAttributeName",
	"BeforeAttributeValue",
	"AttributeValueDoubleQuoted",
	"AttributeValueSingleQuoted",
	"AttributeValueUnquoted",
	"AfterAttributeValueQuoted",
	"SelfClosingStartTag",
	"BogusComment",
	"MarkupDeclarationOpen",
	"CommentStart",
	"CommentStartDash",
	"Comment",
	"CommentLessThanSign",
	"CommentLessThanSignBang",
	"CommentLessThanSignBangDash",
	"CommentLessThanSignBangDashDash",
	"CommentEndDash",
	"CommentEnd",
	"CommentEndBang",
	"BeforeDoctypeName",
	"DoctypeName",
	"AfterDoctypeName",
	"AfterDoctypePublicKeyword",
	"BeforeDoctypePublicIdentifier",
	"DoctypePublicIdentifierDoubleQuoted",
	"DoctypePublicIdentifierSingleQuoted",
	"AfterDoctypePublicIdentifier",
	"BetweenDoctypePublicAndSystemIdentifiers",
	"AfterDoctypeSystemKeyword",
	"BeforeDoctypeSystemIdentifier",
	"DoctypeSystemIdentifierDoubleQuoted",
	"DoctypeSystemIdentifierSingleQuoted",
	"AfterDoctypeSystemIdentifier",
	"BogusDoctype",
	"CDATASection",
	"CDATASectionBracket",
	"CDATASectionEnd",
	"RCData",
	"RCDataLessThanSign",
	"RCDataEndTagOpen",
	"RCDataEndTagName",
	"RawText",
	"RawTextLessThanSign",
	"RawTextEndTagOpen",
	"RawTextEndTagName",
	"ScriptData",
	"ScriptDataLessThanSign",
	"ScriptDataEndTagOpen",
	"ScriptDataEndTagName",
	"ScriptDataEscapeStart",
	"ScriptDataEscapeStartDash",
	"ScriptDataEscaped",
	"ScriptDataEscapedDash",
	"ScriptDataEscapedDashDash",
	"ScriptDataEscapedLessThanSign",
	"ScriptDataEscapedEndTagOpen",
	"ScriptDataEscapedEndTagName",
	"ScriptDataDoubleEscapeStart",
	"ScriptDataDoubleEscaped",
	"ScriptDataDoubleEscapedDash",
	"ScriptDataDoubleEscapedDashDash",
	"ScriptDataDoubleEscapedLessThanSign",
	"ScriptDataDoubleEscapeEnd",
	"Plaintext",
	"EOF",
}

func (s stateID) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}
