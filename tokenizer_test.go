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

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// collect drains a Tokenizer over src, re-running GotoXxx hooks whenever
// it sees a start tag named "script", "textarea", "title", "style", "xmp"
// or "plaintext",
// to exercise content-mode switching the way a real caller would.
func collect(t *testing.T, src []byte, opts ...Option) []Token {
	t.Helper()
	tok, err := NewTokenizer(opts...)
	if err != nil {
		t.Fatalf("NewTokenizer: %v", err)
	}
	var got []Token
	for {
		tk, ok := tok.Next(src)
		if !ok {
			break
		}
		got = append(got, tk)
		if tk.Kind == TokenTag && !tk.TagKind.IsEnd() {
			switch string(tk.Name.Bytes(src)) {
			case "script":
				tok.GotoScriptData()
			case "textarea", "title":
				tok.GotoRCData(tk.Name.Bytes(src))
			case "style", "xmp":
				tok.GotoRawText(tk.Name.Bytes(src))
			case "plaintext":
				tok.GotoPlainText()
			}
		}
	}
	return got
}

func textOf(src []byte, s Span) string { return string(s.Bytes(src)) }

func TestSimpleTag(t *testing.T) {
	src := []byte("<p>hi</p>")
	got := collect(t, src)

	want := []Token{
		{Kind: TokenTag, TagKind: TagStart, Span: Span{0, 3}, Name: Span{1, 2}},
		{Kind: TokenText, Span: Span{3, 5}},
		{Kind: TokenTag, TagKind: TagEnd, Span: Span{5, 9}, Name: Span{7, 8}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestAttributes(t *testing.T) {
	src := []byte(`<a href="x" disabled>link</a>`)
	got := collect(t, src)

	if len(got) != 3 {
		t.Fatalf("got %d tokens, want 3: %+v", len(got), got)
	}
	tag := got[0]
	if tag.Kind != TokenTag || tag.TagKind != TagStartAttrs {
		t.Errorf("tag = %+v, want Kind=Tag TagKind=StartAttrs", tag)
	}
	if textOf(src, tag.Name) != "a" {
		t.Errorf("tag name = %q, want %q", textOf(src, tag.Name), "a")
	}
}

func TestAttrEventsMode(t *testing.T) {
	src := []byte(`<a href="x" disabled>`)
	got := collect(t, src, WithAttrEvents())

	var kinds []TokenKind
	for _, tk := range got {
		kinds = append(kinds, tk.Kind)
	}
	want := []TokenKind{TokenTagName, TokenAttr, TokenAttr}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
	}

	href := got[1]
	if !href.HasValue || href.Quote != QuoteDouble || textOf(src, href.Value) != "x" {
		t.Errorf("href attr = %+v, want value %q double-quoted", href, "x")
	}
	disabled := got[2]
	if disabled.HasValue {
		t.Errorf("disabled attr = %+v, want HasValue=false", disabled)
	}
}

func TestSelfClosingTag(t *testing.T) {
	src := []byte(`<br/>`)
	got := collect(t, src)
	if len(got) != 1 {
		t.Fatalf("got %d tokens, want 1: %+v", len(got), got)
	}
	if got[0].TagKind != TagStartSelf {
		t.Errorf("TagKind = %v, want TagStartSelf", got[0].TagKind)
	}
}

func TestComment(t *testing.T) {
	src := []byte(`<!-- hello -->`)
	got := collect(t, src)
	want := []Token{{Kind: TokenComment, Span: Span{0, 14}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestNestedCommentFlagsErrorButContinues(t *testing.T) {
	src := []byte(`<!-- a <!-- b --> c -->`)
	got := collect(t, src)

	var errKinds []ErrorKind
	var comments int
	for _, tk := range got {
		if tk.Kind == TokenParseError {
			errKinds = append(errKinds, tk.Error)
		}
		if tk.Kind == TokenComment {
			comments++
		}
	}
	if len(errKinds) != 1 || errKinds[0] != ErrNestedComment {
		t.Errorf("errors = %v, want exactly one ErrNestedComment", errKinds)
	}
	if comments != 1 {
		t.Errorf("got %d comment tokens, want 1", comments)
	}
}

func TestDoctypeMinimal(t *testing.T) {
	src := []byte(`<!DOCTYPE html>`)
	got := collect(t, src)
	if len(got) != 1 {
		t.Fatalf("got %d tokens, want 1: %+v", len(got), got)
	}
	dt := got[0]
	if dt.Kind != TokenDoctype || !dt.HasName || textOf(src, dt.Name) != "html" {
		t.Errorf("doctype = %+v, want name %q", dt, "html")
	}
	if dt.ForceQuirks {
		t.Errorf("ForceQuirks = true, want false for a clean doctype")
	}
	if !dt.Extra.Empty() {
		t.Errorf("Extra = %+v, want empty (no PUBLIC/SYSTEM identifiers)", dt.Extra)
	}
}

func TestDoctypePublicAndSystem(t *testing.T) {
	src := []byte(`<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01//EN" "http://www.w3.org/TR/html4/strict.dtd">`)
	got := collect(t, src)
	if len(got) != 1 {
		t.Fatalf("got %d tokens, want 1: %+v", len(got), got)
	}
	dt := got[0]
	if dt.Extra.Empty() {
		t.Errorf("Extra is empty, want it to cover the PUBLIC/SYSTEM identifier region")
	}
	extra := textOf(src, dt.Extra)
	if !cmp.Equal(extra[:6], "PUBLIC") {
		t.Errorf("Extra starts with %q, want it to start at the PUBLIC keyword", extra[:6])
	}
}

func TestMissingDoctypeNameForcesQuirks(t *testing.T) {
	src := []byte(`<!DOCTYPE >`)
	got := collect(t, src)

	var sawError, sawDoctype bool
	for _, tk := range got {
		if tk.Kind == TokenParseError && tk.Error == ErrMissingDoctypeName {
			sawError = true
		}
		if tk.Kind == TokenDoctype {
			sawDoctype = true
			if !tk.ForceQuirks {
				t.Errorf("ForceQuirks = false, want true")
			}
		}
	}
	if !sawError || !sawDoctype {
		t.Errorf("got %+v, want both a missing-doctype-name error and a doctype token", got)
	}
}

func TestCDATASurfacedAsComment(t *testing.T) {
	src := []byte(`<![CDATA[ raw <data> ]]>`)
	got := collect(t, src)
	want := []Token{{Kind: TokenComment, Span: Span{0, len(src)}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestScriptDataLiteralAngleBrackets(t *testing.T) {
	src := []byte(`<script>if (x < 1) { y(); }</script>`)
	got := collect(t, src)

	var gotText, gotEndTag bool
	for _, tk := range got {
		if tk.Kind == TokenText {
			gotText = true
			if textOf(src, tk.Span) != "if (x < 1) { y(); }" {
				t.Errorf("script text = %q, want the raw script body verbatim", textOf(src, tk.Span))
			}
		}
		if tk.Kind == TokenTag && tk.TagKind.IsEnd() {
			gotEndTag = true
		}
	}
	if !gotText || !gotEndTag {
		t.Errorf("got %+v, want a text token and a closing script end tag", got)
	}
}

func TestScriptDataEscaped(t *testing.T) {
	src := []byte("<script>var x = '<!-- not a real comment -->';</script>")
	got := collect(t, src)

	var endTags int
	for _, tk := range got {
		if tk.Kind == TokenTag && tk.TagKind.IsEnd() {
			endTags++
		}
	}
	if endTags != 1 {
		t.Errorf("got %d end tags, want exactly 1 (the real </script>)", endTags)
	}
}

func TestScriptDataDoubleEscape(t *testing.T) {
	// The nested "<script>...</script>" inside the comment-like region
	// toggles double-escaped mode; a "</script" inside it must not end
	// tokenization early.
	src := []byte("<script>/*<!--*/ var x = 1; /*<script>*/ doStuff(); /*</script>*/ /*-->*/</script>")
	got := collect(t, src)

	var endTags int
	for _, tk := range got {
		if tk.Kind == TokenTag && tk.TagKind.IsEnd() {
			endTags++
		}
	}
	if endTags != 1 {
		t.Errorf("got %d end tags, want exactly 1", endTags)
	}
}

func TestRCDataTextarea(t *testing.T) {
	src := []byte(`<textarea>  <b>not a tag</b>  </textarea>`)
	got := collect(t, src)

	var sawTag bool
	for _, tk := range got {
		if tk.Kind == TokenTag && textOf(src, tk.Name) == "b" {
			sawTag = true
		}
	}
	if sawTag {
		t.Errorf("got a <b> tag token, want RCDATA to treat it as literal text")
	}
}

func TestRawTextStyle(t *testing.T) {
	src := []byte(`<style>.a < .b { color: red }</style>`)
	got := collect(t, src)

	var texts []string
	for _, tk := range got {
		if tk.Kind == TokenText {
			texts = append(texts, textOf(src, tk.Span))
		}
	}
	if len(texts) != 1 || texts[0] != ".a < .b { color: red }" {
		t.Errorf("texts = %v, want a single literal RAWTEXT run", texts)
	}
}

func TestPlaintextNeverExits(t *testing.T) {
	src := []byte(`<plaintext></plaintext> still text`)
	got := collect(t, src)

	// Only the opening tag and the final deprecated_and_unsupported
	// error are expected: everything after stays inside PLAINTEXT.
	if len(got) != 2 {
		t.Fatalf("got %d tokens, want 2: %+v", len(got), got)
	}
	if got[1].Kind != TokenParseError || got[1].Error != ErrDeprecatedAndUnsupported {
		t.Errorf("final token = %+v, want ErrDeprecatedAndUnsupported", got[1])
	}
}

func TestWhitespaceOnlyTextIsNotEmitted(t *testing.T) {
	src := []byte("<p>   \n\t  </p>")
	got := collect(t, src)
	for _, tk := range got {
		if tk.Kind == TokenText {
			t.Errorf("got a text token %+v for whitespace-only content, want none", tk)
		}
	}
}

func TestTextTrimsSurroundingWhitespace(t *testing.T) {
	src := []byte("<p>  hello world  </p>")
	got := collect(t, src)
	for _, tk := range got {
		if tk.Kind == TokenText {
			if textOf(src, tk.Span) != "hello world" {
				t.Errorf("text = %q, want trimmed %q", textOf(src, tk.Span), "hello world")
			}
		}
	}
}

func TestUnexpectedNullInData(t *testing.T) {
	src := []byte("ab\x00cd")
	got := collect(t, src)

	var errs, texts int
	for _, tk := range got {
		switch tk.Kind {
		case TokenParseError:
			errs++
			if tk.Error != ErrUnexpectedNullCharacter {
				t.Errorf("error kind = %v, want ErrUnexpectedNullCharacter", tk.Error)
			}
		case TokenText:
			texts++
		}
	}
	if errs != 1 || texts != 1 {
		t.Errorf("got %d errors and %d text tokens, want 1 and 1 (NUL abandons the run before it)", errs, texts)
	}
}

func TestBogusCommentFromQuestionMark(t *testing.T) {
	src := []byte(`<?xml version="1.0"?>`)
	got := collect(t, src)

	var sawError, sawComment bool
	for _, tk := range got {
		if tk.Kind == TokenParseError && tk.Error == ErrInvalidFirstCharacterOfTagName {
			sawError = true
		}
		if tk.Kind == TokenComment {
			sawComment = true
		}
	}
	if !sawError || !sawComment {
		t.Errorf("got %+v, want an invalid-first-character-of-tag-name error and a bogus comment", got)
	}
}

func TestEOFMidTagIsReported(t *testing.T) {
	src := []byte(`<div id="x`)
	got := collect(t, src)
	if len(got) != 1 || got[0].Kind != TokenParseError || got[0].Error != ErrEOFInAttributeValue {
		t.Errorf("got %+v, want a single ErrEOFInAttributeValue", got)
	}
}

func TestEOFInCommentSalvagesToken(t *testing.T) {
	src := []byte(`<!-- unterminated`)
	got := collect(t, src)

	if len(got) != 2 {
		t.Fatalf("got %d tokens, want 2 (error then salvaged comment): %+v", len(got), got)
	}
	if got[0].Kind != TokenParseError || got[0].Error != ErrEOFInComment {
		t.Errorf("first token = %+v, want ErrEOFInComment", got[0])
	}
	if got[1].Kind != TokenComment {
		t.Errorf("second token = %+v, want a salvaged comment token", got[1])
	}
}
