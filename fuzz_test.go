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

import "testing"

// FuzzTokenizer drives the tokenizer directly over arbitrary byte strings.
// It never constructs a DOM, so the only properties worth checking are the
// ones that hold independent of document structure: no panics, spans stay
// in bounds, and the run terminates.
func FuzzTokenizer(f *testing.F) {
	f.Add("<p>hi</p>")
	f.Add(`<img src="a.png"/>`)
	f.Add("<!-- x -->")
	f.Add("<!DOCTYPE html>")
	f.Add(`<script>let x = "</script>";</script>`)
	f.Add("<p class=foo bar>")
	f.Add("<x<y>")
	f.Add("<!--a--!>")
	f.Add("<!")
	f.Add("")
	f.Add("plain text, no tags")
	f.Add("a\x00b")

	// Unterminated constructs at EOF.
	f.Add("<!-- unterminated")
	f.Add("<!DOCTYPE html")
	f.Add("<![CDATA[ unterminated")
	f.Add("<script>unterminated")
	f.Add("<textarea>unterminated")
	f.Add("<div id=")
	f.Add(`<div id="unterminated`)
	f.Add("<div")
	f.Add("</")
	f.Add("<")

	// Comment corner cases.
	f.Add("<!---->")
	f.Add("<!--->")
	f.Add("<!-->")
	f.Add("<!--<!--nested-->-->")
	f.Add("<!--a--!-->")

	// Doctype corner cases.
	f.Add("<!DOCTYPE>")
	f.Add("<!DOCTYPE html SYSTEM 'quirk'>")
	f.Add(`<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01//EN">`)
	f.Add("<!DOCTYPE html PUBLIC>")

	// Script-data escape/double-escape ladder.
	f.Add("<script><!--x<script>y</script>z-->done</script>")
	f.Add("<script><!--<script></script>-->done</script>")

	// Bogus markup declarations.
	f.Add(`<?xml version="1.0"?>`)
	f.Add("<!FOO bar>")

	f.Fuzz(func(t *testing.T, input string) {
		src := []byte(input)
		tok, err := NewTokenizer()
		if err != nil {
			t.Fatalf("NewTokenizer: %v", err)
		}

		calls := 0
		maxCalls := len(src) + 64
		for {
			calls++
			if calls > maxCalls {
				t.Fatalf("Next did not terminate within %d calls for input %q", maxCalls, input)
			}
			tk, ok := tok.Next(src)
			if !ok {
				break
			}
			if tk.Span.Start < 0 || tk.Span.End > len(src) || tk.Span.Start > tk.Span.End {
				t.Fatalf("span %+v out of bounds for input of length %d", tk.Span, len(src))
			}
			if tk.Kind == TokenTag && (tk.Name.Start < 0 || tk.Name.End > len(src)) {
				t.Fatalf("tag name span %+v out of bounds for input of length %d", tk.Name, len(src))
			}
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

		if _, ok := tok.Next(src); ok {
			t.Fatalf("Next kept returning tokens after reporting exhaustion for input %q", input)
		}
	})
}
