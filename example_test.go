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

// Example_tokenizeDocument shows the caller-driven content-mode switch: the
// tokenizer itself has no notion of which elements are raw text or RCDATA,
// so the caller must call GotoScriptData/GotoRCData/GotoRawText after
// seeing the relevant start tag.
func Example_tokenizeDocument() {
	src := []byte(`<p>hi <b>there</b></p><script>1 < 2</script>`)

	tok, err := NewTokenizer()
	if err != nil {
		panic(err)
	}

	for {
		tk, ok := tok.Next(src)
		if !ok {
			break
		}
		switch tk.Kind {
		case TokenTag:
			name := string(tk.Name.Bytes(src))
			fmt.Printf("tag %s %s\n", tk.TagKind, name)
			if name == "script" && !tk.TagKind.IsEnd() {
				tok.GotoScriptData()
			}
		case TokenText:
			fmt.Printf("text %q\n", string(tk.Span.Bytes(src)))
		}
	}

	// Output:
	// tag Start p
	// text "hi"
	// tag Start b
	// text "there"
	// tag End b
	// tag End p
	// tag Start script
	// text "1 < 2"
	// tag End script
}

// Example_withAttrEvents shows attribute-granularity mode, useful when a
// caller wants to react to individual attributes without buffering a whole
// tag's worth of them.
func Example_withAttrEvents() {
	src := []byte(`<a href="/x" target="_blank">`)

	tok, err := NewTokenizer(WithAttrEvents())
	if err != nil {
		panic(err)
	}

	for {
		tk, ok := tok.Next(src)
		if !ok {
			break
		}
		switch tk.Kind {
		case TokenTagName:
			fmt.Printf("tag %s\n", string(tk.Name.Bytes(src)))
		case TokenAttr:
			name := string(tk.Name.Bytes(src))
			if tk.HasValue {
				fmt.Printf("attr %s=%q\n", name, string(tk.Value.Bytes(src)))
			} else {
				fmt.Printf("attr %s\n", name)
			}
		}
	}

	// Output:
	// tag a
	// attr href="/x"
	// attr target="_blank"
}
