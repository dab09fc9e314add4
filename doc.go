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

// Package html5 is a streaming HTML5 tokenizer: the lexical layer of the
// WHATWG HTML parsing algorithm, with no tree construction and no
// character-reference resolution.
//
// Every token is a Span pair (byte offsets into the caller's buffer), so
// tokenizing never allocates. Callers drive content-mode switches
// themselves by calling GotoScriptData/GotoRCData/GotoRawText/
// GotoPlainText after seeing the relevant start tag; the tokenizer has no
// built-in notion of which elements those are.
//
//	no tree construction
//	no character reference resolution
//	zero allocation per token
package html5
