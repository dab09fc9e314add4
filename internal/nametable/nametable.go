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

// Package nametable tracks a single tokenizer's "appropriate end tag"
// target and memoizes comparisons against it using the same trie-backed
// rune-slice map the reference decoder uses to intern element names.
package nametable

import "github.com/Goodwine/triemap"

// Cache holds the lower-cased name of the start tag a content mode
// (RCDATA/RAWTEXT/script data) is waiting to see closed, and caches the
// outcome of repeated candidate comparisons against it.
//
// The tracked name is stored as an owned string rather than a slice
// borrowed from the tokenizer's input: a Tokenizer may be handed a new
// buffer on every call to Next, so a borrowed slice could outlive the
// array backing it.
type Cache struct {
	tracked string
	hits    triemap.RuneSliceMap
}

// New returns a Cache with no tracked name; Match always reports false
// until Track is called.
func New() *Cache {
	return &Cache{}
}

// Track records lowerName (assumed already ASCII-lower-cased) as the tag
// to match against, discarding any comparisons memoized for the
// previously tracked name.
func (c *Cache) Track(lowerName string) {
	c.tracked = lowerName
	c.hits = triemap.RuneSliceMap{}
}

// Match reports whether candidateLower (assumed already ASCII-lower-cased)
// equals the tracked name. An empty tracked name never matches.
func (c *Cache) Match(candidateLower []rune) bool {
	if c.tracked == "" {
		return false
	}
	if len(candidateLower) != len(c.tracked) {
		return false
	}
	if v, ok := c.hits.Get(candidateLower); ok {
		return v.(bool)
	}
	match := string(candidateLower) == c.tracked
	c.hits.Put(candidateLower, match)
	return match
}
