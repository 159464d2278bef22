// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package search

import "github.com/xrash/smetrics"

// Matcher scores string similarity for the fuzzy tier and for "did you mean"
// suggestions. Ratio returns a similarity from 0 (unrelated) to 100 (equal).
//
// A nil Matcher disables fuzzy matching entirely; the engine then scores only
// the exact tiers and suggestions fall back to a generic message.
type Matcher interface {
	Ratio(a, b string) float64
}

// RatioMatcher implements Matcher with an edit-distance ratio: the
// Wagner-Fischer distance with substitutions costing 2, normalized as
// (len(a)+len(b)-distance)/(len(a)+len(b)) * 100. Equal strings score 100.
type RatioMatcher struct{}

var _ Matcher = RatioMatcher{}

// NewRatioMatcher creates the default edit-distance matcher.
func NewRatioMatcher() RatioMatcher {
	return RatioMatcher{}
}

// Ratio returns the similarity of a and b on a 0-100 scale.
func (RatioMatcher) Ratio(a, b string) float64 {
	lenSum := len(a) + len(b)
	if lenSum == 0 {
		return 100
	}
	dist := smetrics.WagnerFischer(a, b, 1, 1, 2)
	return float64(lenSum-dist) / float64(lenSum) * 100
}
