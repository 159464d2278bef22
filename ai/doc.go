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


// Package ai provides abstractions for the AI services used in codechronicle.
//
// This package defines the QueryParser interface, which turns free-form
// building-code questions into structured search parameters. It follows the
// dependency inversion principle: the interpretation and search layers depend
// on the abstraction, never on a concrete backend.
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible chat APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewQueryParser) return INTERFACE types to
// enforce abstraction:
//
//	parser, err := openai.NewQueryParser(config)  // returns ai.QueryParser
//
// Test utility constructors (mock.NewQueryParser) return CONCRETE types to
// enable behavior injection and call-count assertions:
//
//	mockParser := mock.NewQueryParser()  // returns *mock.QueryParser
//	mockParser.ParseQueryFunc = ...      // needs concrete type
//	count := mockParser.CallCount()      // test assertion
//
// # Error Semantics
//
// Backend failures (network, authentication, model errors) are reported as
// errors wrapping ErrUnavailable so callers can degrade gracefully. A
// response that cannot be parsed after repair and retries wraps
// ErrMalformedResponse.
package ai
