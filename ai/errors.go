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


package ai

import "errors"

var (
	// ErrUnavailable indicates the AI backend could not be reached or
	// refused the request.
	ErrUnavailable = errors.New("ai service unavailable")

	// ErrAuthentication indicates the AI backend rejected the credentials.
	ErrAuthentication = errors.New("ai authentication failed")

	// ErrMalformedResponse indicates the model output could not be parsed
	// after repair and retries.
	ErrMalformedResponse = errors.New("malformed ai response")
)
