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


// Package registry holds code-edition metadata and resolves which editions
// are legally in force for a jurisdiction on a given date.
//
// The Registry interface is pure lookup: families by province, national
// families, and the edition list of a family. The Resolver walks it to pick
// exactly one edition per applicable family using half-open
// [effective, superseded) intervals.
//
// A built-in catalog covers the Canadian national codes and the provincial
// codes of Ontario, British Columbia, Alberta and Quebec. Historical
// provincial editions can be backfilled from a regulations.json file without
// mutating existing entries; intervals are chained so the superseded date of
// one edition equals the effective date of its successor. The registry is
// read-only at query time.
package registry
