// Package interpret turns natural-language building-code questions into
// structured search parameters.
//
// Interpretation has three stages: lexical extraction of explicit section
// references, model-backed extraction of date, keywords, building type, and
// province, and validation of the extracted keywords against the controlled
// vocabulary. Model results are cached persistently by the hash of the
// normalized query and the hash of the prompt revision.
package interpret
