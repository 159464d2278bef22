// Package openai implements the ai.QueryParser interface using
// OpenAI-compatible chat completion APIs (OpenAI, Ollama, LocalAI, vLLM).
//
// The parser asks for JSON mode at temperature 0, strips markdown fences,
// repairs common JSON defects, and retries parsing up to three times before
// giving up.
package openai
