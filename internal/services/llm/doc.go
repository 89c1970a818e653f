// Package llm wraps an OpenRouter-compatible chat completion API behind the
// Generator interface the discovery pipeline depends on.
//
// Generation output is treated as untrusted free text. DecodeJSON copes with
// the common failure shapes (code fences, prose around the payload, streaming
// schemas returned for non-streaming requests). The client never retries: the
// pipeline's failure policy is to fall back deterministically, not to try the
// generator again.
package llm
