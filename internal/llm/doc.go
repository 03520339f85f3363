// Package llm provides text-generation clients for hosted language models.
// Gemini is the default provider; OpenAI and Anthropic are available through
// the same Generate interface. Clients can be wrapped with a rate limiter.
package llm
