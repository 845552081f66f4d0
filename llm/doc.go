// Package llm defines the chat-completion provider used to turn a visit
// transcript into structured notes.
//
// The only backend is llm/openai, which speaks the OpenAI chat completions
// protocol and is pointed at Groq by default.
package llm
