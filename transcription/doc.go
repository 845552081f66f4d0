// Package transcription defines the speech-to-text provider contract and the
// Adapter the visit pipeline calls.
//
// # Backends
//
//   - transcription/deepgram: Deepgram prerecorded REST API (default)
//   - transcription/google: Google Cloud Speech long-running recognition
//   - transcription/whisper: Whisper through an OpenAI-compatible API (Groq)
//
// # Usage
//
//	reg := transcription.NewRegistry()
//	reg.RegisterFactory(deepgram.Name, deepgram.Factory)
//	p, err := reg.Create(cfg.Provider, cfg)
//	text, err := transcription.NewAdapter(p, log).Transcribe(ctx, path)
package transcription
