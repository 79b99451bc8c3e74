package tts

import "errors"

var (
	// ErrMissingKey indicates the client was built without an API key.
	ErrMissingKey = errors.New("elevenlabs api key is required")
	// ErrMissingVoice indicates the client was built without a voice id.
	ErrMissingVoice = errors.New("voice id is required")
	// ErrSynthesis wraps failures during speech synthesis.
	ErrSynthesis = errors.New("speech synthesis failed")
)
