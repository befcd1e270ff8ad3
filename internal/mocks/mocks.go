// Package mocks provides hand-written test doubles for the service's
// provider interfaces.
package mocks

import (
	"context"

	"clip-automator/internal/types"
)

type MockTranscriber struct {
	Segments []types.TranscribedSegment
	Err      error

	Calls     int
	LastAudio string
	LastLang  string
}

func (m *MockTranscriber) Transcribe(_ context.Context, audioFile, language string) ([]types.TranscribedSegment, error) {
	m.Calls++
	m.LastAudio = audioFile
	m.LastLang = language
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Segments, nil
}

type MockChatCompleter struct {
	Reply string
	Err   error

	Calls      int
	LastPrompt string
}

func (m *MockChatCompleter) ChatCompletion(prompt string) (string, error) {
	m.Calls++
	m.LastPrompt = prompt
	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}
