package types

import "context"

// Clip task lifecycle statuses, persisted on ClipTask.Status.
const (
	ClipTaskStatusProcessing uint8 = iota + 1
	ClipTaskStatusCompleted
	ClipTaskStatusFailed
)

// TranscribedSegment is one timed segment of the source audio transcript.
type TranscribedSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// ChapterInfo is a creator-defined chapter from the source platform.
type ChapterInfo struct {
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Title     string  `json:"title"`
}

// VideoInfo is the downloader's view of a source video.
type VideoInfo struct {
	Id          string        `json:"id"`
	Title       string        `json:"title"`
	Channel     string        `json:"channel"`
	Description string        `json:"description"`
	Duration    float64       `json:"duration"`
	Chapters    []ChapterInfo `json:"chapters"`
	Path        string        `json:"-"`
}

// Transcriber produces timed transcript segments for an audio file.
type Transcriber interface {
	Transcribe(ctx context.Context, audioFile string, language string) ([]TranscribedSegment, error)
}

// ChatCompleter is the LLM used for headline generation.
type ChatCompleter interface {
	ChatCompletion(prompt string) (string, error)
}
