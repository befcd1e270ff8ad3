package types

// ClipTaskStepParam carries everything a pipeline run accumulates while
// moving through its steps. It lives only for the duration of one task
// goroutine; persistent state goes through TaskPtr.
type ClipTaskStepParam struct {
	TaskId       string
	TaskPtr      *ClipTask
	TaskBasePath string

	Link       string
	Language   string
	Category   string
	CampaignId int64

	// Overrides; zero means use the configured default.
	TargetCount int

	VideoInfo *VideoInfo
	VideoPath string
	AudioPath string

	Segments []TranscribedSegment
}
