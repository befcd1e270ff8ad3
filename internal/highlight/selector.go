// Package highlight selects clip-worthy time windows from a long video's
// audio energy timeline, transcript and chapter markers. It is a pure,
// deterministic computation: no I/O, no shared state, safe to call
// concurrently for independent videos.
package highlight

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	apperrors "clip-automator/pkg/errors"
)

// Signal marks which source streams contributed to a candidate.
type Signal uint8

const (
	SignalEnergy Signal = 1 << iota
	SignalKeyword
	SignalChapter
)

func (s Signal) Has(flag Signal) bool { return s&flag != 0 }

func (s Signal) String() string {
	var parts []string
	if s.Has(SignalEnergy) {
		parts = append(parts, "energy")
	}
	if s.Has(SignalKeyword) {
		parts = append(parts, "keyword")
	}
	if s.Has(SignalChapter) {
		parts = append(parts, "chapter")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// EnergyPoint is one sample of the audio loudness timeline, normalized
// so the loudest sample of the video is 1.
type EnergyPoint struct {
	Time   float64
	Energy float64
}

// Segment is one timed transcript segment.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// Chapter is a creator-defined named range of the source video.
type Chapter struct {
	Start float64
	End   float64
	Title string
}

// Candidate is a provisional clip window. It only exists during selection.
type Candidate struct {
	Start       float64
	End         float64
	Score       float64
	PeakEnergy  float64
	KeywordHits int
	Emphasis    int
	Signals     Signal
	Text        string
	Title       string
}

func (c Candidate) duration() float64 { return c.End - c.Start }

// ClipWindow is a selected clip range, immutable once returned.
type ClipWindow struct {
	Start        float64
	End          float64
	Score        float64
	HeadlineHint string
}

// Input bundles the three signal streams for one source video. Any stream
// may be empty; it then contributes no candidates.
type Input struct {
	Duration float64
	Energy   []EnergyPoint
	Segments []Segment
	Chapters []Chapter
}

// Config carries the duration bounds and scoring knobs. All values are
// deployment tuning; the algorithm hardcodes none of them.
type Config struct {
	MinDuration    float64
	MaxDuration    float64
	TargetDuration float64
	TargetCount    int

	PeakStddevFactor     float64
	MergeOverlapFraction float64

	EnergyWeight  float64
	KeywordWeight float64
	ChapterWeight float64

	Keywords []string
}

func (cfg Config) validate() error {
	if cfg.MinDuration <= 0 || cfg.MaxDuration <= 0 {
		return apperrors.WrapWithDetail(apperrors.CodeInvalidSelectorConfig,
			"Invalid highlight selector configuration",
			fmt.Sprintf("durations must be positive: min=%.2f max=%.2f", cfg.MinDuration, cfg.MaxDuration), nil)
	}
	if cfg.MinDuration > cfg.MaxDuration {
		return apperrors.WrapWithDetail(apperrors.CodeInvalidSelectorConfig,
			"Invalid highlight selector configuration",
			fmt.Sprintf("min duration %.2f exceeds max duration %.2f", cfg.MinDuration, cfg.MaxDuration), nil)
	}
	if cfg.TargetCount <= 0 {
		return apperrors.WrapWithDetail(apperrors.CodeInvalidSelectorConfig,
			"Invalid highlight selector configuration",
			fmt.Sprintf("target count must be positive: %d", cfg.TargetCount), nil)
	}
	if cfg.TargetDuration != 0 && (cfg.TargetDuration < cfg.MinDuration || cfg.TargetDuration > cfg.MaxDuration) {
		return apperrors.WrapWithDetail(apperrors.CodeInvalidSelectorConfig,
			"Invalid highlight selector configuration",
			fmt.Sprintf("target duration %.2f outside [%.2f, %.2f]", cfg.TargetDuration, cfg.MinDuration, cfg.MaxDuration), nil)
	}
	if cfg.EnergyWeight < 0 || cfg.KeywordWeight < 0 || cfg.ChapterWeight < 0 {
		return apperrors.WrapWithDetail(apperrors.CodeInvalidSelectorConfig,
			"Invalid highlight selector configuration", "scoring weights must be non-negative", nil)
	}
	if cfg.MergeOverlapFraction < 0 || cfg.MergeOverlapFraction >= 1 {
		return apperrors.WrapWithDetail(apperrors.CodeInvalidSelectorConfig,
			"Invalid highlight selector configuration",
			fmt.Sprintf("merge overlap fraction %.2f outside [0, 1)", cfg.MergeOverlapFraction), nil)
	}
	return nil
}

// target returns the preferred seed window duration.
func (cfg Config) target() float64 {
	if cfg.TargetDuration > 0 {
		return cfg.TargetDuration
	}
	return (cfg.MinDuration + cfg.MaxDuration) / 2
}

// Select picks at most cfg.TargetCount non-overlapping clip windows. The
// result is ordered by start time ascending; ranking happens internally
// by score. Identical inputs and config always yield the identical result.
func Select(in Input, cfg Config) ([]ClipWindow, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if in.Duration < cfg.MinDuration {
		return nil, apperrors.WrapWithDetail(apperrors.CodeInsufficientContent,
			"Source shorter than minimum clip duration",
			fmt.Sprintf("video duration %.1fs, minimum clip %.1fs", in.Duration, cfg.MinDuration), nil)
	}

	candidates := make([]Candidate, 0, 16)
	candidates = append(candidates, energyCandidates(in, cfg)...)
	candidates = append(candidates, keywordCandidates(in, cfg)...)
	candidates = append(candidates, chapterCandidates(in, cfg)...)

	if len(candidates) == 0 {
		return nil, apperrors.New(apperrors.CodeNoHighlightsFound,
			"No signal produced any highlight candidate")
	}

	merged := mergeOverlapping(candidates, cfg.MergeOverlapFraction)
	selected := pick(merged, cfg.TargetCount)

	// Downstream numbers clips chronologically.
	sort.SliceStable(selected, func(i, j int) bool { return selected[i].Start < selected[j].Start })

	return lo.Map(selected, func(c Candidate, _ int) ClipWindow {
		return ClipWindow{
			Start:        c.Start,
			End:          c.End,
			Score:        c.Score,
			HeadlineHint: headlineHint(c),
		}
	}), nil
}

// score applies the configured weights to a candidate's signal attributes.
// Emphasis marks (questions, short exclamations) count as half a keyword.
func score(c Candidate, cfg Config) float64 {
	s := cfg.EnergyWeight * c.PeakEnergy
	s += cfg.KeywordWeight * (float64(c.KeywordHits) + 0.5*float64(c.Emphasis))
	if c.Signals.Has(SignalChapter) {
		s += cfg.ChapterWeight
	}
	return s
}

// pick greedily accepts the best-scoring candidates that do not intersect
// an already accepted window. No overlap tolerance at this stage.
func pick(candidates []Candidate, targetCount int) []Candidate {
	ranked := make([]Candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Start < ranked[j].Start
	})

	accepted := make([]Candidate, 0, targetCount)
	for _, c := range ranked {
		if len(accepted) >= targetCount {
			break
		}
		intersects := false
		for _, a := range accepted {
			if c.Start < a.End && c.End > a.Start {
				intersects = true
				break
			}
		}
		if !intersects {
			accepted = append(accepted, c)
		}
	}
	return accepted
}

func headlineHint(c Candidate) string {
	if title := strings.TrimSpace(c.Title); title != "" {
		return title
	}
	return strings.TrimSpace(c.Text)
}

// clampWindow anchors a window of length target at anchor minus lead and
// fits it inside [0, duration], never shorter than min.
func clampWindow(anchor, lead, target, min, duration float64) (float64, float64) {
	start := anchor - lead
	if start < 0 {
		start = 0
	}
	end := start + target
	if end > duration {
		end = duration
		start = end - target
		if start < 0 {
			start = 0
		}
	}
	if end-start < min {
		end = start + min
		if end > duration {
			end = duration
			start = end - min
			if start < 0 {
				start = 0
			}
		}
	}
	return start, end
}
