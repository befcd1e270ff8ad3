package highlight

import (
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// segmentLeadSec starts keyword windows slightly before the matched
// segment so the reaction keeps its setup.
const segmentLeadSec = 3.0

// fuzzyMinTokenLen guards the Levenshtein match against short-word noise.
const fuzzyMinTokenLen = 5

// keywordCandidates seeds a candidate per transcript segment that matches
// the reaction lexicon or carries emphasis (questions, short exclamations).
// Windows grow forward by absorbing adjacent segments within MaxDuration.
func keywordCandidates(in Input, cfg Config) []Candidate {
	segs := in.Segments
	if len(segs) == 0 {
		return nil
	}

	out := make([]Candidate, 0, 8)
	for i, seg := range segs {
		hits := matchKeywords(seg.Text, cfg.Keywords)
		emphasis := emphasisMarks(seg.Text)
		if len(hits) == 0 && emphasis == 0 {
			continue
		}

		start := seg.Start - segmentLeadSec
		if start < 0 {
			start = 0
		}

		// Absorb following segments while the window stays inside bounds.
		// A seed segment longer than MaxDuration gets trimmed to it.
		end := seg.End
		if end-start > cfg.MaxDuration {
			end = start + cfg.MaxDuration
		}
		texts := []string{strings.TrimSpace(seg.Text)}
		for j := i + 1; j < len(segs); j++ {
			if segs[j].End-start > cfg.MaxDuration {
				break
			}
			end = segs[j].End
			if t := strings.TrimSpace(segs[j].Text); t != "" {
				texts = append(texts, t)
			}
		}

		start, end = clampWindow(start, 0, end-start, cfg.MinDuration, in.Duration)

		c := Candidate{
			Start:       start,
			End:         end,
			KeywordHits: len(hits),
			Emphasis:    emphasis,
			Signals:     SignalKeyword,
			Text:        strings.Join(texts, " "),
		}
		c.Score = score(c, cfg)
		out = append(out, c)
	}
	return out
}

// matchKeywords reports which configured keywords appear in the text.
// Single-word keywords additionally tolerate one edit of distance, since
// speech recognition often slightly misspells reaction words.
func matchKeywords(text string, keywords []string) []string {
	lower := strings.ToLower(text)
	tokens := tokenize(lower)

	var matched []string
	for _, kw := range keywords {
		kwLower := strings.ToLower(strings.TrimSpace(kw))
		if kwLower == "" {
			continue
		}
		if strings.Contains(lower, kwLower) {
			matched = append(matched, kwLower)
			continue
		}
		if strings.ContainsRune(kwLower, ' ') || len([]rune(kwLower)) < fuzzyMinTokenLen {
			continue
		}
		for _, tok := range tokens {
			if len([]rune(tok)) < fuzzyMinTokenLen {
				continue
			}
			if levenshtein.DistanceForStrings([]rune(tok), []rune(kwLower), levenshtein.DefaultOptions) <= 1 {
				matched = append(matched, kwLower)
				break
			}
		}
	}
	return matched
}

// emphasisMarks counts engagement punctuation: any question, and
// exclamations on short enough lines to read as genuine outbursts.
func emphasisMarks(text string) int {
	trimmed := strings.TrimSpace(text)
	marks := 0
	if strings.Contains(trimmed, "?") {
		marks++
	}
	if strings.Contains(trimmed, "!") && len([]rune(trimmed)) < 100 {
		marks++
	}
	return marks
}

func tokenize(lower string) []string {
	return strings.FieldsFunc(lower, func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', ',', '.', ';', ':', '!', '?', '"', '\'', '(', ')':
			return true
		}
		return false
	})
}
