package highlight

import "sort"

// mergeOverlapping collapses candidates whose windows share more than
// overlapFraction of the shorter window's duration. A single sorted sweep
// makes the merge transitive: chains of overlaps collapse into one group.
// The group's representative keeps the highest score's window; signals are
// unioned, keyword/energy attributes keep their strongest value.
func mergeOverlapping(candidates []Candidate, overlapFraction float64) []Candidate {
	if len(candidates) <= 1 {
		return candidates
	}

	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	var out []Candidate
	group := []Candidate{sorted[0]}
	groupEnd := sorted[0].End

	for _, c := range sorted[1:] {
		if overlaps(group[0].Start, groupEnd, c, overlapFraction) {
			group = append(group, c)
			if c.End > groupEnd {
				groupEnd = c.End
			}
			continue
		}
		out = append(out, collapse(group))
		group = []Candidate{c}
		groupEnd = c.End
	}
	out = append(out, collapse(group))
	return out
}

// overlaps reports whether candidate c shares more than fraction of the
// shorter duration with the running group extent [groupStart, groupEnd].
func overlaps(groupStart, groupEnd float64, c Candidate, fraction float64) bool {
	shared := min(groupEnd, c.End) - max(groupStart, c.Start)
	if shared <= 0 {
		return false
	}
	shorter := min(groupEnd-groupStart, c.duration())
	if shorter <= 0 {
		return false
	}
	return shared > fraction*shorter
}

func collapse(group []Candidate) Candidate {
	rep := group[0]
	for _, c := range group[1:] {
		if c.Score > rep.Score || (c.Score == rep.Score && c.Start < rep.Start) {
			rep = c
		}
	}

	merged := rep
	for _, c := range group {
		merged.Signals |= c.Signals
		if c.KeywordHits > merged.KeywordHits {
			merged.KeywordHits = c.KeywordHits
		}
		if c.Emphasis > merged.Emphasis {
			merged.Emphasis = c.Emphasis
		}
		if c.PeakEnergy > merged.PeakEnergy {
			merged.PeakEnergy = c.PeakEnergy
		}
		if merged.Text == "" && c.Text != "" {
			merged.Text = c.Text
		}
		if merged.Title == "" && c.Title != "" {
			merged.Title = c.Title
		}
	}
	return merged
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
