package highlight

// chapterCandidates seeds one candidate per chapter. Chapters already
// inside the duration bounds are taken as-is; short ones grow toward the
// target duration; long ones are trimmed to their loudest sub-window.
func chapterCandidates(in Input, cfg Config) []Candidate {
	if len(in.Chapters) == 0 {
		return nil
	}

	target := cfg.target()
	maxEnergy := maxEnergyOf(in.Energy)

	out := make([]Candidate, 0, len(in.Chapters))
	for _, ch := range in.Chapters {
		start, end := ch.Start, ch.End
		peakEnergy := 0.0

		switch {
		case end-start > cfg.MaxDuration:
			start, end, peakEnergy = trimChapter(ch, in, cfg, target, maxEnergy)
		case end-start < cfg.MinDuration:
			start, end = clampWindow(ch.Start, 0, target, cfg.MinDuration, in.Duration)
		}

		c := Candidate{
			Start:      start,
			End:        end,
			PeakEnergy: peakEnergy,
			Signals:    SignalChapter,
			Title:      ch.Title,
		}
		c.Score = score(c, cfg)
		out = append(out, c)
	}
	return out
}

// trimChapter reduces an over-long chapter to the window around its
// highest energy peak, falling back to the chapter head when the energy
// timeline has nothing to say about this range.
func trimChapter(ch Chapter, in Input, cfg Config, target, maxEnergy float64) (float64, float64, float64) {
	ranged := pointsInRange(in.Energy, ch.Start, ch.End)
	peaks := findPeaks(ranged, cfg.PeakStddevFactor)
	if len(peaks) == 0 {
		start, end := clampWindow(ch.Start, 0, target, cfg.MinDuration, in.Duration)
		return start, end, 0
	}

	best := peaks[0]
	for _, p := range peaks[1:] {
		if p.Energy > best.Energy {
			best = p
		}
	}

	start, end := clampWindow(best.Time, target*peakLeadFraction, target, cfg.MinDuration, in.Duration)
	// Keep the trimmed window inside the chapter where possible.
	if start < ch.Start {
		start = ch.Start
		if end-start < cfg.MinDuration {
			end = start + cfg.MinDuration
		}
	}
	if end > ch.End && ch.End-start >= cfg.MinDuration {
		end = ch.End
	}

	normalized := 0.0
	if maxEnergy > 0 {
		normalized = best.Energy / maxEnergy
	}
	return start, end, normalized
}
