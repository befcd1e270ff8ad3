package highlight

import "math"

// peakLeadFraction positions the seed window so a bit of build-up plays
// before the detected peak.
const peakLeadFraction = 0.25

// energyCandidates seeds one candidate per energy peak above the adaptive
// threshold mean + k*stddev.
func energyCandidates(in Input, cfg Config) []Candidate {
	peaks := findPeaks(in.Energy, cfg.PeakStddevFactor)
	if len(peaks) == 0 {
		return nil
	}

	maxEnergy := maxEnergyOf(in.Energy)
	target := cfg.target()
	lead := target * peakLeadFraction

	out := make([]Candidate, 0, len(peaks))
	for _, p := range peaks {
		start, end := clampWindow(p.Time, lead, target, cfg.MinDuration, in.Duration)
		normalized := 0.0
		if maxEnergy > 0 {
			normalized = p.Energy / maxEnergy
		}
		c := Candidate{
			Start:      start,
			End:        end,
			PeakEnergy: normalized,
			Signals:    SignalEnergy,
		}
		c.Score = score(c, cfg)
		out = append(out, c)
	}
	return out
}

// findPeaks returns local maxima whose energy exceeds mean + k*stddev over
// the given points. Timeline edges count as peaks when they beat their
// single neighbor.
func findPeaks(points []EnergyPoint, stddevFactor float64) []EnergyPoint {
	if len(points) == 0 {
		return nil
	}

	threshold := peakThreshold(points, stddevFactor)

	var peaks []EnergyPoint
	for i, p := range points {
		if p.Energy < threshold {
			continue
		}
		// Plateaus resolve to their first sample.
		leftOK := i == 0 || points[i-1].Energy < p.Energy
		rightOK := i == len(points)-1 || points[i+1].Energy <= p.Energy
		if leftOK && rightOK {
			peaks = append(peaks, p)
		}
	}
	return peaks
}

func peakThreshold(points []EnergyPoint, stddevFactor float64) float64 {
	var sum float64
	for _, p := range points {
		sum += p.Energy
	}
	mean := sum / float64(len(points))

	var variance float64
	for _, p := range points {
		d := p.Energy - mean
		variance += d * d
	}
	variance /= float64(len(points))

	return mean + stddevFactor*math.Sqrt(variance)
}

func maxEnergyOf(points []EnergyPoint) float64 {
	var loudest float64
	for _, p := range points {
		if p.Energy > loudest {
			loudest = p.Energy
		}
	}
	return loudest
}

// pointsInRange narrows the timeline to [start, end] for chapter trimming.
func pointsInRange(points []EnergyPoint, start, end float64) []EnergyPoint {
	var out []EnergyPoint
	for _, p := range points {
		if p.Time >= start && p.Time <= end {
			out = append(out, p)
		}
	}
	return out
}
