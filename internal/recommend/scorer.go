// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package recommend

import (
	"sort"
)

// CandidateScorer ranks candidate videos against a TasteProfile.
type CandidateScorer struct {
	rng RandomSource
}

// NewCandidateScorer creates a scorer drawing jitter from rng.
func NewCandidateScorer(rng RandomSource) *CandidateScorer {
	return &CandidateScorer{rng: rng}
}

// TrueScore returns the pre-jitter score of v: the sum of the profile weights
// of its category, distinct tags and channel.
func TrueScore(profile *TasteProfile, v *Video) float64 {
	var score float64
	if v.Category != "" {
		score += profile.Weight(CategoryKey(v.Category))
	}
	for _, tag := range normalizeTags(v.Tags) {
		score += profile.Weight(TagKey(tag))
	}
	score += profile.Weight(ChannelKey(v.ChannelID))
	return score
}

// Score returns up to k candidates, highest jittered score first.
//
// Candidates sharing no feature with the profile (true score <= 0) are
// dropped. Each survivor gets one jitter draw in [0, MaxJitter). A nil
// profile yields an empty result.
func (s *CandidateScorer) Score(profile *TasteProfile, pool []Video, k int) []ScoredCandidate {
	if profile == nil || k <= 0 {
		return []ScoredCandidate{}
	}

	scored := make([]ScoredCandidate, 0, len(pool))
	for i := range pool {
		score := TrueScore(profile, &pool[i])
		if score <= 0 {
			continue
		}
		score += s.rng.Float64() * MaxJitter
		scored = append(scored, ScoredCandidate{Video: pool[i], Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}
