package taxonomy

// RawFinding is a scanner-local observation before taxonomy lookup.
type RawFinding struct {
	ID         string
	Source     string
	Confidence Confidence
	Details    map[string]any
}

// Classify maps raw findings to detections via the registry. Ids with no
// registry entry become innovation candidates: category tooling, tier
// advanced, confidence downgraded to medium when unset, and a nil
// TaxonomyMatch.
func (r Registry) Classify(findings []RawFinding) []Detection {
	detections := make([]Detection, 0, len(findings))

	for _, f := range findings {
		confidence := f.Confidence

		if entry, ok := r[f.ID]; ok {
			if confidence == "" {
				confidence = ConfidenceHigh
			}
			match := entry.ID
			detections = append(detections, Detection{
				ID:            f.ID,
				Category:      entry.Category,
				Name:          entry.Name,
				Source:        f.Source,
				Confidence:    confidence,
				Tier:          entry.Tier,
				TaxonomyMatch: &match,
				Details:       f.Details,
			})
			continue
		}

		if confidence == "" {
			confidence = ConfidenceMedium
		}
		detections = append(detections, Detection{
			ID:            f.ID,
			Category:      Tooling,
			Name:          f.ID,
			Source:        f.Source,
			Confidence:    confidence,
			Tier:          TierAdvanced,
			TaxonomyMatch: nil,
			Details:       f.Details,
		})
	}

	return detections
}
