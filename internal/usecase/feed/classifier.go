package feed

// Classify partitions a candidate's interests against the viewer's set.
// The partition is stable: both halves keep the candidate's original
// ordering. Pure function, no side effects.
func Classify(candidate, viewer []string) (common, other []string) {
	viewerSet := make(map[string]struct{}, len(viewer))
	for _, interest := range viewer {
		viewerSet[interest] = struct{}{}
	}

	common = make([]string, 0, len(candidate))
	other = make([]string, 0, len(candidate))
	for _, interest := range candidate {
		if _, ok := viewerSet[interest]; ok {
			common = append(common, interest)
		} else {
			other = append(other, interest)
		}
	}
	return common, other
}
