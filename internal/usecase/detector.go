package usecase

// DetectNew returns the ids fetched this run that are absent from the
// known-id snapshot taken before the run started. Comparing against the
// pre-run snapshot rather than live store membership means two launches
// newly appearing in the same run are both reported.
func DetectNew(known map[string]struct{}, fetched []string) map[string]struct{} {
	newIDs := make(map[string]struct{})
	for _, id := range fetched {
		if _, ok := known[id]; !ok {
			newIDs[id] = struct{}{}
		}
	}
	return newIDs
}
