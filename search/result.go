package search

// Hit is a ranked reference to a document.
type Hit struct {
	// Title is the document reference returned by the engine.
	Title string
	// Score is the relevance score; higher is better.
	Score float64
}

// Results is an ordered slice of hits, best first.
type Results []Hit

// Titles returns just the titles from the results.
func (r Results) Titles() []string {
	titles := make([]string, len(r))
	for i, hit := range r {
		titles[i] = hit.Title
	}
	return titles
}

// FilterByMinScore returns hits with score >= minScore.
func (r Results) FilterByMinScore(minScore float64) Results {
	filtered := make(Results, 0, len(r))
	for _, hit := range r {
		if hit.Score >= minScore {
			filtered = append(filtered, hit)
		}
	}
	return filtered
}

// Match is a hit resolved to its navigable destination.
type Match struct {
	Name  string
	URL   string
	Score float64
}
