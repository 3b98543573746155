// Package github fetches the aggregate profile statistics shown on the
// fetch card: stars, commit and pull-request counters, language totals and
// a letter rank, via the GraphQL API.
package github

// Language is one entry of the per-user language distribution, sized in
// bytes across the scanned repositories.
type Language struct {
	Name string
	Size int
}

// Rank grades an account the way profile stat cards do: a letter level and
// the percentile backing it, lower percentile being better.
type Rank struct {
	Level      string
	Percentile float64
}

// UserStats aggregates everything the fetch card interpolates.
type UserStats struct {
	AccountName        string
	TotalFollowers     int
	TotalStars         int
	TotalIssues        int
	CommitsLastYear    int
	ReviewsLastYear    int
	PullRequestsMade   int
	PullRequestsMerged int
	MergedPercentage   float64
	RepoContributions  int
	Languages          []Language
	Rank               Rank
}

// TopLanguages returns up to n language names, most-used first.
func (s *UserStats) TopLanguages(n int) []string {
	if n > len(s.Languages) {
		n = len(s.Languages)
	}
	names := make([]string, 0, n)
	for _, lang := range s.Languages[:n] {
		names = append(names, lang.Name)
	}
	return names
}
