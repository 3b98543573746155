package github

import "math"

// Medians and weights for the rank score. Each counter is squashed through
// a CDF against its median, so the score stays in [0, 1] no matter how
// inflated a single counter is.
const (
	commitsMedian   = 250
	commitsWeight   = 2
	prsMedian       = 50
	prsWeight       = 3
	issuesMedian    = 25
	issuesWeight    = 1
	reviewsMedian   = 2
	reviewsWeight   = 1
	starsMedian     = 50
	starsWeight     = 4
	followersMedian = 10
	followersWeight = 1

	totalWeight = commitsWeight + prsWeight + issuesWeight + reviewsWeight + starsWeight + followersWeight
)

var (
	rankThresholds = []float64{1, 12.5, 25, 37.5, 50, 62.5, 75, 87.5, 100}
	rankLevels     = []string{"S", "A+", "A", "A-", "B+", "B", "B-", "C+", "C"}
)

func exponentialCDF(x float64) float64 {
	return 1 - math.Pow(2, -x)
}

func logNormalCDF(x float64) float64 {
	return x / (1 + x)
}

// calcRank grades the account. Activity counters (commits, PRs, issues,
// reviews) use the exponential CDF; popularity counters (stars, followers)
// use the heavier-tailed log-normal one.
func calcRank(commits, prs, issues, reviews, stars, followers int) Rank {
	score := commitsWeight*exponentialCDF(float64(commits)/commitsMedian) +
		prsWeight*exponentialCDF(float64(prs)/prsMedian) +
		issuesWeight*exponentialCDF(float64(issues)/issuesMedian) +
		reviewsWeight*exponentialCDF(float64(reviews)/reviewsMedian) +
		starsWeight*logNormalCDF(float64(stars)/starsMedian) +
		followersWeight*logNormalCDF(float64(followers)/followersMedian)

	percentile := (1 - score/totalWeight) * 100
	for i, threshold := range rankThresholds {
		if percentile <= threshold {
			return Rank{Level: rankLevels[i], Percentile: percentile}
		}
	}
	return Rank{Level: rankLevels[len(rankLevels)-1], Percentile: percentile}
}
