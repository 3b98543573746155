package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/fynn9563/bootgif/internal/config"
	"github.com/fynn9563/bootgif/internal/github"
	"github.com/fynn9563/bootgif/internal/platform/tui"
	"github.com/fynn9563/bootgif/internal/storage"
)

var (
	flagRefresh bool
	flagBrowse  bool
)

var statsCmd = &cobra.Command{
	Use:   "stats [user]",
	Short: "Fetch and show GitHub profile stats",
	Long: `Fetch the GitHub stats that feed the fetch card and print them.

Without an argument the configured user is fetched. Stats are cached
in a local SQLite database between runs; --refresh drops the cached
row and fetches fresh data. --browse opens an interactive table
instead of plain output.

Examples:
  bootgif stats
  bootgif stats octocat
  bootgif stats --refresh
  bootgif stats --browse`,
	Args: cobra.MaximumNArgs(1),
	Run:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagRefresh, "refresh", false, "Drop the cached stats and fetch fresh data")
	statsCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open the interactive stats browser")
}

func runStats(_ *cobra.Command, args []string) {
	logger := newLogger()
	settings, profile, _ := loadSetup(logger)
	if len(args) == 1 {
		settings.General.UserName = args[0]
	}

	if flagRefresh {
		clearCachedStats(logger, settings)
	}

	stats, err := fetchStats(logger, settings, profile, flagRefresh)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching stats: %v\n", err)
		os.Exit(1)
	}

	if flagBrowse {
		if err := tui.RunStats(*stats); err != nil {
			fmt.Fprintf(os.Stderr, "Error running stats browser: %v\n", err)
			os.Exit(1)
		}
		return
	}

	printStats(stats)
}

// printStats prints the fetched stats as a plain table.
func printStats(stats *github.UserStats) {
	fmt.Printf("GitHub Stats - %s\n", stats.AccountName)
	fmt.Println()

	year := time.Now().Year() - 1
	rows := [][2]string{
		{"Rank", fmt.Sprintf("%s (top %.1f%%)", stats.Rank.Level, stats.Rank.Percentile)},
		{"Stars", fmt.Sprintf("%d", stats.TotalStars)},
		{"Followers", fmt.Sprintf("%d", stats.TotalFollowers)},
		{fmt.Sprintf("Commits (%d)", year), fmt.Sprintf("%d", stats.CommitsLastYear)},
		{"Reviews", fmt.Sprintf("%d", stats.ReviewsLastYear)},
		{"Issues", fmt.Sprintf("%d", stats.TotalIssues)},
		{"Pull Requests", fmt.Sprintf("%d made, %d merged (%.2f%%)",
			stats.PullRequestsMade, stats.PullRequestsMerged, stats.MergedPercentage)},
		{"Contributed to", fmt.Sprintf("%d", stats.RepoContributions)},
	}
	for _, r := range rows {
		fmt.Printf("  %-16s  %s\n", r[0], r[1])
	}

	fmt.Println()
	langs := stats.TopLanguages(5)
	if len(langs) == 0 {
		fmt.Println("No language data.")
		return
	}
	fmt.Println("Top languages:")
	for _, name := range langs {
		fmt.Printf("  %s\n", name)
	}
}

// fetchStats returns GitHub stats for the configured user, serving from
// the SQLite cache when it is fresh and falling back to a stale entry
// when the API is unreachable.
func fetchStats(logger *log.Logger, settings config.Settings, profile config.Profile, skipCache bool) (*github.UserStats, error) {
	login := settings.General.UserName

	var store *storage.Store
	if settings.Cache.Enabled {
		s, err := storage.Open(settings.Files.CacheFile)
		if err != nil {
			logger.Warn("could not open stats cache", "error", err)
			// Continue without cache
		} else {
			store = s
			defer store.Close()
		}
	}

	ttl := time.Duration(settings.Cache.TTLHours) * time.Hour
	if store != nil && !skipCache {
		cached, err := store.Get(login)
		switch {
		case err == nil && cached.Fresh(ttl):
			logger.Info("using cached stats",
				"login", login,
				"age", time.Since(cached.FetchedAt).Round(time.Minute),
			)
			return &cached.Stats, nil
		case err != nil && !errors.Is(err, storage.ErrNotFound):
			logger.Warn("stats cache read failed", "error", err)
		}
	}

	client, err := github.NewClient(os.Getenv("GITHUB_TOKEN"), logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	stats, err := client.FetchUserStats(ctx, login, profile.IgnoreRepos)
	if err != nil {
		// A stale cache entry still beats failing the run.
		if store != nil && !skipCache {
			if cached, cacheErr := store.Get(login); cacheErr == nil {
				logger.Warn("stats fetch failed, using stale cache", "error", err)
				return &cached.Stats, nil
			}
		}
		return nil, err
	}

	if store != nil {
		if saveErr := store.Save(login, stats); saveErr != nil {
			logger.Warn("could not cache stats", "error", saveErr)
		}
	}
	return stats, nil
}

// clearCachedStats drops the cached row for the configured user.
func clearCachedStats(logger *log.Logger, settings config.Settings) {
	if !settings.Cache.Enabled {
		return
	}
	store, err := storage.Open(settings.Files.CacheFile)
	if err != nil {
		logger.Warn("could not open stats cache", "error", err)
		return
	}
	defer store.Close()

	if err := store.Delete(settings.General.UserName); err != nil {
		logger.Warn("could not clear cached stats", "error", err)
	}
}
