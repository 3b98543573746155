// bootgif renders a scripted retro terminal boot sequence into an
// animated GIF for a GitHub profile README.
//
// Usage:
//
//	bootgif render           - Render the boot sequence GIF
//	bootgif preview          - Play the boot sequence in the terminal
//	bootgif serve            - Start SSH server replaying the sequence
//	bootgif stats            - Fetch and show GitHub profile stats
//	bootgif scenes           - List the scenes of the boot script
//
// Global flags:
//
//	--config <path>   - Settings TOML file (default: ~/.bootgif/bootgif.toml)
//	--profile <path>  - Profile card YAML file (default: from settings)
//	--db <path>       - Stats cache database (default: from settings)
//	--verbose         - Enable debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fynn9563/bootgif/internal/config"
)

var (
	// Global flags
	flagConfig  string
	flagProfile string
	flagDB      string
	flagVerbose bool
)

func main() {
	// Best-effort .env load so GITHUB_TOKEN can live next to the repo.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bootgif",
	Short: "Render a retro terminal boot sequence GIF for your profile",
	Long: `bootgif scripts a retro OS boot on a virtual terminal canvas: a BIOS
memory test, a logo reveal, a login and a profile fetch card filled
with live GitHub stats. The frames become an animated GIF plus a
README fragment that embeds it.

Available commands:
  render   - Render frames and encode the GIF
  preview  - Play the sequence in the terminal without encoding
  serve    - Serve the sequence over SSH
  stats    - Fetch and display GitHub profile stats
  scenes   - List the scenes in script order

Examples:
  bootgif render
  bootgif render --no-cache --output demo.gif
  bootgif preview --loop
  bootgif serve --ssh :2222
  bootgif stats --browse`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to settings TOML file")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "Path to profile card YAML file")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Path to stats cache database")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(scenesCmd)
}

// newLogger builds the CLI logger, honoring --verbose.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "bootgif",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadSetup reads settings, profile card and color scheme overrides,
// honoring the global flag overrides.
func loadSetup(logger *log.Logger) (config.Settings, config.Profile, *config.Schemes) {
	overrides := map[string]interface{}{}
	if flagDB != "" {
		overrides["files.cache_file"] = flagDB
	}
	settings, err := config.LoadSettings(flagConfig, overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		os.Exit(1)
	}

	profilePath := flagProfile
	if profilePath == "" {
		profilePath = settings.Files.ProfileFile
	}
	profile, err := config.LoadProfile(profilePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading profile: %v\n", err)
		os.Exit(1)
	}

	schemes, err := config.LoadSchemes(settings.Files.ColorsFile)
	if err != nil {
		logger.Warn("cannot load color scheme overrides", "error", err)
		schemes, _ = config.LoadSchemes("")
	}

	return settings, profile, schemes
}

// cursorRune picks the cursor glyph from the settings string.
func cursorRune(s string) rune {
	for _, r := range s {
		return r
	}
	return '_'
}
