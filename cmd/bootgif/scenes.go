package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fynn9563/bootgif/internal/scenes"
)

var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "List the scenes of the boot script",
	Long:  `Shows the scenes of the boot script in the order they render.`,
	Run:   runScenes,
}

func runScenes(cmd *cobra.Command, args []string) {
	infos := scenes.List()

	if len(infos) == 0 {
		fmt.Println("No scenes registered.")
		return
	}

	fmt.Println("Boot script scenes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range infos {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	// Print header
	fmt.Printf("  %-3s  %-*s  %s\n", "Seq", maxIDLen, "ID", "Title")
	fmt.Printf("  %-3s  %-*s  %s\n", "---", maxIDLen, "--", "-----")

	// Print scenes
	for _, s := range infos {
		fmt.Printf("  %-3d  %-*s  %s\n", s.Seq, maxIDLen, s.ID, s.Title)
	}

	fmt.Println()
	fmt.Println("Run 'bootgif render' to render the full sequence.")
}
