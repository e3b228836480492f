package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milk9111/stargrab/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List embedded levels",
	Long:  `Shows the levels built into the binary.`,
	RunE:  runLevels,
}

func runLevels(cmd *cobra.Command, args []string) error {
	names := levels.Names()
	if len(names) == 0 {
		fmt.Println("No levels available.")
		return nil
	}

	fmt.Println("Available levels:")
	fmt.Println()
	for _, name := range names {
		lvl, err := levels.LoadLevelFromFS(name)
		if err != nil {
			fmt.Printf("  %-10s  (invalid: %v)\n", name, err)
			continue
		}
		bombs := "opposite side"
		if lvl.HazardScript != "" {
			bombs = "script " + lvl.HazardScript
		}
		marker := " "
		if name == levels.Default {
			marker = "*"
		}
		fmt.Printf("%s %-10s  %d platforms, %d stars, bombs: %s\n", marker, name, len(lvl.Platforms), lvl.Stars.Count, bombs)
	}

	fmt.Println()
	fmt.Println("Run 'stargrab play --level <name>' to play a level.")
	return nil
}
