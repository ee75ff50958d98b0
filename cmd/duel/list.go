package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-duel/internal/strategy"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List strategies and starting cases",
	Long:  `Shows all registered strategies and the starting cases of the active configuration.`,
	Run:   runListCmd,
}

func runListCmd(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	strategies := strategy.List()
	fmt.Println("Strategies:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, s := range strategies {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Name")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "----")
	for _, s := range strategies {
		fmt.Printf("  %-*s  %s\n", maxIDLen, s.ID, s.Name)
		fmt.Printf("  %-*s  %s\n", maxIDLen, "", s.Description)
	}

	fmt.Println()
	fmt.Println("Cases:")
	fmt.Println()
	for _, c := range cfg.ActiveCases() {
		food := fmt.Sprintf("food (%d,%d)", c.Food.X, c.Food.Y)
		if c.RandomFood {
			food = "random food"
		}
		fmt.Printf("  %-34s  %dx%d, %s\n", c.Name, c.Board.W, c.Board.H, food)
	}

	fmt.Println()
	fmt.Println("Run 'duel run <s1> <s2>' to play a game.")
}
