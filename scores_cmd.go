package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/milk9111/stargrab/config"
	"github.com/milk9111/stargrab/levels"
	"github.com/milk9111/stargrab/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores for a level",
	Long: `Display the top scores recorded for a level.

Examples:
  stargrab scores
  stargrab scores --level ledges --limit 5`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	rankStyle   = lipgloss.NewStyle().Width(6)
	scoreStyle  = lipgloss.NewStyle().Width(8).Align(lipgloss.Right)
	bombStyle   = lipgloss.NewStyle().Width(7).Align(lipgloss.Right)
	dateStyle   = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("8"))
	bestStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	tableStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func runScores(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if _, err := levels.LoadLevelFromFS(cfg.Level); err != nil {
		return fmt.Errorf("unknown level %q (run 'stargrab levels'): %w", cfg.Level, err)
	}

	dbPath, err := config.ExpandPath(cfg.DBPath)
	if err != nil {
		return err
	}
	store, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	scores, err := store.TopScores(cfg.Level, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Println(titleStyle.Render("High Scores - " + cfg.Level))
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Printf("Play 'stargrab play --level %s' to set the first high score!\n", cfg.Level)
		return nil
	}

	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top,
		headerStyle.Inherit(rankStyle).Render("Rank"),
		headerStyle.Inherit(scoreStyle).Render("Score"),
		headerStyle.Inherit(bombStyle).Render("Bombs"),
		headerStyle.Inherit(dateStyle).Render("Date"),
	)}
	for i, entry := range scores {
		date := "-"
		if !entry.CreatedAt.IsZero() {
			date = entry.CreatedAt.Format("2006-01-02 15:04")
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			rankStyle.Render(fmt.Sprintf("%d", i+1)),
			scoreStyle.Render(fmt.Sprintf("%d", entry.Score)),
			bombStyle.Render(fmt.Sprintf("%d", entry.Hazards)),
			dateStyle.Render(date),
		))
	}
	fmt.Println(tableStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))

	if best, err := store.HighScore(cfg.Level); err == nil {
		fmt.Println(bestStyle.Render(fmt.Sprintf("Best: %d", best)))
	}
	return nil
}
