package entity

import (
	"fmt"

	"github.com/milk9111/stargrab/ecs"
	"github.com/milk9111/stargrab/ecs/component"
)

func NewScoreText(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, nil, "score_text.yaml")
}

// ScoreLabel formats the HUD readout.
func ScoreLabel(score int) string {
	return fmt.Sprintf("Score: %d", score)
}

// SetScoreText rewrites every score readout in the world.
func SetScoreText(w *ecs.World, score int) {
	label := ScoreLabel(score)
	ecs.ForEach2(w, component.ScoreTextTagComponent.Kind(), component.TextComponent.Kind(), func(_ ecs.Entity, _ *component.ScoreTextTag, t *component.Text) {
		t.Value = label
	})
}
