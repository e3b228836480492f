package scene

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/stargrab/ecs"
)

// ScoreRecorder persists finished sessions. storage.Store satisfies it.
type ScoreRecorder interface {
	SaveScore(level string, score, hazards int) (int64, error)
	HighScore(level string) (int, error)
}

// Results watches the event queue for the end of a session, records the
// score and keeps the best score for the overlay. A nil recorder keeps
// results in memory only.
type Results struct {
	recorder ScoreRecorder
	logger   *log.Logger

	Best      int
	Collected int
	Final     *GameOver
}

func NewResults(recorder ScoreRecorder, level string, logger *log.Logger) *Results {
	if logger == nil {
		logger = log.Default()
	}
	r := &Results{recorder: recorder, logger: logger}
	if recorder != nil {
		best, err := recorder.HighScore(level)
		if err != nil {
			logger.Warn("could not read high score", "level", level, "error", err)
		}
		r.Best = best
	}
	return r
}

func (r *Results) Update(w *ecs.World) {
	for _, evt := range w.Events().Peek() {
		switch evt.Type {
		case ecs.EventStarCollected:
			r.Collected++
		case ecs.EventGameOver:
			over, ok := evt.Data.(GameOver)
			if !ok || r.Final != nil {
				continue
			}
			r.record(over)
		}
	}
}

func (r *Results) record(over GameOver) {
	r.Final = &over
	if over.Score > r.Best {
		r.Best = over.Score
	}
	if r.recorder == nil {
		return
	}
	id, err := r.recorder.SaveScore(over.Level, over.Score, over.Hazards)
	if err != nil {
		r.logger.Warn("could not save score", "score", over.Score, "error", err)
		return
	}
	r.logger.Info("score saved", "id", id, "level", over.Level, "score", over.Score)
}
