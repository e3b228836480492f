package system

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/stargrab/ecs"
	"github.com/milk9111/stargrab/ecs/component"
	"github.com/milk9111/stargrab/prefabs"
)

// ScriptReloader recompiles a gameplay script after it changes on disk.
type ScriptReloader interface {
	ReloadScript(name string) error
}

// PrefabReloadSystem applies prefab edits to live entities. Only tuning that
// is safe to change mid-session is re-applied: player speeds and the player's
// friction and bounce. Script edits are handed to the reloader.
type PrefabReloadSystem struct {
	changes <-chan prefabs.Change
	scripts ScriptReloader
	logger  *log.Logger
}

func NewPrefabReloadSystem(changes <-chan prefabs.Change, scripts ScriptReloader, logger *log.Logger) *PrefabReloadSystem {
	if logger == nil {
		logger = log.Default()
	}
	return &PrefabReloadSystem{changes: changes, scripts: scripts, logger: logger}
}

func (s *PrefabReloadSystem) Update(w *ecs.World) {
	if s == nil || s.changes == nil || w == nil {
		return
	}
	for {
		select {
		case change, ok := <-s.changes:
			if !ok {
				s.changes = nil
				return
			}
			s.apply(w, change)
		default:
			return
		}
	}
}

func (s *PrefabReloadSystem) apply(w *ecs.World, change prefabs.Change) {
	switch change.Kind {
	case prefabs.ChangeScript:
		if s.scripts == nil {
			return
		}
		if err := s.scripts.ReloadScript(change.Name); err != nil {
			s.logger.Warn("script reload failed", "script", change.Name, "error", err)
		}
	case prefabs.ChangePrefab:
		if change.Name != "player.yaml" {
			s.logger.Debug("prefab changed; applies to new entities only", "prefab", change.Name)
			return
		}
		if err := ApplyPlayerPrefab(w, change.Name); err != nil {
			s.logger.Warn("prefab reload failed", "prefab", change.Name, "error", err)
			return
		}
		s.logger.Info("player tuning reloaded", "prefab", change.Name)
	}
}

// ApplyPlayerPrefab re-reads the player prefab and copies its tuning onto
// every player entity.
func ApplyPlayerPrefab(w *ecs.World, name string) error {
	spec, err := prefabs.LoadEntityBuildSpec(name)
	if err != nil {
		return err
	}
	tuning, err := prefabs.DecodeComponentSpec[prefabs.PlayerComponentSpec](spec.Components["player"])
	if err != nil {
		return err
	}
	body, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](spec.Components["physics_body"])
	if err != nil {
		return err
	}

	ecs.ForEach(w, component.PlayerComponent.Kind(), func(e ecs.Entity, p *component.Player) {
		if tuning.MoveSpeed > 0 {
			p.MoveSpeed = tuning.MoveSpeed
		}
		if tuning.JumpSpeed > 0 {
			p.JumpSpeed = tuning.JumpSpeed
		}
		pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			return
		}
		pb.Friction = body.Friction
		pb.Elasticity = body.Elasticity
		if pb.Shape != nil {
			pb.Shape.SetFriction(body.Friction)
			pb.Shape.SetElasticity(body.Elasticity)
		}
	})
	return nil
}
