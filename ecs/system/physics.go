package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/stargrab/ecs"
	"github.com/milk9111/stargrab/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypePlayerGround
	collisionTypeSolid
	collisionTypeStar
	collisionTypeHazard
	collisionTypeBounds
)

// DefaultStep is the fixed physics step at Ebiten's 60 TPS.
const DefaultStep = 1.0 / 60.0

// ContactHandler receives gameplay contacts after each physics step, when the
// space is no longer locked and bodies can be added or removed.
type ContactHandler interface {
	OnCollect(w *ecs.World, player, star ecs.Entity)
	OnHit(w *ecs.World, player, hazard ecs.Entity)
}

type contactKind int

const (
	contactCollect contactKind = iota + 1
	contactHit
)

type contact struct {
	kind   contactKind
	player ecs.Entity
	other  ecs.Entity
}

type PhysicsSystem struct {
	space         *cp.Space
	gravity       float64
	step          float64
	handlersReady bool
	paused        bool
	handler       ContactHandler

	entities     map[ecs.Entity]*bodyInfo
	shapeOwners  map[*cp.Shape]ecs.Entity
	playerShapes map[*cp.Shape]ecs.Entity
	groundShapes map[*cp.Shape]ecs.Entity
	grounded     map[ecs.Entity]bool
	pending      []contact
}

type bodyInfo struct {
	body        *cp.Body
	mainShape   *cp.Shape
	groundShape *cp.Shape
	shapes      []*cp.Shape
	static      bool
	inSpace     bool
}

func NewPhysicsSystem(gravity float64) *PhysicsSystem {
	ps := &PhysicsSystem{
		gravity:      gravity,
		step:         DefaultStep,
		entities:     make(map[ecs.Entity]*bodyInfo),
		shapeOwners:  make(map[*cp.Shape]ecs.Entity),
		playerShapes: make(map[*cp.Shape]ecs.Entity),
		groundShapes: make(map[*cp.Shape]ecs.Entity),
		grounded:     make(map[ecs.Entity]bool),
	}
	ps.space = ps.newSpace()
	return ps
}

func (ps *PhysicsSystem) newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: ps.gravity})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// SetContactHandler installs the receiver for star and hazard contacts.
func (ps *PhysicsSystem) SetContactHandler(h ContactHandler) {
	ps.handler = h
}

// Pause freezes the simulation: no step, no contacts, transforms untouched.
func (ps *PhysicsSystem) Pause() {
	ps.paused = true
}

func (ps *PhysicsSystem) Resume() {
	ps.paused = false
}

func (ps *PhysicsSystem) Paused() bool {
	return ps.paused
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil || ps.paused {
		return
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.syncWorldBounds(w)

	clear(ps.grounded)
	ps.pending = ps.pending[:0]

	ps.space.Step(ps.step)

	ps.syncTransforms(w)
	ps.flushPlayerContacts(w)
	ps.dispatchContacts(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	groundPreSolve := func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		player, okA := sys.groundShapes[shapeA]
		if !okA {
			var okB bool
			player, okB = sys.groundShapes[shapeB]
			if !okB {
				return true
			}
		}

		n := arb.Normal()
		if !okA {
			n = n.Neg()
		}
		// Screen-down coordinates: ground below the player gives a positive Y normal.
		if n.Y > 0.5 {
			sys.grounded[player] = true
		}
		return true
	}
	for _, floor := range []cp.CollisionType{collisionTypeSolid, collisionTypeBounds} {
		groundHandler := ps.space.NewCollisionHandler(collisionTypePlayerGround, floor)
		groundHandler.UserData = ps
		groundHandler.PreSolveFunc = groundPreSolve
	}

	starHandler := ps.space.NewCollisionHandler(collisionTypePlayer, collisionTypeStar)
	starHandler.UserData = ps
	starHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		if sys, ok := userData.(*PhysicsSystem); ok {
			sys.recordContact(arb, contactCollect)
		}
		// Stars are overlap-only.
		return false
	}

	hazardHandler := ps.space.NewCollisionHandler(collisionTypePlayer, collisionTypeHazard)
	hazardHandler.UserData = ps
	hazardHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		if sys, ok := userData.(*PhysicsSystem); ok {
			sys.recordContact(arb, contactHit)
		}
		return true
	}

	passThrough := func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		return false
	}
	for _, pair := range [][2]cp.CollisionType{
		{collisionTypeStar, collisionTypeStar},
		{collisionTypeStar, collisionTypeHazard},
		{collisionTypeHazard, collisionTypeHazard},
		{collisionTypeStar, collisionTypeBounds},
	} {
		ps.space.NewCollisionHandler(pair[0], pair[1]).BeginFunc = passThrough
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) recordContact(arb *cp.Arbiter, kind contactKind) {
	shapeA, shapeB := arb.Shapes()
	if _, ok := ps.playerShapes[shapeA]; !ok {
		shapeA, shapeB = shapeB, shapeA
	}
	player, okA := ps.playerShapes[shapeA]
	other, okB := ps.shapeOwners[shapeB]
	if !okA || !okB {
		return
	}
	ps.pending = append(ps.pending, contact{kind: kind, player: player, other: other})
}

// dispatchContacts runs after Step. A hit pauses the simulation through the
// handler, so later contacts from the same step are dropped.
func (ps *PhysicsSystem) dispatchContacts(w *ecs.World) {
	if ps.handler == nil {
		ps.pending = ps.pending[:0]
		return
	}
	for _, c := range ps.pending {
		if ps.paused {
			break
		}
		if !w.IsAlive(c.player) || !w.IsAlive(c.other) {
			continue
		}
		switch c.kind {
		case contactCollect:
			ps.handler.OnCollect(w, c.player, c.other)
		case contactHit:
			ps.handler.OnHit(w, c.player, c.other)
		}
	}
	ps.pending = ps.pending[:0]
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		info := ps.entities[e]
		if info == nil {
			info = ps.createBodyInfo(w, e, transform, bodyComp)
			ps.entities[e] = info
			bodyComp.Body = info.body
			bodyComp.Shape = info.mainShape
			if !bodyComp.Disabled {
				ps.addToSpace(info)
			}
			return
		}

		switch {
		case bodyComp.Disabled && info.inSpace:
			ps.removeFromSpace(info)
		case !bodyComp.Disabled && !info.inSpace:
			if !info.static {
				info.body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
				info.body.SetVelocity(0, 0)
			}
			ps.addToSpace(info)
		}
	})
}

func (ps *PhysicsSystem) createBodyInfo(w *ecs.World, e ecs.Entity, transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	width := bodyComp.Width
	height := bodyComp.Height
	radius := bodyComp.Radius
	if radius <= 0 && (width <= 0 || height <= 0) {
		width = 32
		height = 32
	}

	collisionType := collisionTypeSolid
	isPlayer := ecs.Has(w, e, component.PlayerTagComponent.Kind())
	switch {
	case isPlayer:
		collisionType = collisionTypePlayer
	case ecs.Has(w, e, component.CollectibleComponent.Kind()):
		collisionType = collisionTypeStar
	case ecs.Has(w, e, component.HazardComponent.Kind()):
		collisionType = collisionTypeHazard
	}

	info := &bodyInfo{static: bodyComp.Static}

	if bodyComp.Static {
		var shape *cp.Shape
		if radius > 0 {
			shape = cp.NewCircle(ps.space.StaticBody, radius, cp.Vector{X: transform.X, Y: transform.Y})
		} else {
			bb := cp.BB{
				L: transform.X - width/2,
				B: transform.Y - height/2,
				R: transform.X + width/2,
				T: transform.Y + height/2,
			}
			shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		}
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(collisionType)

		info.body = ps.space.StaticBody
		info.mainShape = shape
		info.shapes = []*cp.Shape{shape}
		ps.shapeOwners[shape] = e
		return info
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	// Arcade-style bodies never rotate.
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
	body.SetVelocity(bodyComp.VelocityX, bodyComp.VelocityY)

	var shape *cp.Shape
	if radius > 0 {
		shape = cp.NewCircle(body, radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, width, height, 0)
	}
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionType)

	info.body = body
	info.mainShape = shape
	info.shapes = []*cp.Shape{shape}
	ps.shapeOwners[shape] = e

	if isPlayer {
		ps.playerShapes[shape] = e
		if radius <= 0 {
			groundShape := createGroundSensor(body, width, height)
			info.groundShape = groundShape
			info.shapes = append(info.shapes, groundShape)
			ps.groundShapes[groundShape] = e
		}
	}

	return info
}

// createGroundSensor adds a thin sensor strip under the body's feet.
func createGroundSensor(body *cp.Body, width, height float64) *cp.Shape {
	groundBB := cp.BB{
		L: -width * 0.45,
		B: height / 2.0,
		R: width * 0.45,
		T: height/2.0 + 2,
	}
	groundShape := cp.NewBox2(body, groundBB, 0)
	groundShape.SetSensor(true)
	groundShape.SetCollisionType(collisionTypePlayerGround)
	return groundShape
}

func (ps *PhysicsSystem) addToSpace(info *bodyInfo) {
	if info.inSpace {
		return
	}
	if !info.static {
		ps.space.AddBody(info.body)
	}
	for _, shape := range info.shapes {
		ps.space.AddShape(shape)
	}
	info.inSpace = true
}

func (ps *PhysicsSystem) removeFromSpace(info *bodyInfo) {
	if !info.inSpace {
		return
	}
	for _, shape := range info.shapes {
		ps.space.RemoveShape(shape)
	}
	if !info.static {
		ps.space.RemoveBody(info.body)
	}
	info.inSpace = false
}

func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	boundsEntity, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	if _, exists := ps.entities[boundsEntity]; exists {
		return
	}
	bounds, ok := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}

	worldW := bounds.Width
	worldH := bounds.Height
	if worldW <= 0 || worldH <= 0 {
		return
	}

	thickness := 1.0
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},           // top
		{a: cp.Vector{X: 0, Y: worldH}, b: cp.Vector{X: worldW, Y: worldH}}, // bottom
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldH}},           // left
		{a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldH}}, // right
	}

	info := &bodyInfo{static: true, body: ps.space.StaticBody}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, thickness)
		shape.SetElasticity(1)
		shape.SetCollisionType(collisionTypeBounds)
		info.shapes = append(info.shapes, shape)
	}
	ps.addToSpace(info)

	ps.entities[boundsEntity] = info
}

func (ps *PhysicsSystem) flushPlayerContacts(w *ecs.World) {
	ecs.ForEach(w, component.PlayerCollisionComponent.Kind(), func(e ecs.Entity, pc *component.PlayerCollision) {
		pc.Grounded = ps.grounded[e]
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Body == nil || bodyComp.Static || bodyComp.Disabled {
			return
		}
		pos := bodyComp.Body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && (ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) || ecs.Has(w, e, component.LevelBoundsComponent.Kind())) {
			continue
		}

		ps.removeFromSpace(info)
		for _, shape := range info.shapes {
			delete(ps.shapeOwners, shape)
			delete(ps.playerShapes, shape)
			delete(ps.groundShapes, shape)
		}
		delete(ps.entities, e)
		delete(ps.grounded, e)
	}
}
