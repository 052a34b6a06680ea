// Package avatar implements the per-avatar kinematic and printing contract:
// a stateless-struct-with-methods data holder, grounded on the teacher's
// Ball (game/ball.go) Move/Reflect/IncreaseVelocity style, generalized from
// a bouncing-ball step to the spec's steer/print/collide tick contract.
package avatar

import (
	"math"
	"math/rand"
	"strconv"

	"github.com/rudransh61/Physix-go/pkg/vector"

	"github.com/bokeefe123/modaltron/internal/bonuskind"
	"github.com/bokeefe123/modaltron/internal/world"
)

// Turn is the latest steering input: -1 left, 0 straight, +1 right.
type Turn int

const (
	TurnLeft    Turn = -1
	TurnNone    Turn = 0
	TurnRight   Turn = 1
)

// activeEffect is one entry on an avatar's bonus stack.
type activeEffect struct {
	Kind           bonuskind.Kind
	RemainingTicks int
}

// Avatar is one player's controllable entity: position, heading, printing
// state, and the bonus-effect stack that modifies its kinematics.
type Avatar struct {
	ID       string
	PlayerID string
	Name     string
	Color    string

	Position vector.Vector
	Angle    float64
	Velocity float64
	Radius   float64

	Alive bool
	Score int

	Printing        bool
	printingTimeout int
	lastPrintedAt   vector.Vector

	input Turn

	effects   []activeEffect
	modifiers bonuskind.Modifiers

	// DeathTick records the tick index this avatar died on, used for
	// §4.6 scoring (opponents who died earlier score against survivors).
	DeathTick int

	rng *rand.Rand
}

// Params configures a freshly (re)spawned avatar.
type Params struct {
	ID, PlayerID, Name, Color string
	Position                  vector.Vector
	Angle                     float64
	BaseVelocity              float64
	BaseRadius                float64
	Rng                       *rand.Rand
}

// New creates an avatar ready for a new round: alive, printing, no active
// bonuses.
func New(p Params) *Avatar {
	a := &Avatar{
		ID:            p.ID,
		PlayerID:      p.PlayerID,
		Name:          p.Name,
		Color:         p.Color,
		Position:      p.Position,
		Angle:         p.Angle,
		Velocity:      p.BaseVelocity,
		Radius:        p.BaseRadius,
		Alive:         true,
		modifiers:     bonuskind.NewModifiers(),
		lastPrintedAt: p.Position,
		rng:           p.Rng,
		DeathTick:     -1,
	}
	a.Printing = true
	a.printingTimeout = a.nextPrintingTimeout(a.Printing)
	return a
}

// SetInput records the latest steering input from the client.
func (a *Avatar) SetInput(t Turn) { a.input = t }

// Modifiers exposes the current bonus-effect modifier state, for callers
// inspecting an avatar's active effects (tests, diagnostics).
func (a *Avatar) Modifiers() bonuskind.Modifiers { return a.modifiers }

// ApplyBonus pushes a bonus effect onto the stack and applies it
// immediately. Instant effects (BonusGameClear) are applied by the caller
// directly against the World/round state, not through this stack.
func (a *Avatar) ApplyBonus(kind bonuskind.Kind, durationTicks int) {
	def := bonuskind.Lookup(kind)
	def.Apply(&a.modifiers)
	a.effects = append(a.effects, activeEffect{Kind: kind, RemainingTicks: durationTicks})
}

// TickBonuses advances every active effect by one tick and reverts any
// that have expired.
func (a *Avatar) TickBonuses() {
	live := a.effects[:0]
	for _, eff := range a.effects {
		eff.RemainingTicks--
		if eff.RemainingTicks <= 0 {
			bonuskind.Lookup(eff.Kind).Revert(&a.modifiers)
			continue
		}
		live = append(live, eff)
	}
	a.effects = live
}

// effectiveVelocity and effectiveRadius are the kinematic constants after
// folding in the bonus-stack modifiers.
func (a *Avatar) effectiveVelocity() float64 { return a.Velocity * a.modifiers.VelocityMult }
func (a *Avatar) effectiveRadius() float64   { return a.Radius * a.modifiers.RadiusMult }

// StepResult reports what happened to an avatar during one tick: whether
// it died, whether it deposited a trail body, and whether it picked up a
// bonus.
type StepResult struct {
	Died          bool
	NewTrailBody  *world.Body
	PickedUpBonus *world.Body
}

// MoveResult is the outcome of the kinematic half of a tick (§4.4 steps
// 1-5: steer, move, wall check, print). Split from collision checking so a
// caller stepping many avatars can move all of them before any of them
// queries the World, making head-on deaths resolve simultaneously (§4.3's
// tie-break rule) instead of order-dependently.
type MoveResult struct {
	Died         bool
	NewTrailBody *world.Body
}

// CollideResult is the outcome of the collision half of a tick (§4.4 steps
// 6-7: collide, toggle printing).
type CollideResult struct {
	Died          bool
	PickedUpBonus *world.Body
}

// Move runs steps 1-5 of the §4.4 per-tick contract. The caller is
// responsible for inserting the avatar's own body (at OwnBody) into the
// World once every avatar has moved, before calling Collide on any of
// them.
func (a *Avatar) Move(dt, angularVelocity, boardSize, minPrintStep float64, tick int) MoveResult {
	if !a.Alive {
		return MoveResult{}
	}

	turn := float64(a.input)
	if a.modifiers.Inverse() {
		turn = -turn
	}
	a.Angle += angularVelocity * turn * dt

	vel := a.effectiveVelocity()
	a.Position.X += math.Cos(a.Angle) * vel * dt
	a.Position.Y += math.Sin(a.Angle) * vel * dt

	radius := a.effectiveRadius()

	if !a.modifiers.Borderless() {
		if a.Position.X < radius || a.Position.X > boardSize-radius ||
			a.Position.Y < radius || a.Position.Y > boardSize-radius {
			a.Alive = false
			a.DeathTick = tick
			return MoveResult{Died: true}
		}
	}

	result := MoveResult{}

	if a.Printing {
		dx := a.Position.X - a.lastPrintedAt.X
		dy := a.Position.Y - a.lastPrintedAt.Y
		if dx*dx+dy*dy >= minPrintStep*minPrintStep {
			trail := world.Body{
				ID:       a.ID + "-trail-" + strconv.Itoa(tick),
				Kind:     world.KindTrail,
				Position: a.Position,
				Radius:   radius,
				OwnerID:  a.ID,
			}
			result.NewTrailBody = &trail
			a.lastPrintedAt = a.Position
		}
	}

	return result
}

// OwnBody returns the avatar's current collision circle, for the caller to
// Insert into the World after Move and before Collide.
func (a *Avatar) OwnBody() world.Body {
	return world.Body{ID: a.ID, Kind: world.KindAvatar, Position: a.Position, Radius: a.effectiveRadius(), OwnerID: a.ID}
}

// Collide runs steps 6-7 of the §4.4 per-tick contract: query the World
// (already Repartitioned for this tick) for overlaps, then advance the
// printing toggle countdown.
func (a *Avatar) Collide(w *world.World, excludeIDs map[string]struct{}, tick int) CollideResult {
	if !a.Alive {
		return CollideResult{}
	}

	result := CollideResult{}
	if hit, ok := w.GetBody(a.OwnBody(), excludeIDs); ok {
		if hit.Kind == world.KindBonus {
			result.PickedUpBonus = &hit
		} else {
			a.Alive = false
			a.DeathTick = tick
			result.Died = true
		}
	}

	a.printingTimeout--
	if a.printingTimeout <= 0 {
		a.Printing = !a.Printing
		a.printingTimeout = a.nextPrintingTimeout(a.Printing)
	}

	return result
}

// Step advances the avatar by one Δt in a single call, for callers (and
// tests) that do not need Move/Collide's cross-avatar simultaneity.
func (a *Avatar) Step(dt, angularVelocity, boardSize, minPrintStep float64, w *world.World, excludeIDs map[string]struct{}, tick int) StepResult {
	mv := a.Move(dt, angularVelocity, boardSize, minPrintStep, tick)
	if mv.Died {
		return StepResult{Died: true}
	}
	w.Insert(a.OwnBody())
	cl := a.Collide(w, excludeIDs, tick)
	return StepResult{Died: cl.Died, NewTrailBody: mv.NewTrailBody, PickedUpBonus: cl.PickedUpBonus}
}

// nextPrintingTimeout draws the next print/gap duration per §4.4's random
// timing distribution: uniform over [0.25,0.75]x printInterval (150) while
// printing, and over [0.5,1.5]x gapInterval (10) while not.
func (a *Avatar) nextPrintingTimeout(printing bool) int {
	rng := a.rng
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	const printInterval = 150
	const gapInterval = 10
	if printing {
		lo, hi := float64(printInterval)*0.25, float64(printInterval)*0.75
		return int(lo + rng.Float64()*(hi-lo))
	}
	lo, hi := float64(gapInterval)*0.5, float64(gapInterval)*1.5
	return int(lo + rng.Float64()*(hi-lo))
}
