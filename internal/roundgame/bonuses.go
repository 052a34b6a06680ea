package roundgame

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/rudransh61/Physix-go/pkg/vector"

	"github.com/bokeefe123/modaltron/internal/bonuskind"
	"github.com/bokeefe123/modaltron/internal/config"
	"github.com/bokeefe123/modaltron/internal/world"
)

// activeBonus tracks one spawned, uncollected bonus's remaining lifetime.
type activeBonus struct {
	Kind          bonuskind.Kind
	ExpireInTicks int
}

// bonusManager owns the spawn/expiry countdown independent of any single
// avatar, grounded on PrintManager/timers' scheduled-callback role (§2).
type bonusManager struct {
	nextSpawnInTicks int
	active           map[string]activeBonus
	seq              int
}

func newBonusManager() *bonusManager {
	return &bonusManager{active: make(map[string]activeBonus)}
}

func (m *bonusManager) reset(rng *rand.Rand, cfg config.Config) {
	m.active = make(map[string]activeBonus)
	m.nextSpawnInTicks = randTicksBetween(cfg.BonusMinSpawnDelay, cfg.BonusMaxSpawnDelay, cfg.TickRate, rng)
}

// tick advances spawn and expiry countdowns by one tick, returning newly
// spawned bonus bodies and the ids of bonuses that expired uncollected.
func (m *bonusManager) tick(rng *rand.Rand, cfg config.Config, w *world.World) (spawned []world.Body, expired []string) {
	m.nextSpawnInTicks--
	if m.nextSpawnInTicks <= 0 {
		if body, ok := m.spawnOne(rng, cfg, w); ok {
			spawned = append(spawned, body)
		}
		m.nextSpawnInTicks = randTicksBetween(cfg.BonusMinSpawnDelay, cfg.BonusMaxSpawnDelay, cfg.TickRate, rng)
	}

	for id, ab := range m.active {
		ab.ExpireInTicks--
		if ab.ExpireInTicks <= 0 {
			w.Remove(id)
			delete(m.active, id)
			expired = append(expired, id)
			continue
		}
		m.active[id] = ab
	}
	return spawned, expired
}

func (m *bonusManager) spawnOne(rng *rand.Rand, cfg config.Config, w *world.World) (world.Body, bool) {
	kind := bonuskind.Pick(rng)
	const maxAttempts = 20
	for attempt := 0; attempt < maxAttempts; attempt++ {
		pos := randomPoint(rng, cfg.BoardSize, cfg.BonusRadius)
		trial := world.Body{ID: "probe", Kind: world.KindBonus, Position: pos, Radius: cfg.BonusRadius}
		if _, overlaps := w.GetBody(trial, nil); overlaps {
			continue
		}
		m.seq++
		id := "bonus-" + strconv.Itoa(m.seq)
		body := world.Body{ID: id, Kind: world.KindBonus, Position: pos, Radius: cfg.BonusRadius, Data: kind}
		w.Insert(body)
		m.active[id] = activeBonus{Kind: kind, ExpireInTicks: ticksFor(cfg.BonusLifetime, cfg.TickRate)}
		return body, true
	}
	return world.Body{}, false
}

// remove is called when a bonus is picked up (rather than expiring), so
// its countdown stops without emitting the expiry event.
func (m *bonusManager) remove(id string) {
	delete(m.active, id)
}

func randomPoint(rng *rand.Rand, boardSize, radius float64) vector.Vector {
	return vector.Vector{
		X: radius + rng.Float64()*(boardSize-2*radius),
		Y: radius + rng.Float64()*(boardSize-2*radius),
	}
}

func ticksFor(d, tickRate time.Duration) int {
	if tickRate <= 0 {
		return 1
	}
	n := int(d / tickRate)
	if n < 1 {
		n = 1
	}
	return n
}

func randTicksBetween(lo, hi, tickRate time.Duration, rng *rand.Rand) int {
	loT := ticksFor(lo, tickRate)
	hiT := ticksFor(hi, tickRate)
	if hiT <= loT {
		return loT
	}
	return loT + rng.Intn(hiT-loT+1)
}
