// Package bonuskind is the tagged-variant registry for the eleven bonus
// kinds, generalizing the teacher's cellTypes struct-of-constants idiom
// (utils/constants.go) from three cell types to eleven bonus kinds, each
// carrying a scope, a duration, and an apply/revert pair of pure functions.
package bonuskind

import "time"

// Kind identifies one of the eleven bonus variants.
type Kind int

const (
	SelfSmall Kind = iota
	SelfBig
	SelfMaster
	SelfSlow
	SelfFast
	EnemySlow
	EnemyFast
	EnemyBig
	EnemyInverse
	AllBorderless
	GameClear
)

// All lists every kind, in table order, for weighted-selection and
// iteration.
var All = []Kind{
	SelfSmall, SelfBig, SelfMaster, SelfSlow, SelfFast,
	EnemySlow, EnemyFast, EnemyBig, EnemyInverse,
	AllBorderless, GameClear,
}

func (k Kind) String() string {
	if def, ok := definitions[k]; ok {
		return def.Name
	}
	return "unknown"
}

// Scope says which avatars a bonus's effect is pushed onto.
type Scope int

const (
	// ScopeSelf affects only the avatar that picked the bonus up.
	ScopeSelf Scope = iota
	// ScopeOpponent affects every other avatar.
	ScopeOpponent
	// ScopeAll affects every avatar, including the one who picked it up.
	ScopeAll
)

// Modifiers is the cumulative, stackable effect state on one avatar.
// Multiple active effects fold into these fields: scalar fields are
// multiplicative, boolean-ish fields are reference counts so a second
// identical effect stacks rather than prematurely clearing on the first
// expiry (§8's BonusEnemyInverse stacking scenario).
type Modifiers struct {
	VelocityMult   float64
	RadiusMult     float64
	InverseCount   int
	BorderlessCount int
}

// NewModifiers returns the identity modifier set (no active effects).
func NewModifiers() Modifiers {
	return Modifiers{VelocityMult: 1, RadiusMult: 1}
}

// Inverse reports whether turn input should be inverted right now.
func (m Modifiers) Inverse() bool { return m.InverseCount > 0 }

// Borderless reports whether wall death is currently disabled.
func (m Modifiers) Borderless() bool { return m.BorderlessCount > 0 }

// Definition is one bonus kind's complete behavior.
type Definition struct {
	Kind     Kind
	Name     string
	Scope    Scope
	Duration time.Duration // 0 for an instant, non-stacking effect
	Apply    func(*Modifiers)
	Revert   func(*Modifiers)
}

var definitions = map[Kind]Definition{
	SelfSmall: {
		Kind: SelfSmall, Name: "BonusSelfSmall", Scope: ScopeSelf, Duration: 7500 * time.Millisecond,
		Apply:  func(m *Modifiers) { m.RadiusMult *= 0.5 },
		Revert: func(m *Modifiers) { m.RadiusMult /= 0.5 },
	},
	SelfBig: {
		Kind: SelfBig, Name: "BonusSelfBig", Scope: ScopeSelf, Duration: 7500 * time.Millisecond,
		Apply:  func(m *Modifiers) { m.RadiusMult *= 2 },
		Revert: func(m *Modifiers) { m.RadiusMult /= 2 },
	},
	SelfMaster: {
		Kind: SelfMaster, Name: "BonusSelfMaster", Scope: ScopeSelf, Duration: 7500 * time.Millisecond,
		Apply:  func(m *Modifiers) { m.VelocityMult *= 1.5 },
		Revert: func(m *Modifiers) { m.VelocityMult /= 1.5 },
	},
	SelfSlow: {
		Kind: SelfSlow, Name: "BonusSelfSlow", Scope: ScopeSelf, Duration: 7500 * time.Millisecond,
		Apply:  func(m *Modifiers) { m.VelocityMult *= 0.5 },
		Revert: func(m *Modifiers) { m.VelocityMult /= 0.5 },
	},
	SelfFast: {
		Kind: SelfFast, Name: "BonusSelfFast", Scope: ScopeSelf, Duration: 7500 * time.Millisecond,
		Apply:  func(m *Modifiers) { m.VelocityMult *= 1.5 },
		Revert: func(m *Modifiers) { m.VelocityMult /= 1.5 },
	},
	EnemySlow: {
		Kind: EnemySlow, Name: "BonusEnemySlow", Scope: ScopeOpponent, Duration: 7500 * time.Millisecond,
		Apply:  func(m *Modifiers) { m.VelocityMult *= 0.5 },
		Revert: func(m *Modifiers) { m.VelocityMult /= 0.5 },
	},
	EnemyFast: {
		Kind: EnemyFast, Name: "BonusEnemyFast", Scope: ScopeOpponent, Duration: 7500 * time.Millisecond,
		Apply:  func(m *Modifiers) { m.VelocityMult *= 1.5 },
		Revert: func(m *Modifiers) { m.VelocityMult /= 1.5 },
	},
	EnemyBig: {
		Kind: EnemyBig, Name: "BonusEnemyBig", Scope: ScopeOpponent, Duration: 7500 * time.Millisecond,
		Apply:  func(m *Modifiers) { m.RadiusMult *= 2 },
		Revert: func(m *Modifiers) { m.RadiusMult /= 2 },
	},
	EnemyInverse: {
		Kind: EnemyInverse, Name: "BonusEnemyInverse", Scope: ScopeOpponent, Duration: 7500 * time.Millisecond,
		Apply:  func(m *Modifiers) { m.InverseCount++ },
		Revert: func(m *Modifiers) { m.InverseCount-- },
	},
	AllBorderless: {
		Kind: AllBorderless, Name: "BonusAllBorderless", Scope: ScopeAll, Duration: 7500 * time.Millisecond,
		Apply:  func(m *Modifiers) { m.BorderlessCount++ },
		Revert: func(m *Modifiers) { m.BorderlessCount-- },
	},
	GameClear: {
		Kind: GameClear, Name: "BonusGameClear", Scope: ScopeAll, Duration: 0,
		Apply:  func(m *Modifiers) {},
		Revert: func(m *Modifiers) {},
	},
}

// Lookup returns the Definition for a Kind.
func Lookup(k Kind) Definition {
	return definitions[k]
}

// Instant reports whether a kind's effect has no duration (applied once,
// never reverted) — currently only BonusGameClear.
func Instant(k Kind) bool {
	return definitions[k].Duration == 0
}
