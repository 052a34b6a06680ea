package roundgame

import (
	"github.com/bokeefe123/modaltron/actor"
	"github.com/bokeefe123/modaltron/internal/broadcaster"
)

type playerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type startPayload struct {
	Players []playerSummary `json:"players"`
}

type roundNewPayload struct {
	Round int `json:"round"`
}

type diePayload struct {
	Avatar string  `json:"avatar"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

type bonusPayload struct {
	ID   string  `json:"id"`
	Kind string  `json:"kind"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type bonusClearPayload struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

type roundEndPayload struct {
	Scores map[string]int `json:"scores"`
}

type endPayload struct {
	Winner string `json:"winner,omitempty"`
	Reason string `json:"reason"`
}

type positionEntry struct {
	Avatar string  `json:"avatar"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Angle  float64 `json:"angle"`
}

func (g *Game) playerSummaries() []playerSummary {
	out := make([]playerSummary, 0, len(g.order))
	for _, id := range g.order {
		a := g.avatars[id]
		out = append(out, playerSummary{ID: a.ID, Name: a.Name, Color: a.Color})
	}
	return out
}

// emitPositions sends the decimated position/angle batch (§4.8), one entry
// per living avatar.
func (g *Game) emitPositions() {
	entries := make([]positionEntry, 0, len(g.order))
	for _, id := range g.order {
		a := g.avatars[id]
		if !a.Alive {
			continue
		}
		entries = append(entries, positionEntry{Avatar: id, X: a.Position.X, Y: a.Position.Y, Angle: a.Angle})
	}
	g.emit("position", entries)
}

func (g *Game) emit(name string, data interface{}) {
	g.outbox.AddEvent(name, data, 0)
}

// flush writes every event accumulated this tick as a single frame,
// matching §4.1's "writes within a single tick are one JSON-array frame".
func (g *Game) flush(ctx actor.Context) {
	if g.outbox.Len() == 0 {
		return
	}
	frame, err := g.outbox.Encode()
	if err != nil {
		g.log.Warn().Err(err).Msg("failed to encode outbound game frame")
		return
	}
	ctx.Engine().Send(g.broadcasterPID, broadcaster.BroadcastFrame{Frame: frame}, g.self)
}
