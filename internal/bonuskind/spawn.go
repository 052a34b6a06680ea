package bonuskind

import "math/rand"

// Pick draws a bonus kind. Spawn weights are uniform across all eleven
// kinds — see DESIGN.md's Open Question decision, since the source this
// spec was distilled from does not specify weights.
func Pick(rng *rand.Rand) Kind {
	return All[rng.Intn(len(All))]
}
