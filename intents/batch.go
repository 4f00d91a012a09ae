package intents

import "github.com/luno/topodash/api"

// Batches splits intents into batches of at most limit, in order. It never
// returns an empty batch.
func Batches(intents []api.Intent, limit int) [][]api.Intent {
	if limit <= 0 {
		limit = len(intents)
	}
	var ret [][]api.Intent
	for len(intents) > 0 {
		n := min(limit, len(intents))
		ret = append(ret, intents[:n:n])
		intents = intents[n:]
	}
	return ret
}
