package transparency

import "trustview/internal/types"

// Counters are the overview numbers shown above the activity log.
type Counters struct {
	Total   int `json:"total"`
	Success int `json:"success"`
	Failed  int `json:"failed"`
	Pending int `json:"pending"`
}

// Summarize counts intents by outcome. Pending is everything that is neither
// success nor failed, so the four counters always add up.
func Summarize(intents []types.Intent) Counters {
	c := Counters{Total: len(intents)}
	for _, in := range intents {
		switch in.Status {
		case types.StatusSuccess:
			c.Success++
		case types.StatusFailed:
			c.Failed++
		}
	}
	c.Pending = c.Total - c.Success - c.Failed
	return c
}
