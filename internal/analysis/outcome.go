package analysis

// Outcome is how a game's value compares to the prop line.
type Outcome string

const (
	Over  Outcome = "over"
	Under Outcome = "under"
	Push  Outcome = "push"
)

// Classify compares value to line using exact equality for a push.
// Callers that want tolerance must round before calling.
func Classify(value, line float64) Outcome {
	switch {
	case value > line:
		return Over
	case value < line:
		return Under
	default:
		return Push
	}
}

// GameResult is a single evaluated game.
type GameResult struct {
	Game    GameRecord `json:"game"`
	Value   float64    `json:"value"`
	Outcome Outcome    `json:"outcome"`
}
