package schafkopf

const (
	numPlayers    = 4
	handSize      = 6
	tricksPerHand = 6

	// laufendeMin is the shortest run of top trumps that pays a bonus
	laufendeMin = 3

	// pointsToWin is what the declarer's side needs in a non-tout game
	pointsToWin = 61

	// schneiderThreshold is the losing-side score below which schneider applies
	schneiderThreshold = 31
)

// Options are options for creating a new schafkopf game
type Options struct {
	// SauspielValue is the base tariff for the partnership games (Sauspiel and Hochzeit)
	SauspielValue int

	// SoloValue is the base tariff for Wenz, Geier, and suit solos
	SoloValue int

	// LaufendeValue is the bonus per running trump, paid at three or more
	LaufendeValue int

	// Seed fixes the shuffle for tests. Leave 0 to shuffle off the clock.
	Seed int64
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		SauspielValue: 20,
		SoloValue:     50,
		LaufendeValue: 10,
	}
}
