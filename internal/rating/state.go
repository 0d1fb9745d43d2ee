package rating

// RatingState holds one candidate solution of the search: offense and
// defense ratings indexed by network-team index, the derived overall
// ratings, and the league-wide home advantage. Offense and defense are
// zero-centered at the end of every completed iteration, so only relative
// differences carry meaning.
type RatingState struct {
	Offense       []float64
	Defense       []float64
	Overall       []float64
	HomeAdvantage float64
}

// NewRatingState returns an all-zero state for n network teams.
func NewRatingState(n int) *RatingState {
	return &RatingState{
		Offense: make([]float64, n),
		Defense: make([]float64, n),
		Overall: make([]float64, n),
	}
}

// Clone returns a deep copy of the state.
func (s *RatingState) Clone() *RatingState {
	c := NewRatingState(len(s.Offense))
	c.CopyFrom(s)
	return c
}

// CopyFrom overwrites the state with the contents of other.
func (s *RatingState) CopyFrom(other *RatingState) {
	copy(s.Offense, other.Offense)
	copy(s.Defense, other.Defense)
	copy(s.Overall, other.Overall)
	s.HomeAdvantage = other.HomeAdvantage
}

// Recenter shifts the offense and defense arrays to zero mean and refreshes
// the overall ratings as their sum.
func (s *RatingState) Recenter() {
	offMean := mean(s.Offense)
	defMean := mean(s.Defense)
	for i := range s.Offense {
		s.Offense[i] -= offMean
		s.Defense[i] -= defMean
		s.Overall[i] = s.Offense[i] + s.Defense[i]
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
