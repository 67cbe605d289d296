package breakout

// Session holds the counters of one game.
type Session struct {
	Score      int
	Lives      int
	LevelIndex int
	Terminal   bool
}

// NewSession starts a game with the given lives.
func NewSession(lives int) *Session {
	return &Session{Lives: max(lives, 0)}
}

// AddScore adds points. Non-positive amounts are ignored so the score never
// decreases.
func (s *Session) AddScore(points int) {
	if points > 0 {
		s.Score += points
	}
}

// LoseLife takes one life, never going below zero, and returns the lives
// left. The session becomes terminal at zero.
func (s *Session) LoseLife() int {
	s.Lives = max(s.Lives-1, 0)
	if s.Lives == 0 {
		s.Terminal = true
	}
	return s.Lives
}

// Result returns the payload for the end screens.
func (s *Session) Result() Result {
	return Result{Score: s.Score, Level: s.LevelIndex + 1}
}
