package search

// NoHit marks a State without a located match.
const NoHit = -1

// State is the search memory of one viewer session.
type State struct {
	pattern       string
	caseSensitive bool
	hit           int
	maxLen        int
}

// NewState returns an empty state. Patterns are cut to maxLen runes; a
// maxLen below 1 leaves them unbounded.
func NewState(maxLen int) State {
	return State{hit: NoHit, maxLen: maxLen}
}

// Set stores a new pattern and case rule and forgets the previous hit.
func (s *State) Set(pattern string, caseSensitive bool) {
	if s.maxLen > 0 {
		if r := []rune(pattern); len(r) > s.maxLen {
			pattern = string(r[:s.maxLen])
		}
	}
	s.pattern = pattern
	s.caseSensitive = caseSensitive
	s.hit = NoHit
}

// Pattern returns the stored pattern.
func (s State) Pattern() string {
	return s.pattern
}

// CaseSensitive reports the case rule of the stored pattern.
func (s State) CaseSensitive() bool {
	return s.caseSensitive
}

// Active reports whether the stored pattern is long enough to search.
func (s State) Active() bool {
	return Usable(s.pattern)
}

// Hit returns the last located line or NoHit.
func (s State) Hit() int {
	return s.hit
}

// SetHit records a located line.
func (s *State) SetHit(line int) {
	s.hit = line
}

// ClearHit forgets the located line but keeps the pattern.
func (s *State) ClearHit() {
	s.hit = NoHit
}

// Matches applies the stored pattern to text.
func (s State) Matches(text string) bool {
	return Contains(text, s.pattern, s.caseSensitive)
}
