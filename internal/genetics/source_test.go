package genetics

// scriptedSource replays draws in order, reducing each modulo n.
type scriptedSource struct {
	draws []int
	pos   int
}

func script(draws ...int) *scriptedSource {
	return &scriptedSource{draws: draws}
}

func (s *scriptedSource) Intn(n int) int {
	v := s.draws[s.pos%len(s.draws)] % n
	s.pos++
	return v
}
