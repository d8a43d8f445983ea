package material

// sequenceSampler replays a fixed sequence of [0,1) values, cycling forever
type sequenceSampler struct {
	values []float64
	next   int
}

func newSequenceSampler(values ...float64) *sequenceSampler {
	return &sequenceSampler{values: values}
}

func (s *sequenceSampler) Float64() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func (s *sequenceSampler) Uniform(low, high float64) float64 {
	return low + (high-low)*s.Float64()
}
