package field

// Scalar is a dense per-node float array over a grid, stored i fastest.
type Scalar struct {
	Grid
	Data []float64
}

// NewScalar allocates a scalar field with every node set to init.
func NewScalar(g Grid, init float64) *Scalar {
	s := &Scalar{Grid: g, Data: make([]float64, g.Len())}
	if init != 0 {
		s.Fill(init)
	}
	return s
}

// At returns the value at node (i, j, k).
func (s *Scalar) At(i, j, k int) float64 {
	return s.Data[s.Index(i, j, k)]
}

// Set stores v at node (i, j, k).
func (s *Scalar) Set(i, j, k int, v float64) {
	s.Data[s.Index(i, j, k)] = v
}

// Fill sets every node to v.
func (s *Scalar) Fill(v float64) {
	for n := range s.Data {
		s.Data[n] = v
	}
}

// MinMax returns the smallest and largest node values. Both are 0 for an
// empty field.
func (s *Scalar) MinMax() (min, max float64) {
	if len(s.Data) == 0 {
		return 0, 0
	}
	min, max = s.Data[0], s.Data[0]
	for _, v := range s.Data[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// Int32 is a dense per-node int32 array over a grid, stored i fastest.
// Level-set construction uses it to track the owning triangle per node.
type Int32 struct {
	Grid
	Data []int32
}

// NewInt32 allocates an int32 field with every node set to init.
func NewInt32(g Grid, init int32) *Int32 {
	f := &Int32{Grid: g, Data: make([]int32, g.Len())}
	if init != 0 {
		for n := range f.Data {
			f.Data[n] = init
		}
	}
	return f
}

// At returns the value at node (i, j, k).
func (f *Int32) At(i, j, k int) int32 {
	return f.Data[f.Index(i, j, k)]
}

// Set stores v at node (i, j, k).
func (f *Int32) Set(i, j, k int, v int32) {
	f.Data[f.Index(i, j, k)] = v
}
