package solver

// hierarchy enumerates the auxiliary density operator labels: multi-indices
// over the flattened exponent list with total excitation at most maxDepth.
// Labels are ordered by excitation level, lexicographic within a level, so
// label 0 is always the physical system state. The structure is built once
// per solver and shared by every Run.
type hierarchy struct {
	nExp   int
	depth  int
	cap    int // per-index cap: depth for bosonic, 1 for fermionic
	labels [][]int
	index  map[string]int
}

func newHierarchy(nExp, depth int, fermionic bool) *hierarchy {
	h := &hierarchy{
		nExp:  nExp,
		depth: depth,
		cap:   depth,
		index: make(map[string]int),
	}
	if fermionic {
		h.cap = 1
	}

	label := make([]int, nExp)
	for level := 0; level <= depth; level++ {
		h.emit(label, 0, level)
	}
	return h
}

// emit appends, in lexicographic order, every label that spends exactly
// remaining excitations over positions pos..nExp-1.
func (h *hierarchy) emit(label []int, pos, remaining int) {
	if pos == h.nExp {
		if remaining == 0 {
			h.add(label)
		}
		return
	}
	max := remaining
	if max > h.cap {
		max = h.cap
	}
	for n := 0; n <= max; n++ {
		label[pos] = n
		h.emit(label, pos+1, remaining-n)
	}
	label[pos] = 0
}

func (h *hierarchy) add(label []int) {
	cp := append([]int(nil), label...)
	h.index[labelKey(label)] = len(h.labels)
	h.labels = append(h.labels, cp)
}

// size returns the number of auxiliary density operators.
func (h *hierarchy) size() int { return len(h.labels) }

// neighbor returns the index of the label equal to labels[i] with position
// k shifted by delta, or -1 when that label lies outside the hierarchy.
func (h *hierarchy) neighbor(i, k, delta int, scratch []int) int {
	label := h.labels[i]
	n := label[k] + delta
	if n < 0 || n > h.cap {
		return -1
	}
	copy(scratch, label)
	scratch[k] = n
	idx, ok := h.index[labelKey(scratch)]
	if !ok {
		return -1
	}
	return idx
}

func labelKey(label []int) string {
	b := make([]byte, len(label))
	for i, n := range label {
		b[i] = byte(n)
	}
	return string(b)
}
