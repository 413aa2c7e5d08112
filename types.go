package gridmaker

// Atom is a single input atom. Type indexes into the TypeInfo table passed to
// MakeGrid and selects the channel the atom is written to.
type Atom struct {
	X, Y, Z float64
	Type    int
}

// TypeInfo holds per-type properties.
type TypeInfo struct {
	Radius float64
}
