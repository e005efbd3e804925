package terrain

// CellCase names the topological shape a cell resolves to once its
// edge-merge flags and corner heights are examined.
type CellCase uint8

const (
	// CaseFloor covers cells whose corners all merge into one
	// continuous surface.
	CaseFloor CellCase = iota
	// CaseOuterCorner has one corner raised above its two merged
	// neighbors.
	CaseOuterCorner
	// CaseInnerCorner has one corner sunk below its two merged
	// neighbors.
	CaseInnerCorner
	// CaseEdge has one merged pair raised above the opposite pair.
	CaseEdge
	// CaseTerrace keeps one merged pair as a shelf over two
	// independent lower corners.
	CaseTerrace
	// CaseSaddle joins one diagonal with a floor strip and walls
	// off the other two corners independently.
	CaseSaddle
)

func (c CellCase) String() string {
	switch c {
	case CaseFloor:
		return "floor"
	case CaseOuterCorner:
		return "outer-corner"
	case CaseInnerCorner:
		return "inner-corner"
	case CaseEdge:
		return "edge"
	case CaseTerrace:
		return "terrace"
	case CaseSaddle:
		return "saddle"
	}
	return "unknown"
}

// Classify maps a cell onto its canonical case and the rotation that
// brings the interesting corner to logical A. The decision runs on
// the physical flags, so rotating the input cell by k steps yields
// the same case with the rotation offset by k.
func Classify(ctx Context) (CellCase, int) {
	m := ctx.merged
	h := ctx.heights

	k := 0
	for _, f := range m {
		if f {
			k++
		}
	}

	switch k {
	case 4, 3:
		// Three merged edges bound the fourth corner pair within
		// a slope's reach; render the seam as continuous floor.
		return CaseFloor, 0

	case 2:
		if m[edgeAB] && m[edgeDC] {
			if h[cornerA]+h[cornerB] >= h[cornerD]+h[cornerC] {
				return CaseEdge, 0
			}
			return CaseEdge, 2
		}
		if m[edgeBD] && m[edgeCA] {
			if h[cornerB]+h[cornerD] >= h[cornerC]+h[cornerA] {
				return CaseEdge, 1
			}
			return CaseEdge, 3
		}
		// Two adjacent merged edges isolate the corner their
		// unmerged counterparts share.
		for i := 0; i < 4; i++ {
			if !m[i] && !m[(i+1)%4] && m[(i+2)%4] && m[(i+3)%4] {
				corner := (i + 1) % 4
				prev := i
				next := (i + 2) % 4
				if h[corner]*2 > h[prev]+h[next] {
					return CaseOuterCorner, corner
				}
				return CaseInnerCorner, corner
			}
		}
		return CaseFloor, 0

	case 1:
		for i := 0; i < 4; i++ {
			if m[i] {
				return CaseTerrace, i
			}
		}
		return CaseFloor, 0

	default:
		// Nothing merges: bridge whichever diagonal is closer in
		// height and wall off the other two corners.
		if absf(h[cornerB]-h[cornerC]) <= absf(h[cornerA]-h[cornerD]) {
			return CaseSaddle, 0
		}
		return CaseSaddle, 1
	}
}

// Generate classifies the cell, rotates it to canonical orientation,
// and appends its full geometry to out. The returned case is what
// the dispatcher chose.
func Generate(ctx Context, out *CellGeometry) CellCase {
	cc, rot := Classify(ctx)
	ctx = ctx.WithRotation(rot)
	e := &emitter{ctx: ctx, out: out}

	switch cc {
	case CaseFloor:
		e.emitFullFloor()
	case CaseOuterCorner:
		e.emitOuterCorner(outerOpts{withTop: true, withLower: true})
	case CaseInnerCorner:
		e.emitInnerCorner(innerOpts{withLower: true, upperMask: 0xF})
	case CaseEdge:
		e.emitEdge(edgeOpts{start: 0, end: 1, withUpper: true, withWall: true, withLower: true})
	case CaseTerrace:
		e.emitTerrace()
	case CaseSaddle:
		e.emitDiagonalFloor()
		e.emitOuterCorner(outerOpts{withTop: true})
		opposite := &emitter{ctx: ctx.Rotate(2), out: out}
		opposite.emitOuterCorner(outerOpts{withTop: true})
	}
	return cc
}
