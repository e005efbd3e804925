package terrain

import "github.com/Ladvien/pixy-terrain/pkg/math"

// The primitives below assume the context is already rotated so the
// interesting corner sits at logical A. They trust their inputs; bad
// values are caught in the vertex choke point, never here.

// emitFullFloor covers the whole cell. Low poly is a plain quad. High
// poly fans around a center vertex at the mean height, which avoids
// the bowtie artifact a two-triangle quad shows when opposite corners
// disagree.
func (e *emitter) emitFullFloor() {
	ay, by, dy, cy := e.ctx.Ay(), e.ctx.By(), e.ctx.Dy(), e.ctx.Cy()

	if !e.ctx.opts.HighPoly {
		e.floorQuad(fv(0, 0, ay), fv(1, 0, by), fv(1, 1, dy), fv(0, 1, cy))
		return
	}

	m := fv(0.5, 0.5, (ay+by+cy+dy)/4)
	a := fv(0, 0, ay)
	b := fv(1, 0, by)
	d := fv(1, 1, dy)
	c := fv(0, 1, cy)
	e.floorTri(m, a, c)
	e.floorTri(m, c, d)
	e.floorTri(m, d, b)
	e.floorTri(m, b, a)
}

// outerOpts selects which parts of the outer-corner primitive to
// emit. flatten pins both wall-base heights to the lower neighbor so
// seams line up when another primitive owns the floor below.
type outerOpts struct {
	withTop   bool
	withLower bool
	flatten   bool
}

// emitOuterCorner cuts corner A off at the edge midpoints. The wall
// runs between the cuts; the optional top triangle caps A and the
// optional L-shaped floor covers the remaining pentagon at the
// neighbor heights.
func (e *emitter) emitOuterCorner(o outerOpts) {
	ay, by, dy, cy := e.ctx.Ay(), e.ctx.By(), e.ctx.Dy(), e.ctx.Cy()

	raised := ay*2 > by+cy
	topHint, footHint := hintRidge, hintLedge
	if !raised {
		topHint, footHint = hintLedge, hintRidge
	}

	pAB := math.Vec2{X: 0.5, Y: 0}
	pAC := math.Vec2{X: 0, Y: 0.5}

	if o.withTop {
		e.floorTri(
			fv(0, 0, ay).withHint(topHint),
			fv(0, 0.5, ay).withHint(topHint),
			fv(0.5, 0, ay).withHint(topHint),
		)
	}

	baseAC, baseAB := cy, by
	if o.flatten {
		baseAC = minf(by, cy)
		baseAB = baseAC
	}
	e.wallQuad(pAC, pAB, ay, ay, baseAC, baseAB)

	if o.withLower {
		e.floorTri(
			fv(0.5, 0, by).withHint(footHint),
			fv(0, 0.5, cy).withHint(footHint),
			fv(0, 1, cy),
		)
		e.floorTri(fv(0.5, 0, by).withHint(footHint), fv(0, 1, cy), fv(1, 1, dy))
		e.floorTri(fv(0.5, 0, by).withHint(footHint), fv(1, 1, dy), fv(1, 0, by))
	}
}

// edgeOpts selects the parts of the edge primitive and the horizontal
// span it covers, as fractions of the cell. Partial spans let a
// dispatcher pair an edge with a corner cut in the same cell.
type edgeOpts struct {
	start, end float32
	withUpper  bool
	withWall   bool
	withLower  bool
}

// emitEdge splits the cell along z=0.5 with the A-B pair on top. The
// lip height follows the A→B slope and the foot follows C→D.
func (e *emitter) emitEdge(o edgeOpts) {
	ay, by, dy, cy := e.ctx.Ay(), e.ctx.By(), e.ctx.Dy(), e.ctx.Cy()

	s := clamp01(o.start)
	t := clamp01(o.end)
	if s >= t {
		return
	}

	upLip := func(x float32) float32 { return ay + (by-ay)*x }
	loLip := func(x float32) float32 { return cy + (dy-cy)*x }

	pairHigh := ay+by > cy+dy
	upHint, loHint := hintRidge, hintLedge
	if !pairHigh {
		upHint, loHint = hintLedge, hintRidge
	}

	if o.withUpper {
		e.floorQuad(
			fv(s, 0, upLip(s)),
			fv(t, 0, upLip(t)),
			fv(t, 0.5, upLip(t)).withHint(upHint),
			fv(s, 0.5, upLip(s)).withHint(upHint),
		)
	}
	if o.withWall {
		e.wallQuad(
			math.Vec2{X: s, Y: 0.5}, math.Vec2{X: t, Y: 0.5},
			upLip(s), upLip(t), loLip(s), loLip(t),
		)
	}
	if o.withLower {
		e.floorQuad(
			fv(s, 0.5, loLip(s)).withHint(loHint),
			fv(t, 0.5, loLip(t)).withHint(loHint),
			fv(t, 1, loLip(t)),
			fv(s, 1, loLip(s)),
		)
	}
}

// innerOpts configures the inner-corner primitive. upperMask keeps a
// subset of the four upper fan triangles, counted from the A-C side
// clockwise, so a composing case can carve out part of the rim.
type innerOpts struct {
	withLower bool
	upperMask uint8
}

// emitInnerCorner sinks corner A to a small square floor at its own
// height, walls the two inner faces, and fans the upper rim around
// the cell center at the mean of the three high corners.
func (e *emitter) emitInnerCorner(o innerOpts) {
	ay, by, dy, cy := e.ctx.Ay(), e.ctx.By(), e.ctx.Dy(), e.ctx.Cy()
	cTop := (by + cy + dy) / 3

	if o.withLower {
		e.floorQuad(
			fv(0, 0, ay),
			fv(0.5, 0, ay).withHint(hintLedge),
			fv(0.5, 0.5, ay).withHint(hintLedge),
			fv(0, 0.5, ay).withHint(hintLedge),
		)
	}

	e.wallQuad(math.Vec2{X: 0.5, Y: 0}, math.Vec2{X: 0.5, Y: 0.5}, by, cTop, ay, ay)
	e.wallQuad(math.Vec2{X: 0.5, Y: 0.5}, math.Vec2{X: 0, Y: 0.5}, cTop, cy, ay, ay)

	pm := fv(0.5, 0.5, cTop).withHint(hintRidge)
	rim := [4][2]vert{
		{fv(0, 0.5, cy).withHint(hintRidge), fv(0, 1, cy)},
		{fv(0, 1, cy), fv(1, 1, dy)},
		{fv(1, 1, dy), fv(1, 0, by)},
		{fv(1, 0, by), fv(0.5, 0, by).withHint(hintRidge)},
	}
	for i, tri := range rim {
		if o.upperMask&(1<<uint(i)) == 0 {
			continue
		}
		e.floorTri(pm, tri[0], tri[1])
	}
}

// emitDiagonalFloor lays the four-triangle strip that joins corners B
// and C when A and D are both walled off. The cut vertices carry the
// diagonal-midpoint flag so their colors blend the two joined
// corners, and their hints record which cut abuts a cliff foot.
func (e *emitter) emitDiagonalFloor() {
	ay, by, dy, cy := e.ctx.Ay(), e.ctx.By(), e.ctx.Dy(), e.ctx.Cy()

	aHint, dHint := hintRidge, hintRidge
	if ay*2 > by+cy {
		aHint = hintLedge
	}
	if dy*2 > by+cy {
		dHint = hintLedge
	}

	pAB := fv(0.5, 0, by).withHint(aHint).diag()
	pAC := fv(0, 0.5, cy).withHint(aHint).diag()
	pBD := fv(1, 0.5, by).withHint(dHint).diag()
	pDC := fv(0.5, 1, cy).withHint(dHint).diag()
	b := fv(1, 0, by)
	c := fv(0, 1, cy)

	e.floorTri(pAB, pAC, c)
	e.floorTri(pAB, c, pDC)
	e.floorTri(pAB, pDC, pBD)
	e.floorTri(pAB, pBD, b)
}

// emitTerrace handles the one-merged-edge cell: the A-B pair stays a
// sloped shelf, C and D drop to flat quarter floors at their own
// heights with a divider wall between them. The shelf wall is split
// at the midpoint so each half keeps a constant foot height; a single
// span would twist whenever C and D straddle the shelf.
func (e *emitter) emitTerrace() {
	ay, by, dy, cy := e.ctx.Ay(), e.ctx.By(), e.ctx.Dy(), e.ctx.Cy()
	midTop := (ay + by) / 2

	leftHint, leftFoot := hintRidge, hintLedge
	if ay < cy {
		leftHint, leftFoot = hintLedge, hintRidge
	}
	rightHint, rightFoot := hintRidge, hintLedge
	if by < dy {
		rightHint, rightFoot = hintLedge, hintRidge
	}

	// Shelf floor, split to match the wall halves.
	e.floorQuad(
		fv(0, 0, ay),
		fv(0.5, 0, midTop),
		fv(0.5, 0.5, midTop).withHint(leftHint),
		fv(0, 0.5, ay).withHint(leftHint),
	)
	e.floorQuad(
		fv(0.5, 0, midTop),
		fv(1, 0, by),
		fv(1, 0.5, by).withHint(rightHint),
		fv(0.5, 0.5, midTop).withHint(rightHint),
	)

	e.wallQuad(math.Vec2{X: 0, Y: 0.5}, math.Vec2{X: 0.5, Y: 0.5}, ay, midTop, cy, cy)
	e.wallQuad(math.Vec2{X: 0.5, Y: 0.5}, math.Vec2{X: 1, Y: 0.5}, midTop, by, dy, dy)

	// Divider between the C and D quarters, facing the lower one.
	cDivHint, dDivHint := hintRidge, hintLedge
	if dy > cy {
		cDivHint, dDivHint = hintLedge, hintRidge
		e.wallQuad(math.Vec2{X: 0.5, Y: 0.5}, math.Vec2{X: 0.5, Y: 1}, dy, dy, cy, cy)
	} else {
		e.wallQuad(math.Vec2{X: 0.5, Y: 1}, math.Vec2{X: 0.5, Y: 0.5}, cy, cy, dy, dy)
	}

	cShared := math.Vec2{X: maxf(leftFoot.X, cDivHint.X), Y: maxf(leftFoot.Y, cDivHint.Y)}
	e.floorQuad(
		fv(0, 0.5, cy).withHint(leftFoot),
		fv(0.5, 0.5, cy).withHint(cShared),
		fv(0.5, 1, cy).withHint(cDivHint),
		fv(0, 1, cy),
	)

	dShared := math.Vec2{X: maxf(rightFoot.X, dDivHint.X), Y: maxf(rightFoot.Y, dDivHint.Y)}
	e.floorQuad(
		fv(0.5, 0.5, dy).withHint(dShared),
		fv(1, 0.5, dy).withHint(rightFoot),
		fv(1, 1, dy),
		fv(0.5, 1, dy).withHint(dDivHint),
	)
}
