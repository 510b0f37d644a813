package game

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownSelector = errors.New("unknown grid selector")
	ErrUnknownFilter   = errors.New("unknown grid filter")
)

// Selector names a set of grid slots, usually relative to an origin slot.
type Selector string

const (
	SelectUp     Selector = "Up"
	SelectDown   Selector = "Down"
	SelectLeft   Selector = "Left"
	SelectRight  Selector = "Right"
	SelectNear4  Selector = "Near4"
	SelectNear8  Selector = "Near8"
	SelectRandom Selector = "Random"
	SelectAll    Selector = "All"
)

// GridFilter narrows candidate slots.
type GridFilter string

const (
	FilterNone        GridFilter = ""
	FilterSameType    GridFilter = "SameType"
	FilterDiffType    GridFilter = "DiffType"
	FilterEdge        GridFilter = "Edge"
	FilterCorner      GridFilter = "Corner"
	FilterCenter      GridFilter = "Center"
	FilterUpgraded    GridFilter = "Upgraded"
	FilterNotUpgraded GridFilter = "NotUpgraded"
)

var directions = map[Selector][2]int{
	SelectUp:    {-1, 0},
	SelectDown:  {1, 0},
	SelectLeft:  {0, -1},
	SelectRight: {0, 1},
}

// TargetIndices resolves a selector into grid slots.
//
// Directional selectors walk count steps (default 1) from the origin; if the
// first step leaves the grid they walk the opposite way instead. Random and
// All return every occupied slot except the origin, unshuffled; SelectTargets
// applies the count limit. Relative selectors need an origin and return
// nothing without one.
func (p *Pool) TargetIndices(sel Selector, count int, origin int) ([]int, error) {
	hasOrigin := p.validIndex(origin)

	if d, ok := directions[Selector(canonicalSelector(sel))]; ok {
		if !hasOrigin {
			return nil, nil
		}
		if count <= 0 {
			count = 1
		}
		r, c := gridRow(origin), gridCol(origin)
		if _, ok := gridIndex(r+d[0], c+d[1]); !ok {
			d = [2]int{-d[0], -d[1]}
		}
		var out []int
		for step := 1; step <= count; step++ {
			idx, ok := gridIndex(r+d[0]*step, c+d[1]*step)
			if !ok || !p.validIndex(idx) {
				break
			}
			out = append(out, idx)
		}
		return out, nil
	}

	switch Selector(canonicalSelector(sel)) {
	case SelectNear4, SelectNear8:
		if !hasOrigin {
			return nil, nil
		}
		r, c := gridRow(origin), gridCol(origin)
		var out []int
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				if canonicalSelector(sel) == string(SelectNear4) && dr != 0 && dc != 0 {
					continue
				}
				if idx, ok := gridIndex(r+dr, c+dc); ok && p.validIndex(idx) {
					out = append(out, idx)
				}
			}
		}
		return out, nil
	case SelectRandom, SelectAll:
		var out []int
		for i := range p.Grid {
			if i != origin {
				out = append(out, i)
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSelector, sel)
}

func canonicalSelector(sel Selector) string {
	for _, known := range []Selector{SelectUp, SelectDown, SelectLeft, SelectRight, SelectNear4, SelectNear8, SelectRandom, SelectAll} {
		if strings.EqualFold(string(known), string(sel)) {
			return string(known)
		}
	}
	return string(sel)
}

// FilterTargets keeps the slots matching filter relative to the origin card.
// An unknown filter returns the candidates unchanged with an error.
func (p *Pool) FilterTargets(indices []int, filter GridFilter, origin int) ([]int, error) {
	if filter == FilterNone {
		return indices, nil
	}
	var originElem Element
	if p.validIndex(origin) {
		originElem = p.Grid[origin].Element
	}

	var keep func(i int) bool
	switch GridFilter(strings.ToLower(string(filter))) {
	case "sametype":
		keep = func(i int) bool { return originElem != ElementNone && p.Grid[i].Element == originElem }
	case "difftype":
		keep = func(i int) bool { return originElem != ElementNone && p.Grid[i].Element != originElem }
	case "edge":
		keep = func(i int) bool {
			r, c := gridRow(i), gridCol(i)
			return r == 0 || c == 0 || r == GridSide-1 || c == GridSide-1
		}
	case "corner":
		keep = func(i int) bool {
			r, c := gridRow(i), gridCol(i)
			return (r == 0 || r == GridSide-1) && (c == 0 || c == GridSide-1)
		}
	case "center":
		keep = func(i int) bool {
			r, c := gridRow(i), gridCol(i)
			return r > 0 && c > 0 && r < GridSide-1 && c < GridSide-1
		}
	case "upgraded":
		keep = func(i int) bool { return p.Grid[i].Upgraded }
	case "notupgraded":
		keep = func(i int) bool { return !p.Grid[i].Upgraded }
	default:
		e, ok := ParseElement(string(filter))
		if !ok {
			return indices, fmt.Errorf("%w: %q", ErrUnknownFilter, filter)
		}
		keep = func(i int) bool { return p.Grid[i].Element == e }
	}

	var out []int
	for _, i := range indices {
		if p.validIndex(i) && keep(i) {
			out = append(out, i)
		}
	}
	return out, nil
}

// SelectTargets runs the full pipeline: selector, filter, then a shuffled
// count limit for Random and All (Random defaults to 1, All with count <= 0
// keeps everything). Errors report unknown keys; the indices returned are
// still usable.
func (p *Pool) SelectTargets(sel Selector, count int, filter GridFilter, origin int) ([]int, error) {
	indices, err := p.TargetIndices(sel, count, origin)
	if err != nil {
		return nil, err
	}
	indices, ferr := p.FilterTargets(indices, filter, origin)

	switch Selector(canonicalSelector(sel)) {
	case SelectRandom:
		if count <= 0 {
			count = 1
		}
		fallthrough
	case SelectAll:
		shuffleInPlace(p.rng, indices)
		if count > 0 && count < len(indices) {
			indices = indices[:count]
		}
	}
	return indices, ferr
}
