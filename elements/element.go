// SPDX-License-Identifier: MIT
// Package: pemesh/elements
//
// element.go — the Element variant and its Deform operation.
//
// Contract:
//   - New accepts every class except Random (ErrNeedOutline); Random elements
//     come from FromOutline or LoadRandom.
//   - Deform(t) requires t ∈ [0,1]; it dispatches on the class, orients the
//     outline counter-clockwise and returns a single-polygon mesh.
//
// Determinism:
//   - Outlines are pure functions of (class, config, t).

package elements

import (
	"fmt"
	"math"
	"slices"

	"github.com/DanielaCabiddu/PEMesh/geom"
	"github.com/DanielaCabiddu/PEMesh/meshio"
	"github.com/DanielaCabiddu/PEMesh/polymesh"
)

const (
	methodNew        = "New"
	methodDeform     = "Deform"
	methodLoadRandom = "LoadRandom"
)

// Element is one parametric template.
type Element struct {
	class Class
	cfg   elementConfig
	base  []geom.Point2 // Random only
	path  string        // Random only, may be empty
}

// New returns a built-in element of class c.
func New(c Class, opts ...Option) (Element, error) {
	if !c.Valid() {
		return Element{}, fmt.Errorf("%s: class %d: %w", methodNew, c, ErrUnknownClass)
	}
	if c == Random {
		return Element{}, fmt.Errorf("%s: %w", methodNew, ErrNeedOutline)
	}
	return Element{class: c, cfg: newElementConfig(opts...)}, nil
}

// MustNew is New for static class values; it panics on error.
func MustNew(c Class, opts ...Option) Element {
	e, err := New(c, opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// FromOutline returns a Random element over a fixed outline.
func FromOutline(outline []geom.Point2) (Element, error) {
	if len(outline) < minSides {
		return Element{}, fmt.Errorf("%s: %d vertices: %w", methodNew, len(outline), ErrDegenerate)
	}
	return Element{class: Random, base: slices.Clone(outline)}, nil
}

// LoadRandom reads a Random element outline from an OBJ file. Multi-polygon
// files contribute their outer boundary.
func LoadRandom(path string) (Element, error) {
	m, err := meshio.LoadOBJ(path)
	if err != nil {
		return Element{}, fmt.Errorf("%s: %w", methodLoadRandom, err)
	}
	var outline []geom.Point2
	if m.NumPolys() == 1 {
		outline = m.PolyCoords(0)
	} else {
		vids, err := m.OrderedBoundaryVerts()
		if err != nil {
			return Element{}, fmt.Errorf("%s: %s: %w", methodLoadRandom, path, err)
		}
		for _, v := range vids {
			outline = append(outline, m.Vert(v))
		}
	}
	e, err := FromOutline(outline)
	if err != nil {
		return Element{}, fmt.Errorf("%s: %s: %w", methodLoadRandom, path, err)
	}
	e.path = path
	return e, nil
}

// Class returns the element class.
func (e Element) Class() Class { return e.class }

// Path returns the outline source of a Random element loaded from disk.
func (e Element) Path() string { return e.path }

// Outline returns the deformed outline at t in counter-clockwise order.
func (e Element) Outline(t float64) ([]geom.Point2, error) {
	if math.IsNaN(t) || t < 0 || t > 1 {
		return nil, fmt.Errorf("%s: t=%g: %w", methodDeform, t, ErrParamRange)
	}

	var pts []geom.Point2
	switch e.class {
	case Isotropy:
		pts = isotropy(t)
	case Convexity:
		pts = convexity(t)
	case NSided:
		pts = nSided(t, e.cfg.maxSides)
	case Maze:
		pts = maze(t)
	case Star:
		pts = star(t, e.cfg.maxSpikes, e.cfg.starPull)
	case ULike:
		pts = uLike(t)
	case Zeta:
		pts = zeta(t)
	case Comb:
		pts = comb(t, e.cfg.maxDents)
	case Random:
		if len(e.base) == 0 {
			return nil, fmt.Errorf("%s: %w", methodDeform, ErrNeedOutline)
		}
		pts = slices.Clone(e.base)
	default:
		return nil, fmt.Errorf("%s: class %d: %w", methodDeform, e.class, ErrUnknownClass)
	}

	a := geom.SignedArea(pts)
	if a == 0 {
		return nil, fmt.Errorf("%s: %s at t=%g: %w", methodDeform, e.class, t, ErrDegenerate)
	}
	if a < 0 {
		slices.Reverse(pts)
	}
	return pts, nil
}

// Deform returns the deformed template at t as a fresh single-polygon mesh.
func (e Element) Deform(t float64) (*polymesh.Mesh, error) {
	pts, err := e.Outline(t)
	if err != nil {
		return nil, err
	}
	poly := make([]int, len(pts))
	for i := range poly {
		poly[i] = i
	}
	m, err := polymesh.New(pts, [][]int{poly})
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", methodDeform, e.class, err)
	}
	return m, nil
}
