// SPDX-License-Identifier: MIT
// Package: pemesh/elements
//
// class.go — the class tables and file-name matching.
//
// Contract:
//   - Class ids are stable: Comb=0 … Zeta=7, Random=8. NoClass marks meshes
//     built interactively (no class).
//   - ClassIDFromFilename strips the directory and a leading "<digits>_"
//     dataset index, then picks the longest class prefix matching the rest.

package elements

import (
	"math"
	"path/filepath"
	"strings"
)

// Class enumerates the element families.
type Class uint8

const (
	Comb Class = iota
	Convexity
	Isotropy
	Maze
	NSided
	Star
	ULike
	Zeta
	Random

	numClasses = int(Random) + 1
)

// NoClass is the class tag of meshes generated on the canvas.
const NoClass uint32 = math.MaxUint32

var classNames = [numClasses]string{
	"Comb", "Convexity", "Isotropy", "Maze", "N-Sided", "Star", "U-Like", "Zeta", "Random",
}

var classPrefixes = [numClasses]string{
	"comb_", "convexity_", "isotropy_", "maze_", "num_sides_", "star_", "u_like_", "zeta_", "random",
}

// Classes returns every class in id order.
func Classes() []Class {
	out := make([]Class, numClasses)
	for i := range out {
		out[i] = Class(i)
	}
	return out
}

// String returns the display name, e.g. "N-Sided".
func (c Class) String() string {
	if int(c) >= numClasses {
		return "Unknown"
	}
	return classNames[c]
}

// Prefix returns the dataset file prefix of the class, e.g. "num_sides_".
func (c Class) Prefix() string {
	if int(c) >= numClasses {
		return ""
	}
	return classPrefixes[c]
}

// Valid reports whether c is in the class table.
func (c Class) Valid() bool { return int(c) < numClasses }

// ClassFromName resolves a display name (case-insensitive).
func ClassFromName(name string) (Class, bool) {
	for i, n := range classNames {
		if strings.EqualFold(n, name) {
			return Class(i), true
		}
	}
	return 0, false
}

// ClassIDFromFilename maps a dataset file name to a class id, or NoClass.
func ClassIDFromFilename(path string) uint32 {
	name := strings.ToLower(filepath.Base(path))
	name = stripIndex(name)

	best, bestLen := NoClass, 0
	for i, p := range classPrefixes {
		if strings.HasPrefix(name, p) && len(p) > bestLen {
			best, bestLen = uint32(i), len(p)
		}
	}
	return best
}

// stripIndex removes a leading "<digits>_" prefix.
func stripIndex(name string) string {
	i := 0
	for i < len(name) && name[i] >= '0' && name[i] <= '9' {
		i++
	}
	if i > 0 && i < len(name) && name[i] == '_' {
		return name[i+1:]
	}
	return name
}
