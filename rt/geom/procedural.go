package geom

import (
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

type SceneKind string

const (
	SceneSpheres   SceneKind = "spheres"
	SceneTriangles SceneKind = "triangles"
	SceneBoxes     SceneKind = "boxes"
	SceneGrid      SceneKind = "grid"
)

// Generate builds a reproducible procedural scene of roughly count shapes
// inside [-spread, spread]^3.
func Generate(kind SceneKind, count int, spread float32, seed int64) ([]Shape, error) {
	rng := rand.New(rand.NewSource(seed))
	switch kind {
	case SceneSpheres:
		return RandomSpheres(rng, count, spread, spread/20), nil
	case SceneTriangles:
		return RandomTriangles(rng, count, spread, spread/10), nil
	case SceneBoxes:
		return RandomBoxes(rng, count, spread, spread/20), nil
	case SceneGrid:
		side := 1
		for side*side*side < count {
			side++
		}
		return SphereGrid(side, 2*spread/float32(side), spread/float32(side)*0.4), nil
	}
	return nil, fmt.Errorf("unknown scene kind %q", kind)
}

func randomPoint(rng *rand.Rand, spread float32) mgl32.Vec3 {
	return mgl32.Vec3{
		(rng.Float32()*2 - 1) * spread,
		(rng.Float32()*2 - 1) * spread,
		(rng.Float32()*2 - 1) * spread,
	}
}

func RandomSpheres(rng *rand.Rand, count int, spread, maxRadius float32) []Shape {
	out := make([]Shape, count)
	for i := range out {
		out[i] = Sphere{Center: randomPoint(rng, spread), Radius: maxRadius * (0.2 + 0.8*rng.Float32())}
	}
	return out
}

// RandomTriangles scatters triangles whose vertices lie within size of a
// random anchor.
func RandomTriangles(rng *rand.Rand, count int, spread, size float32) []Shape {
	out := make([]Shape, count)
	for i := range out {
		a := randomPoint(rng, spread)
		out[i] = Triangle{
			A: a,
			B: a.Add(randomPoint(rng, size)),
			C: a.Add(randomPoint(rng, size)),
		}
	}
	return out
}

func RandomBoxes(rng *rand.Rand, count int, spread, maxHalf float32) []Shape {
	out := make([]Shape, count)
	for i := range out {
		h := mgl32.Vec3{
			maxHalf * (0.1 + 0.9*rng.Float32()),
			maxHalf * (0.1 + 0.9*rng.Float32()),
			maxHalf * (0.1 + 0.9*rng.Float32()),
		}
		out[i] = NewBox(randomPoint(rng, spread), h)
	}
	return out
}

// SphereGrid lays side^3 spheres on a regular lattice centred at the origin.
func SphereGrid(side int, spacing, radius float32) []Shape {
	out := make([]Shape, 0, side*side*side)
	offset := float32(side-1) * spacing * 0.5
	for x := 0; x < side; x++ {
		for y := 0; y < side; y++ {
			for z := 0; z < side; z++ {
				c := mgl32.Vec3{float32(x)*spacing - offset, float32(y)*spacing - offset, float32(z)*spacing - offset}
				out = append(out, Sphere{Center: c, Radius: radius})
			}
		}
	}
	return out
}
