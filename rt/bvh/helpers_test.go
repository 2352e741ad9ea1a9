package bvh

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func randomBoxes(rng *rand.Rand, n int, spread, size float32) []AABB {
	out := make([]AABB, n)
	for i := range out {
		c := mgl32.Vec3{
			(rng.Float32()*2 - 1) * spread,
			(rng.Float32()*2 - 1) * spread,
			(rng.Float32()*2 - 1) * spread,
		}
		h := mgl32.Vec3{
			rng.Float32()*size + 0.01,
			rng.Float32()*size + 0.01,
			rng.Float32()*size + 0.01,
		}
		out[i] = AABB{Min: c.Sub(h), Max: c.Add(h)}
	}
	return out
}

func unitCube(center mgl32.Vec3) AABB {
	h := mgl32.Vec3{0.5, 0.5, 0.5}
	return AABB{Min: center.Sub(h), Max: center.Add(h)}
}

// boxIntersector treats every primitive as a solid box.
func boxIntersector(boxes []AABB) IntersectFunc {
	return func(id int, ray Ray, tMin, tMax float32) (float32, bool) {
		rd, ok := newRayData(ray)
		if !ok {
			return 0, false
		}
		return rd.intersectBox(boxes[id], tMin, tMax)
	}
}

func bruteForce(boxes []AABB, ray Ray, maxDist float32) (HitRecord, bool) {
	fn := boxIntersector(boxes)
	best := HitRecord{T: maxDist, PrimitiveID: -1}
	found := false
	for id := range boxes {
		if t, ok := fn(id, ray, 0, best.T); ok && (t < best.T || !found) {
			best = HitRecord{T: t, PrimitiveID: id}
			found = true
		}
	}
	return best, found
}

// randomRay starts outside the scene and aims at a random point inside it.
func randomRay(rng *rand.Rand, radius, spread float32) Ray {
	theta := rng.Float32() * 2 * math32.Pi
	z := rng.Float32()*2 - 1
	r := math32.Sqrt(1 - z*z)
	origin := mgl32.Vec3{r * math32.Cos(theta), r * math32.Sin(theta), z}.Mul(radius)
	target := mgl32.Vec3{
		(rng.Float32()*2 - 1) * spread,
		(rng.Float32()*2 - 1) * spread,
		(rng.Float32()*2 - 1) * spread,
	}
	return Ray{Origin: origin, Dir: target.Sub(origin).Normalize()}
}

func testConfigs() map[string]Config {
	out := map[string]Config{}
	for _, width := range []int{2, 4, 8} {
		for _, strategy := range []Strategy{StrategyBinned, StrategySweep} {
			cfg := DefaultConfig()
			cfg.BranchingFactor = width
			cfg.Strategy = strategy
			out[string(strategy)+"/"+string(rune('0'+width))] = cfg
		}
	}
	single := DefaultConfig()
	single.BinCount = 1
	out["binned/one-bin"] = single

	tiny := DefaultConfig()
	tiny.MaxLeafSize, tiny.MaxBlockSize = 1, 1
	out["binned/leaf-1"] = tiny
	return out
}
