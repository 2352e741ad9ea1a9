package bvh

import (
	"cmp"
	"slices"
)

// splitter owns the primitive ordering during a build. Records handed to it
// index into whatever array it permutes.
type splitter interface {
	find(rec BuildRecord) Cut
	partition(cut Cut, rec BuildRecord) (left, right BuildRecord)
	appendIDs(dst []int, rec BuildRecord) []int
}

func compareCentroids(axis Axis) func(a, b BuildPrimitive) int {
	return func(a, b BuildPrimitive) int {
		if c := cmp.Compare(a.Centroid[axis], b.Centroid[axis]); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	}
}

// medianSplit halves prims[rec.Begin:rec.End]. When the centroids spread,
// the range is first ordered along the widest centroid axis.
func medianSplit(prims []BuildPrimitive, rec BuildRecord) (BuildRecord, BuildRecord) {
	span := prims[rec.Begin:rec.End]
	axis := rec.CentroidBounds.WidestAxis()
	if rec.CentroidBounds.Extent()[axis] > 0 {
		slices.SortStableFunc(span, compareCentroids(axis))
	}
	center := (rec.Begin + rec.End) / 2
	return recordOf(prims, rec.Begin, center), recordOf(prims, center, rec.End)
}
