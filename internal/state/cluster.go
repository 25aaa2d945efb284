package state

import "SketchBoard3D/internal/geometry"

// DefaultClusterDistance is the proximity, in surface pixels, under which two strokes of the
// same color are considered part of one shape.
const DefaultClusterDistance = 20.0

// ClusterStrokes partitions strokes into groups of related strokes. Two strokes are related
// when they share a color and some point of one lies closer than distanceThreshold to some
// point of the other. Groups are the connected components of that relation, ordered by the
// position of their first stroke in the input.
func ClusterStrokes(strokes []Stroke, distanceThreshold float64) []StrokeGroup {
	if len(strokes) == 0 {
		return nil
	}

	boxes := make([]geometry.BBox, len(strokes))
	for i, s := range strokes {
		boxes[i] = geometry.BoundingBox(s.Points)
	}

	processed := make([]bool, len(strokes))
	groups := make([]StrokeGroup, 0, len(strokes))

	for seed := range strokes {
		if processed[seed] {
			continue
		}
		processed[seed] = true
		members := []int{seed}

		for added := true; added; {
			added = false
			for cand := range strokes {
				if processed[cand] {
					continue
				}
				for _, m := range members {
					if related(strokes[m], strokes[cand], boxes[m], boxes[cand], distanceThreshold) {
						processed[cand] = true
						members = append(members, cand)
						added = true
						break
					}
				}
			}
		}

		groups = append(groups, collect(strokes, members))
	}
	return groups
}

// collect returns the member strokes in input order.
func collect(strokes []Stroke, members []int) StrokeGroup {
	in := make(map[int]bool, len(members))
	for _, m := range members {
		in[m] = true
	}
	group := make(StrokeGroup, 0, len(members))
	for i, s := range strokes {
		if in[i] {
			group = append(group, s)
		}
	}
	return group
}

func related(a, b Stroke, boxA, boxB geometry.BBox, threshold float64) bool {
	if a.Color != b.Color {
		return false
	}
	if len(a.Points) == 0 || len(b.Points) == 0 {
		return false
	}
	if boxA.Gap(boxB) >= threshold {
		return false
	}
	for _, p := range a.Points {
		for _, q := range b.Points {
			if geometry.Distance(p, q) < threshold {
				return true
			}
		}
	}
	return false
}
