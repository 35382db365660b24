package detect

import (
	"math"
	"sort"
)

// mergeDetections groups raw scan hits (already in scan order: scale
// ascending, then y, then x) whose pairwise overlap exceeds the
// canonical threshold from spec.md §4.4 — center-to-center distance
// under min(w,h)*0.2, or IoU >= 0.5 — via union-find, then emits the
// component-wise average rectangle for every group meeting the
// neighbors+1 minimum size. Groups are returned ordered by their
// earliest-seen member, preserving scan order for ties.
//
// neighbors=0 is the one case handled outside this grouping: spec.md
// §4.4 calls for "all survivors kept unmerged" there, rather than the
// singleton-averages-to-itself degenerate case a uniform threshold of
// size>=1 would otherwise produce.
func mergeDetections(raw []Rect, neighbors int) []Detection {
	n := len(raw)
	if n == 0 {
		return nil
	}

	if neighbors == 0 {
		out := make([]Detection, n)
		for i, r := range raw {
			out[i] = Detection{Rect: r, Neighbors: 0}
		}
		return out
	}

	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[rb] = ra
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if overlaps(raw[i], raw[j]) {
				union(i, j)
			}
		}
	}

	groups := make(map[int][]int)
	for i := 0; i < n; i++ {
		root := find(i)
		groups[root] = append(groups[root], i)
	}

	type survivor struct {
		rep     int
		rect    Rect
		members int
	}
	var survivors []survivor
	for _, idxs := range groups {
		if len(idxs) < neighbors+1 {
			continue
		}
		rep := idxs[0]
		for _, idx := range idxs {
			if idx < rep {
				rep = idx
			}
		}
		survivors = append(survivors, survivor{rep: rep, rect: averageRect(raw, idxs), members: len(idxs)})
	}

	sort.Slice(survivors, func(i, j int) bool { return survivors[i].rep < survivors[j].rep })

	out := make([]Detection, len(survivors))
	for i, s := range survivors {
		out[i] = Detection{Rect: s.rect, Neighbors: s.members}
	}
	return out
}

func overlaps(a, b Rect) bool {
	minDim := math.Min(float64(minInt(a.W, a.H)), float64(minInt(b.W, b.H)))
	centerDist := math.Hypot(a.CenterX()-b.CenterX(), a.CenterY()-b.CenterY())
	if centerDist < minDim*0.2 {
		return true
	}
	return iou(a, b) >= 0.5
}

func iou(a, b Rect) float64 {
	x1 := maxInt(a.X, b.X)
	y1 := maxInt(a.Y, b.Y)
	x2 := minInt(a.X+a.W, b.X+b.W)
	y2 := minInt(a.Y+a.H, b.Y+b.H)
	if x2 <= x1 || y2 <= y1 {
		return 0
	}
	inter := float64((x2 - x1) * (y2 - y1))
	union := float64(a.Area()+b.Area()) - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

func averageRect(raw []Rect, idxs []int) Rect {
	var sx, sy, sw, sh int
	for _, idx := range idxs {
		r := raw[idx]
		sx += r.X
		sy += r.Y
		sw += r.W
		sh += r.H
	}
	n := len(idxs)
	return Rect{X: sx / n, Y: sy / n, W: sw / n, H: sh / n}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
