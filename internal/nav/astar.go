package nav

import (
	"container/heap"
)

// FindPath runs A* over the waypoint graph from startID to goalID and
// returns the waypoint ID sequence plus its total edge length. Edge costs
// and the heuristic are both Euclidean distances between waypoint positions,
// so the heuristic is admissible and consistent and the result is optimal.
//
// Frontier ties on f-cost break toward the lower waypoint ID. Combined with
// the dense scan-order IDs this makes the chosen path identical across runs
// and platforms, which the export contract depends on.
func FindPath(waypoints []Waypoint, startID, goalID int) ([]int, float64, bool) {
	if startID < 0 || startID >= len(waypoints) || goalID < 0 || goalID >= len(waypoints) {
		return nil, 0, false
	}
	if startID == goalID {
		return []int{startID}, 0, true
	}

	goal := waypoints[goalID].Position

	start := &pathNode{id: startID}
	start.hCost = waypoints[startID].Position.Sub(goal).Len()
	start.fCost = start.hCost

	open := &nodeHeap{}
	heap.Init(open)
	heap.Push(open, start)

	openByID := map[int]*pathNode{startID: start}
	closed := make(map[int]struct{}, len(waypoints))

	for open.Len() > 0 {
		current := heap.Pop(open).(*pathNode)
		delete(openByID, current.id)

		if current.id == goalID {
			return reconstruct(current), current.gCost, true
		}
		closed[current.id] = struct{}{}

		for _, nid := range waypoints[current.id].Neighbors {
			if _, done := closed[nid]; done {
				continue
			}
			edge := waypoints[current.id].Position.Sub(waypoints[nid].Position).Len()
			gCost := current.gCost + edge

			if existing, seen := openByID[nid]; seen {
				if gCost < existing.gCost {
					existing.gCost = gCost
					existing.fCost = gCost + existing.hCost
					existing.parent = current
					heap.Fix(open, existing.index)
				}
				continue
			}

			node := &pathNode{
				id:     nid,
				parent: current,
				gCost:  gCost,
				hCost:  waypoints[nid].Position.Sub(goal).Len(),
			}
			node.fCost = node.gCost + node.hCost
			heap.Push(open, node)
			openByID[nid] = node
		}
	}

	return nil, 0, false
}

// reconstruct walks parent links back to the start and reverses the result.
func reconstruct(goal *pathNode) []int {
	path := make([]int, 0, 16)
	for n := goal; n != nil; n = n.parent {
		path = append(path, n.id)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// pathNode is a node in the A* search frontier.
type pathNode struct {
	id     int
	parent *pathNode
	gCost  float64 // actual cost from start
	hCost  float64 // heuristic cost to goal
	fCost  float64 // gCost + hCost
	index  int     // heap index
}

// nodeHeap implements container/heap for the A* open list: min by fCost,
// ties broken by lower waypoint ID.
type nodeHeap []*pathNode

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].fCost != h[j].fCost {
		return h[i].fCost < h[j].fCost
	}
	return h[i].id < h[j].id
}
func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *nodeHeap) Push(x any)   { n := x.(*pathNode); n.index = len(*h); *h = append(*h, n) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil // GC
	node.index = -1
	*h = old[:n-1]
	return node
}
