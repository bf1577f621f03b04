package astar

import (
	"container/heap"
)

// searchNode is an arena record. parent indexes into the same arena, -1 for
// the start node.
type searchNode struct {
	pos    Position
	g      float64
	h      float64
	parent int
}

func (n *searchNode) f() float64 { return n.g + n.h }

type frontierItem struct {
	node         int
	fCost        float64
	seq          uint64
	indexInQueue int
}

// priorityQueue orders by f, then by discovery sequence.
type priorityQueue []*frontierItem

func (queue priorityQueue) Len() int { return len(queue) }
func (queue priorityQueue) Less(i, j int) bool {
	if queue[i].fCost != queue[j].fCost {
		return queue[i].fCost < queue[j].fCost
	}
	return queue[i].seq < queue[j].seq
}
func (queue priorityQueue) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].indexInQueue = i
	queue[j].indexInQueue = j
}

func (queue *priorityQueue) Push(x any) {
	item := x.(*frontierItem)
	item.indexInQueue = len(*queue)
	*queue = append(*queue, item)
}

func (queue *priorityQueue) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	oldQueue[n-1] = nil
	item.indexInQueue = -1
	*queue = oldQueue[:n-1]
	return item
}

// frontier is the open set: a heap plus a node -> item lookup so relaxation
// can fix an entry in place.
type frontier struct {
	queue   priorityQueue
	items   map[int]*frontierItem
	nextSeq uint64
}

func newFrontier() *frontier {
	return &frontier{items: make(map[int]*frontierItem)}
}

func (fr *frontier) Len() int { return fr.queue.Len() }

func (fr *frontier) push(node int, fCost float64) {
	item := &frontierItem{node: node, fCost: fCost, seq: fr.nextSeq}
	fr.nextSeq++
	heap.Push(&fr.queue, item)
	fr.items[node] = item
}

func (fr *frontier) popMin() int {
	item := heap.Pop(&fr.queue).(*frontierItem)
	delete(fr.items, item.node)
	return item.node
}

// update lowers the priority of a node already in the frontier. The node
// keeps its discovery sequence.
func (fr *frontier) update(node int, fCost float64) bool {
	item, ok := fr.items[node]
	if !ok {
		return false
	}
	item.fCost = fCost
	heap.Fix(&fr.queue, item.indexInQueue)
	return true
}
