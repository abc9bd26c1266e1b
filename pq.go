package wikisearch

type priorityQueueItem[NodeType comparable] struct {
	FrontierEntry[NodeType]
	IndexInQueue int
}

// priorityQueue is a container/heap min-heap on FCost. Ties are handed to the
// expansion strategy; the queue itself has no opinion on them.
type priorityQueue[NodeType comparable] struct {
	items    []*priorityQueueItem[NodeType]
	strategy ExpansionStrategy[NodeType]
}

func (queue *priorityQueue[NodeType]) Len() int { return len(queue.items) }

func (queue *priorityQueue[NodeType]) Less(i, j int) bool {
	a, b := queue.items[i], queue.items[j]
	if a.FCost != b.FCost {
		return a.FCost < b.FCost
	}
	return queue.strategy.Less(a.FrontierEntry, b.FrontierEntry)
}

func (queue *priorityQueue[NodeType]) Swap(i, j int) {
	queue.items[i], queue.items[j] = queue.items[j], queue.items[i]
	queue.items[i].IndexInQueue = i
	queue.items[j].IndexInQueue = j
}

func (queue *priorityQueue[NodeType]) Push(x any) {
	item := x.(*priorityQueueItem[NodeType])
	item.IndexInQueue = len(queue.items)
	queue.items = append(queue.items, item)
}

func (queue *priorityQueue[NodeType]) Pop() any {
	oldItems := queue.items
	n := len(oldItems)
	item := oldItems[n-1]
	oldItems[n-1] = nil
	queue.items = oldItems[:n-1]
	item.IndexInQueue = -1
	return item
}
