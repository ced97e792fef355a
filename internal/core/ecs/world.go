package ecs

// World owns the entity pool, the component registry and a deferred
// destruction queue. Entities marked during a tick stay readable until
// FlushDestroyQueue runs in the cleanup phase.
type World struct {
	pool         *EntityPool
	registry     *Registry
	destroyQueue []EntityID
	marked       map[EntityID]struct{}
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		destroyQueue: make([]EntityID, 0, 16),
		marked:       make(map[EntityID]struct{}, 16),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() EntityID { return w.pool.Create() }

func (w *World) Alive(id EntityID) bool { return w.pool.Alive(id) }

// Marked reports whether id is queued for destruction.
func (w *World) Marked(id EntityID) bool {
	_, ok := w.marked[id]
	return ok
}

// MarkForDestruction queues a live entity once; repeats and stale IDs are
// ignored.
func (w *World) MarkForDestruction(id EntityID) {
	if !w.pool.Alive(id) || w.Marked(id) {
		return
	}
	w.marked[id] = struct{}{}
	w.destroyQueue = append(w.destroyQueue, id)
}

// FlushDestroyQueue destroys queued entities and strips their components.
// Returns how many were destroyed.
func (w *World) FlushDestroyQueue() int {
	n := 0
	for _, id := range w.destroyQueue {
		w.registry.RemoveAll(id)
		if w.pool.Destroy(id) {
			n++
		}
		delete(w.marked, id)
	}
	w.destroyQueue = w.destroyQueue[:0]
	return n
}
