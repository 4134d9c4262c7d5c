package ledger

import "github.com/google/uuid"

// Entity is implemented by every ledger object. Identifiers are assigned at
// creation and never change for the lifetime of the entity.
type Entity interface {
	EntityID() uuid.UUID
}

// Collection is an insertion-ordered set of entities keyed by identifier.
// Adding an entity that is already present keeps its original position.
// The zero value is ready to use.
type Collection[T Entity] struct {
	order []uuid.UUID
	items map[uuid.UUID]T
}

func (c *Collection[T]) Add(item T) {
	id := item.EntityID()
	if c.items == nil {
		c.items = make(map[uuid.UUID]T)
	}
	if _, ok := c.items[id]; !ok {
		c.order = append(c.order, id)
	}
	c.items[id] = item
}

func (c *Collection[T]) Get(id uuid.UUID) (T, bool) {
	item, ok := c.items[id]
	return item, ok
}

func (c *Collection[T]) Remove(id uuid.UUID) {
	if _, ok := c.items[id]; !ok {
		return
	}
	delete(c.items, id)
	for i, other := range c.order {
		if other == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Collection[T]) Len() int {
	return len(c.items)
}

// All returns the entities in insertion order.
func (c *Collection[T]) All() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}
