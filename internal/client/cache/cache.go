// Package cache implements the client-side entity cache: a normalized,
// subscription-based store of fetched collections, keyed by entity id.
// One Cache instance serves one entity type; collections share the
// normalized entity map, so an entity fetched through any collection is
// available to every reader.
package cache

import "sync"

// Entity is anything storable in a Cache: it must expose its server-assigned
// id.
type Entity interface {
	EntityID() string
}

type collectionState struct {
	ids   []string
	fresh bool
}

type subscription struct {
	tag Tag
	fn  func()
}

// Cache is safe for concurrent use. Snapshots handed out are copies, so
// subscribers never observe torn state.
type Cache[T Entity] struct {
	mu          sync.RWMutex
	entities    map[string]T
	fresh       map[string]bool
	collections map[Collection]*collectionState
	subs        map[int]subscription
	nextSub     int
}

func New[T Entity]() *Cache[T] {
	return &Cache[T]{
		entities:    make(map[string]T),
		fresh:       make(map[string]bool),
		collections: make(map[Collection]*collectionState),
		subs:        make(map[int]subscription),
	}
}

// SetCollection stores the result of a collection fetch: the ordered id list
// plus every entity normalized into the shared map. The collection and all
// contained entities become fresh. Subscribers of the collection's LIST tag
// and of each contained entity are notified.
func (c *Cache[T]) SetCollection(col Collection, items []T) {
	c.mu.Lock()
	ids := make([]string, 0, len(items))
	tags := []Tag{ListTag(col)}
	for _, item := range items {
		id := item.EntityID()
		ids = append(ids, id)
		c.entities[id] = item
		c.fresh[id] = true
		tags = append(tags, EntityTag(id))
	}
	c.collections[col] = &collectionState{ids: ids, fresh: true}
	fns := c.pendingNotifications(tags)
	c.mu.Unlock()

	notify(fns)
}

// Collection returns a copy of the cached collection when it is fresh.
// A stale or missing collection yields ok=false, telling the caller a fetch
// is required.
func (c *Cache[T]) Collection(col Collection) ([]T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	state, ok := c.collections[col]
	if !ok || !state.fresh {
		return nil, false
	}
	items := make([]T, 0, len(state.ids))
	for _, id := range state.ids {
		if item, ok := c.entities[id]; ok {
			items = append(items, item)
		}
	}
	return items, true
}

// Get returns the entity by id from the normalized map, regardless of which
// collection fetch populated it and regardless of freshness.
func (c *Cache[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.entities[id]
	return item, ok
}

// GetFresh is Get restricted to entities that have not been invalidated.
func (c *Cache[T]) GetFresh(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.fresh[id] {
		var zero T
		return zero, false
	}
	item, ok := c.entities[id]
	return item, ok
}

// SetOne stores a single fetched entity and marks it fresh.
func (c *Cache[T]) SetOne(item T) {
	id := item.EntityID()

	c.mu.Lock()
	c.entities[id] = item
	c.fresh[id] = true
	tags := append(c.collectionTagsContaining(id), EntityTag(id))
	fns := c.pendingNotifications(tags)
	c.mu.Unlock()

	notify(fns)
}

// Invalidate marks the data behind each tag as stale and notifies the
// affected subscribers. A LIST tag marks its collection stale; an entity tag
// marks the entity stale together with every collection containing it, so a
// subsequent read through any of those paths re-fetches.
func (c *Cache[T]) Invalidate(tags ...Tag) {
	c.mu.Lock()
	affected := make([]Tag, 0, len(tags))
	for _, tag := range tags {
		if tag.ID != "" {
			c.fresh[tag.ID] = false
			for col, state := range c.collections {
				if state.fresh && containsID(state.ids, tag.ID) {
					state.fresh = false
					affected = append(affected, ListTag(col))
				}
			}
			affected = append(affected, tag)
			continue
		}
		if state, ok := c.collections[tag.Collection]; ok {
			state.fresh = false
		}
		affected = append(affected, tag)
	}
	fns := c.pendingNotifications(affected)
	c.mu.Unlock()

	notify(fns)
}

// Remove drops the entity from the normalized map and from every collection
// id list. Used after a confirmed delete so reads cannot serve the dead
// entity while lists re-fetch.
func (c *Cache[T]) Remove(id string) {
	c.mu.Lock()
	delete(c.entities, id)
	delete(c.fresh, id)
	tags := []Tag{EntityTag(id)}
	for col, state := range c.collections {
		if containsID(state.ids, id) {
			state.ids = removeID(state.ids, id)
			tags = append(tags, ListTag(col))
		}
	}
	fns := c.pendingNotifications(tags)
	c.mu.Unlock()

	notify(fns)
}

// Update applies a speculative patch to the cached entity and returns an
// undo that restores the exact prior value. This is the primitive behind
// optimistic mutations: apply, fire the network call, then either let the
// patch stand or call undo. ok=false means the entity is not cached and no
// patch was applied.
func (c *Cache[T]) Update(id string, mutate func(*T)) (undo func(), ok bool) {
	c.mu.Lock()
	prev, exists := c.entities[id]
	if !exists {
		c.mu.Unlock()
		return nil, false
	}

	next := prev
	mutate(&next)
	c.entities[id] = next

	tags := append(c.collectionTagsContaining(id), EntityTag(id))
	fns := c.pendingNotifications(tags)
	c.mu.Unlock()

	notify(fns)

	var once sync.Once
	undo = func() {
		once.Do(func() {
			c.mu.Lock()
			c.entities[id] = prev
			fns := c.pendingNotifications(append(c.collectionTagsContaining(id), EntityTag(id)))
			c.mu.Unlock()
			notify(fns)
		})
	}
	return undo, true
}

// Subscribe registers fn to run whenever data behind tag changes or is
// invalidated. The returned function unsubscribes. Callbacks run outside the
// cache lock and must be fast; coalescing is the subscriber's concern.
func (c *Cache[T]) Subscribe(tag Tag, fn func()) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = subscription{tag: tag, fn: fn}
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// pendingNotifications collects, under the lock, the callbacks subscribed to
// any of the given tags. Callers invoke them after unlocking.
func (c *Cache[T]) pendingNotifications(tags []Tag) []func() {
	if len(c.subs) == 0 {
		return nil
	}
	seen := make(map[Tag]struct{}, len(tags))
	for _, t := range tags {
		seen[t] = struct{}{}
	}
	var fns []func()
	for _, sub := range c.subs {
		if _, ok := seen[sub.tag]; ok {
			fns = append(fns, sub.fn)
		}
	}
	return fns
}

func (c *Cache[T]) collectionTagsContaining(id string) []Tag {
	var tags []Tag
	for col, state := range c.collections {
		if containsID(state.ids, id) {
			tags = append(tags, ListTag(col))
		}
	}
	return tags
}

func notify(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
