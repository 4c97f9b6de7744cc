package cache

// entry is one cached key/value pair threaded on the recency ring.
type entry[K comparable, V any] struct {
	key        K
	value      V
	prev, next *entry[K, V]
}

// lruList is a circular doubly-linked list with a sentinel root.
// root.next is the most recently used entry and root.prev the least.
// It is not safe for concurrent use.
type lruList[K comparable, V any] struct {
	root entry[K, V]
	len  int
}

func newLRUList[K comparable, V any]() *lruList[K, V] {
	l := &lruList[K, V]{}
	l.root.prev = &l.root
	l.root.next = &l.root
	return l
}

// PushFront inserts a new most recently used entry.
func (l *lruList[K, V]) PushFront(key K, value V) *entry[K, V] {
	e := &entry[K, V]{key: key, value: value}
	l.insertAfterRoot(e)
	l.len++
	return e
}

// MoveToFront marks e as most recently used.
func (l *lruList[K, V]) MoveToFront(e *entry[K, V]) {
	if e == nil || l.root.next == e {
		return
	}
	l.detach(e)
	l.insertAfterRoot(e)
}

// Remove takes e off the list.
func (l *lruList[K, V]) Remove(e *entry[K, V]) {
	if e == nil || e.next == nil {
		return
	}
	l.detach(e)
	e.prev, e.next = nil, nil
	l.len--
}

// RemoveOldest removes the least recently used entry and returns its key.
func (l *lruList[K, V]) RemoveOldest() (K, bool) {
	if l.len == 0 {
		var zero K
		return zero, false
	}
	e := l.root.prev
	l.Remove(e)
	return e.key, true
}

// Clear empties the list.
func (l *lruList[K, V]) Clear() {
	l.root.prev = &l.root
	l.root.next = &l.root
	l.len = 0
}

func (l *lruList[K, V]) insertAfterRoot(e *entry[K, V]) {
	e.prev = &l.root
	e.next = l.root.next
	l.root.next.prev = e
	l.root.next = e
}

func (l *lruList[K, V]) detach(e *entry[K, V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
}
