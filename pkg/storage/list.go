package storage

type node[T any] struct {
	item T
	next *node[T]
}

// LinkedList is an unbounded FIFO backed by a singly-linked list.
type LinkedList[T any] struct {
	head *node[T]
	tail *node[T]
	n    int
}

// NewLinkedList creates an empty unbounded list.
func NewLinkedList[T any]() *LinkedList[T] {
	return &LinkedList[T]{}
}

// PushBack appends an item at the tail
func (l *LinkedList[T]) PushBack(item T) {
	nd := &node[T]{item: item}
	if l.tail == nil {
		l.head = nd
	} else {
		l.tail.next = nd
	}
	l.tail = nd
	l.n++
}

// PopFront removes and returns the head item. Panics when the list is
// empty.
func (l *LinkedList[T]) PopFront() T {
	if l.head == nil {
		panic("storage: pop on empty list")
	}
	nd := l.head
	l.head = nd.next
	if l.head == nil {
		l.tail = nil
	}
	l.n--
	return nd.item
}

// Len returns the current number of items
func (l *LinkedList[T]) Len() int {
	return l.n
}

// Cap reports Unbounded; the list has no capacity limit
func (l *LinkedList[T]) Cap() int {
	return Unbounded
}
