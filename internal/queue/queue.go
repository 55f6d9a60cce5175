package queue

import (
	"errors"

	"github.com/ProjectZuki/arduino-led-trigger/internal/color"
)

// Capacity is the number of colors each queue holds.
const Capacity = 5

var ErrEmpty = errors.New("queue: empty")

// ColorQueue is a bounded FIFO of colors. Pushing onto a full queue evicts
// the oldest entry.
type ColorQueue struct {
	items [Capacity]color.Triple
	head  int
	count int
}

func New() *ColorQueue {
	return &ColorQueue{}
}

func (q *ColorQueue) Push(c color.Triple) {
	if q.count == Capacity {
		q.head = (q.head + 1) % Capacity
		q.count--
	}
	q.items[(q.head+q.count)%Capacity] = c
	q.count++
}

// Pop removes and returns the oldest color, or ErrEmpty.
func (q *ColorQueue) Pop() (color.Triple, error) {
	if q.count == 0 {
		return color.Black, ErrEmpty
	}
	c := q.items[q.head]
	q.head = (q.head + 1) % Capacity
	q.count--
	return c, nil
}

// PeekAt returns the i-th oldest color without removing it.
func (q *ColorQueue) PeekAt(i int) (color.Triple, bool) {
	if i < 0 || i >= q.count {
		return color.Black, false
	}
	return q.items[(q.head+i)%Capacity], true
}

func (q *ColorQueue) Len() int {
	return q.count
}

// Colors returns the contents oldest first.
func (q *ColorQueue) Colors() []color.Triple {
	out := make([]color.Triple, 0, q.count)
	for i := 0; i < q.count; i++ {
		c, _ := q.PeekAt(i)
		out = append(out, c)
	}
	return out
}
