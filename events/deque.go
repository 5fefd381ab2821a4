// Copyright 2018 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"sync"
	"sync/atomic"
)

// Queue is a lock-free FIFO event queue, safe for any number of
// concurrent senders and receivers. The zero value is ready to use.
// Nodes are never reused, so a node address cannot come back while a
// receiver still holds it. It is based on the Michael-Scott queue as used in
// https://github.com/fyne-io/fyne/blob/master/internal/async/queue_canvasobject.go
type Queue struct {
	once sync.Once
	head atomic.Pointer[node]
	tail atomic.Pointer[node]
	len  atomic.Int64
}

type node struct {
	next atomic.Pointer[node]
	ev   Event
}

// init installs the sentinel node on first use.
func (q *Queue) init() {
	q.once.Do(func() {
		sentinel := &node{}
		q.head.Store(sentinel)
		q.tail.Store(sentinel)
	})
}

// Send adds an event to the end of the queue.
func (q *Queue) Send(ev Event) {
	q.init()
	n := &node{ev: ev}
	for {
		tail := q.tail.Load()
		next := tail.next.Load()
		if tail != q.tail.Load() {
			continue
		}
		if next != nil { // tail is lagging: help it along
			q.tail.CompareAndSwap(tail, next)
			continue
		}
		if tail.next.CompareAndSwap(nil, n) {
			q.tail.CompareAndSwap(tail, n)
			q.len.Add(1)
			return
		}
	}
}

// NextEvent removes and returns the next event in the queue.
// It returns nil if the queue is empty.
func (q *Queue) NextEvent() Event {
	q.init()
	for {
		head := q.head.Load()
		tail := q.tail.Load()
		next := head.next.Load()
		if head != q.head.Load() {
			continue
		}
		if next == nil {
			return nil
		}
		if head == tail {
			q.tail.CompareAndSwap(tail, next)
			continue
		}
		// next becomes the sentinel. Its event is not cleared, since a
		// receiver that lost the race may still be reading it.
		ev := next.ev
		if q.head.CompareAndSwap(head, next) {
			q.len.Add(-1)
			return ev
		}
	}
}

// Drain removes all queued events, returning them in order.
func (q *Queue) Drain() []Event {
	var evs []Event
	for ev := q.NextEvent(); ev != nil; ev = q.NextEvent() {
		evs = append(evs, ev)
	}
	return evs
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	return int(q.len.Load())
}
