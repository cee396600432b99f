/*
 * coordinator.go, part of atomstruct.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package destruct batches the destruction of structure entities so that the
//caches depending on them are told about each logical deletion once, with the
//full set of destroyed objects.
package destruct

import "log/slog"

// Observer is notified once per completed batch with every object destroyed in it.
type Observer interface {
	DestructorsDone(destroyed map[any]struct{})
}

// Coordinator tracks registered observers and the current batch. It is not
// safe for concurrent use.
type Coordinator struct {
	observers []Observer
	leaving   []Observer //removed during the open batch
	depth     int
	destroyed map[any]struct{}
	logger    *slog.Logger
	hook      func(destroyed int)
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger used for batch tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// WithBatchHook registers a function called after each flushed batch with
// the number of destroyed objects.
func WithBatchHook(f func(destroyed int)) Option {
	return func(c *Coordinator) { c.hook = f }
}

// New returns a Coordinator with no observers.
func New(opts ...Option) *Coordinator {
	c := &Coordinator{logger: slog.Default()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// AddObserver registers o. Registering the same observer twice has no effect.
func (c *Coordinator) AddObserver(o Observer) {
	for i, v := range c.leaving {
		if v == o {
			c.leaving = append(c.leaving[:i], c.leaving[i+1:]...)
			break
		}
	}
	for _, v := range c.observers {
		if v == o {
			return
		}
	}
	c.observers = append(c.observers, o)
}

// RemoveObserver unregisters o, if present. Inside a batch, o is still
// notified of that batch and removed afterwards.
func (c *Coordinator) RemoveObserver(o Observer) {
	if c.depth > 0 {
		c.leaving = append(c.leaving, o)
		return
	}
	c.removeObserver(o)
}

func (c *Coordinator) removeObserver(o Observer) {
	for i, v := range c.observers {
		if v == o {
			c.observers = append(c.observers[:i], c.observers[i+1:]...)
			return
		}
	}
}

// NumObservers returns the number of registered observers.
func (c *Coordinator) NumObservers() int {
	return len(c.observers)
}

// Depth returns the current batch nesting depth.
func (c *Coordinator) Depth() int {
	return c.depth
}

// InBatch reports whether a batch is open.
func (c *Coordinator) InBatch() bool {
	return c.depth > 0
}

// Batch is an open destruction batch. Batches nest: only the End of the
// outermost one notifies observers.
type Batch struct {
	c     *Coordinator
	ended bool
}

// Begin opens a batch. Every Begin must be paired with an End, usually deferred.
func (c *Coordinator) Begin() *Batch {
	if c.depth == 0 {
		c.destroyed = make(map[any]struct{})
	}
	c.depth++
	return &Batch{c: c}
}

// End closes the batch. Calling End more than once is a no-op.
func (b *Batch) End() {
	if b == nil || b.ended {
		return
	}
	b.ended = true
	c := b.c
	c.depth--
	if c.depth > 0 {
		return
	}
	c.flush()
	leaving := c.leaving
	c.leaving = nil
	for _, o := range leaving {
		c.removeObserver(o)
	}
}

// Destroying records obj as destroyed in the current batch. Outside a batch,
// obj is flushed as a batch of its own.
func (c *Coordinator) Destroying(obj any) {
	if c.depth == 0 {
		b := c.Begin()
		defer b.End()
	}
	c.destroyed[obj] = struct{}{}
}

// IsDestroyed reports whether obj was destroyed in the currently open batch.
func (c *Coordinator) IsDestroyed(obj any) bool {
	if c.depth == 0 {
		return false
	}
	_, ok := c.destroyed[obj]
	return ok
}

func (c *Coordinator) flush() {
	destroyed := c.destroyed
	c.destroyed = nil
	if len(destroyed) == 0 {
		return
	}
	c.logger.Debug("destruction batch done", "destroyed", len(destroyed), "observers", len(c.observers))
	// observers may unregister themselves while being notified
	obs := make([]Observer, len(c.observers))
	copy(obs, c.observers)
	for _, o := range obs {
		o.DestructorsDone(destroyed)
	}
	if c.hook != nil {
		c.hook(len(destroyed))
	}
}
