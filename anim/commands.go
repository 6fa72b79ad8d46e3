package anim

import (
	"errors"
	"fmt"
)

// Commands buffers timeline changes so that a producer can prepare a whole batch and
// apply it to a Store under a single lock acquisition.
type Commands struct {
	ops    []command
	defers []func()
}

type commandKind uint8

const (
	cmdInstall commandKind = iota
	cmdRemove
	cmdClear
)

type command struct {
	kind   commandKind
	id     EntityId
	groups []PropertyAnimationGroup
	ctx    *TransformContext
}

func NewCommands() *Commands {
	return &Commands{}
}

// Install queues a timeline replacement. An empty groups slice queues a removal.
func (c *Commands) Install(id EntityId, groups []PropertyAnimationGroup, ctx *TransformContext) {
	if len(groups) == 0 {
		c.Remove(id)
		return
	}
	c.ops = append(c.ops, command{kind: cmdInstall, id: id, groups: groups, ctx: ctx})
}

// Remove queues a timeline removal.
func (c *Commands) Remove(id EntityId) {
	c.ops = append(c.ops, command{kind: cmdRemove, id: id})
}

// Clear queues removal of every timeline. Operations queued before it are discarded
// when the batch is applied.
func (c *Commands) Clear() {
	c.ops = append(c.ops, command{kind: cmdClear})
}

// Defer queues a function to run after the batch has been applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued operations.
func (c *Commands) Len() int { return len(c.ops) }

func (c *Commands) reset() {
	clear(c.ops)
	clear(c.defers)
	c.ops = c.ops[:0]
	c.defers = c.defers[:0]
}

// Apply applies a command batch in queue order. Every install is validated first;
// if any is invalid nothing is applied, the buffer is kept and the joined errors
// are returned. On success the buffer is reset.
func (s *Store) Apply(c *Commands) error {
	var errs []error
	for i, op := range c.ops {
		if op.kind != cmdInstall {
			continue
		}
		if err := validateGroups(op.groups, op.ctx); err != nil {
			errs = append(errs, fmt.Errorf("command %d (entity %d): %w", i, op.id, err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	s.mu.Lock()
	for _, op := range c.ops {
		switch op.kind {
		case cmdInstall:
			s.installLocked(op.id, op.groups, op.ctx)
		case cmdRemove:
			s.removeLocked(op.id)
		case cmdClear:
			s.clearLocked()
		}
	}
	s.mu.Unlock()

	for _, fn := range c.defers {
		fn()
	}
	c.reset()
	return nil
}
