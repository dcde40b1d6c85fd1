package fiber

import "fmt"

type commitStats struct {
	placements, updates, deletions int
}

// commitRoot applies the finished pass to the target and promotes it. It
// never yields.
func (r *Reconciler) commitRoot() error {
	r.phase = PhaseCommitting
	root := r.wipRoot
	var stats commitStats

	for _, f := range r.deletions {
		if err := r.commitDeletion(f); err != nil {
			return fmt.Errorf("commit deletion of %s: %w", f, err)
		}
		stats.deletions++
	}
	r.deletions = nil

	if err := r.commitWork(root, &stats); err != nil {
		return err
	}

	if root.alternate != nil {
		root.alternate.alternate = nil
	}
	r.currentRoot = root
	r.generation = root.generation
	r.wipRoot = nil
	r.nextUnitOfWork = nil
	r.phase = PhaseIdle

	r.logf(
		"pass %d committed: %d placements, %d updates, %d deletions",
		root.generation, stats.placements, stats.updates, stats.deletions,
	)
	if r.onCommit != nil {
		r.onCommit(r, root)
	}
	return nil
}

// commitWork walks the new tree depth first over the fiber links. Handles are
// created and updated on the way down, placed handles are appended on the way
// up so a new subtree is attached to the visible tree only once.
func (r *Reconciler) commitWork(root *Fiber, stats *commitStats) error {
	f := root.child
	for f != nil {
		if err := r.commitEnter(f, stats); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		if f.child != nil {
			f = f.child
			continue
		}

		for f != nil {
			if err := r.commitLeave(f); err != nil {
				return fmt.Errorf("commit %s: %w", f, err)
			}
			if f.sibling != nil {
				f = f.sibling
				break
			}
			f = f.parent
			if f == root {
				f = nil
			}
		}
	}
	return nil
}

func (r *Reconciler) commitEnter(f *Fiber, stats *commitStats) error {
	if f.alternate != nil {
		f.alternate.alternate = nil
	}

	switch f.effect {
	case EffectDeletion:
		panic(fmt.Sprintf("%v: %s", ErrDeletionInLiveTree, f))

	case EffectPlacement:
		stats.placements++
		if f.kind != KindHost || f.handle != nil {
			return nil
		}
		h, err := r.createHandle(f)
		if err != nil {
			return err
		}
		f.handle = h
		return updateProps(r.target, h, nil, f.props)

	case EffectUpdate:
		stats.updates++
		if f.kind != KindHost || f.handle == nil {
			return nil
		}
		return updateProps(r.target, f.handle, f.alternate.props, f.props)
	}
	return nil
}

func (r *Reconciler) commitLeave(f *Fiber) error {
	if f.effect != EffectPlacement || f.handle == nil {
		return nil
	}
	parent := hostParent(f)
	if parent == nil {
		return nil
	}
	return r.target.AppendChild(parent.handle, f.handle)
}

func (r *Reconciler) createHandle(f *Fiber) (Handle, error) {
	if f.tag == TextElement {
		return r.target.CreateText()
	}
	return r.target.CreateElement(f.tag)
}

// commitDeletion removes the host nodes of a dropped subtree. Fibers without
// a handle pass the deletion on to their child.
func (r *Reconciler) commitDeletion(f *Fiber) error {
	parent := hostParent(f)

	n := f
	for n != nil && n.handle == nil {
		n = n.child
	}
	if n == nil || parent == nil {
		return nil
	}
	return r.target.RemoveChild(parent.handle, n.handle)
}

// hostParent skips ancestors that own no handle, such as function components.
func hostParent(f *Fiber) *Fiber {
	p := f.parent
	for p != nil && p.handle == nil {
		p = p.parent
	}
	return p
}
