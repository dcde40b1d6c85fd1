package fiber

// reconcileChildren diffs the alternate's child chain against elements by
// position and rebuilds parent's child chain. Old fibers without a new
// counterpart are tagged and queued on r.deletions; they never join the new
// tree.
func (r *Reconciler) reconcileChildren(parent *Fiber, elements []*Element) error {
	var oldFiber *Fiber
	if parent.alternate != nil {
		oldFiber = parent.alternate.child
	}

	parent.child = nil
	var prevSibling *Fiber

	for index := 0; index < len(elements) || oldFiber != nil; index++ {
		var element *Element
		if index < len(elements) {
			element = elements[index]
		}

		var newFiber *Fiber
		switch {
		case oldFiber != nil && element != nil && oldFiber.sameType(element):
			newFiber = &Fiber{
				kind:       oldFiber.kind,
				tag:        oldFiber.tag,
				component:  element.componentOr(oldFiber.component),
				typeID:     oldFiber.typeID,
				props:      element.Props,
				handle:     oldFiber.handle,
				parent:     parent,
				alternate:  oldFiber,
				effect:     EffectUpdate,
				generation: parent.generation,
			}
		case element != nil:
			f, err := createFiber(element, parent)
			if err != nil {
				return err
			}
			f.effect = EffectPlacement
			newFiber = f
		}

		// An old fiber is dropped when nothing replaces it or when a
		// different type takes its position.
		if oldFiber != nil && (newFiber == nil || newFiber.alternate == nil) {
			oldFiber.effect = EffectDeletion
			r.deletions = append(r.deletions, oldFiber)
		}

		if oldFiber != nil {
			oldFiber = oldFiber.sibling
		}

		if newFiber == nil {
			continue
		}
		if prevSibling == nil {
			parent.child = newFiber
		} else {
			prevSibling.sibling = newFiber
		}
		prevSibling = newFiber
	}

	return nil
}

// componentOr keeps the freshest closure for function components that share
// code with the previous render.
func (el *Element) componentOr(fallback Component) Component {
	_, _, c, _, err := classify(el.Type)
	if err != nil || c == nil {
		return fallback
	}
	return c
}
