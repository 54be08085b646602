package book

// Cancel removes the named resting order, if present. It returns whether a
// removal occurred; an unknown id is not an error. A stale index entry
// (pointing at a level that no longer exists) self-heals by being dropped.
func (b *Book) Cancel(id string) bool {
	entry, ok := b.index[id]
	if !ok {
		return false
	}

	levels := b.sideTree(entry.side)
	lvl, ok := levels.GetMut(&Level{Price: entry.price})
	if !ok {
		b.warnStaleIndex(id)
		delete(b.index, id)
		return false
	}

	idx := -1
	for i, o := range lvl.Orders {
		if o.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		b.warnStaleIndex(id)
		delete(b.index, id)
		return false
	}

	lvl.removeAt(idx)
	if len(lvl.Orders) == 0 {
		levels.Delete(lvl)
	}
	delete(b.index, id)
	return true
}
