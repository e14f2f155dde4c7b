package paramrange

// InvalidPredicate cheaply rejects a full assignment before the (expensive)
// cost function is invoked. Skipped tuples do not count as evaluated
// samples.
type InvalidPredicate func(Assignment) bool

// Enumerator produces the ordered sequence of full tuning assignments the
// search loop evaluates. The default implementation below is the row-major
// Cartesian product over the schema's joint parameters, in declaration
// order; an algorithm may substitute its own by implementing this interface
// directly (e.g. to walk only even values, or enforce n = k*block).
type Enumerator interface {
	// Enumerate calls yield once per full joint assignment, in the
	// enumerator's chosen order. It stops early if yield returns false.
	Enumerate(schema *Schema, base Assignment, yield func(Assignment) bool)
}

// CartesianEnumerator is the default Enumerator: it walks every joint
// parameter's [min,max] box in row-major order, with the last-declared joint
// parameter varying fastest — the same convention as an odometer.
type CartesianEnumerator struct{}

// Enumerate implements Enumerator.
func (CartesianEnumerator) Enumerate(schema *Schema, base Assignment, yield func(Assignment) bool) {
	joints := schema.Joints()
	// Parameters the caller has frozen (independents already resolved, or a
	// joint the user pinned with SetValue) are not walked; they contribute a
	// single fixed value to every emitted assignment.
	var toWalk []*Parameter
	for _, name := range joints {
		p := schema.mustGet(name)
		if p.Fixed {
			continue
		}
		toWalk = append(toWalk, p)
	}

	current := make(Assignment, len(base)+len(joints))
	for k, v := range base {
		current[k] = v
	}
	for _, name := range joints {
		p := schema.mustGet(name)
		if p.Fixed {
			current[name] = p.Min
		}
	}

	if len(toWalk) == 0 {
		yield(cloneAssignment(current))
		return
	}

	values := make([]int, len(toWalk))
	for i, p := range toWalk {
		values[i] = p.Min
	}

	for {
		for i, p := range toWalk {
			current[p.Name] = values[i]
		}
		if !yield(cloneAssignment(current)) {
			return
		}

		// Odometer increment: rightmost (last-declared) parameter fastest.
		idx := len(toWalk) - 1
		for idx >= 0 {
			values[idx]++
			if values[idx] <= toWalk[idx].Max {
				break
			}
			values[idx] = toWalk[idx].Min
			idx--
		}
		if idx < 0 {
			return
		}
	}
}

func cloneAssignment(a Assignment) Assignment {
	out := make(Assignment, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
