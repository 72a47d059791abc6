package address

import "fmt"

// EvalSide evaluates a single Side against the current range cur, per spec
// §4.3's "Evaluate" rules.
func EvalSide(s Side, cur Range, ctx Context) (Range, error) {
	switch s.Kind {
	case SideByte:
		return Range{s.Byte, s.Byte}, nil

	case SideChar:
		switch s.Ch {
		case '.':
			return cur, nil
		case '$':
			n := ctx.Size()
			return Range{n, n}, nil
		case '%':
			return Range{0, ctx.Size()}, nil
		}
		return Range{}, fmt.Errorf("unknown address character %q", string(s.Ch))

	case SideLine:
		if s.Line == 0 {
			return Range{0, 0}, nil
		}
		return Range{ctx.LineStart(s.Line), ctx.LineStart(s.Line + 1)}, nil

	case SideMark:
		// Selection ordinal is supplied by the caller folded into ctx
		// (executor's addrContext binds one Context per selection), so
		// Mark here only needs the ordinal it was constructed with.
		r, ok := ctx.Mark(s.Mark, 0)
		if !ok {
			return Range{}, nil
		}
		return r, nil

	case SideRegexFwd:
		r, ok := ctx.SearchForward(s.Regex, cur.End)
		if !ok {
			return Range{}, fmt.Errorf("no match for regular expression")
		}
		return r, nil

	case SideRegexBack:
		r, ok := ctx.SearchBackward(s.Regex, cur.Start)
		if !ok {
			return Range{}, fmt.Errorf("no match for regular expression")
		}
		return r, nil
	}

	return cur, nil
}

// Evaluate evaluates the whole address against the current range cur, per
// spec §4.3's combiner semantics.
//
// A bare single side typed with no combiner character (e.g. "/beta/" or
// "5", with no following ',' ';' '+' '-') is just that side's range: the
// "; is assumed" default in spec §4.3 only governs what combiner to run
// once the grammar has actually produced two sides (whether by an explicit
// combiner character, or — structurally — by a right side immediately
// following a left side with no separating combiner token). Without that
// distinction, a bare regex address like scenario 3 in spec §8 would
// silently extend all the way to EOF instead of naming just the match.
func (a Address) Evaluate(cur Range, ctx Context) (Range, error) {
	if a.Delim == 0 {
		switch {
		case a.HasLeft && a.HasRight:
			return a.evalWithDelim(';', cur, ctx)
		case a.HasLeft:
			return EvalSide(a.Left, cur, ctx)
		case a.HasRight:
			return EvalSide(a.Right, cur, ctx)
		default:
			return cur, nil
		}
	}
	return a.evalWithDelim(a.Delim, cur, ctx)
}

func (a Address) evalWithDelim(delim byte, cur Range, ctx Context) (Range, error) {
	switch delim {
	case ',':
		left := Range{0, 0}
		if a.HasLeft {
			var err error
			left, err = EvalSide(a.Left, cur, ctx)
			if err != nil {
				return Range{}, err
			}
		}
		right := Range{ctx.Size(), ctx.Size()}
		if a.HasRight {
			var err error
			right, err = EvalSide(a.Right, cur, ctx)
			if err != nil {
				return Range{}, err
			}
		}
		return Range{left.Start, right.End}, nil

	case ';':
		left := Range{0, 0}
		if a.HasLeft {
			var err error
			left, err = EvalSide(a.Left, cur, ctx)
			if err != nil {
				return Range{}, err
			}
		}
		right := Range{ctx.Size(), ctx.Size()}
		if a.HasRight {
			var err error
			right, err = EvalSide(a.Right, left, ctx) // right sees left as "current"
			if err != nil {
				return Range{}, err
			}
		}
		return Range{left.Start, right.End}, nil

	case '+':
		return evalRelative(a, cur, ctx, true)

	case '-':
		return evalRelative(a, cur, ctx, false)
	}

	return cur, nil
}

// evalRelative implements the '+'/'-' line-relative combiners (spec §4.3).
// When the left side is absent, the base is the current range — "line
// relative to the end of the previous range", per §9's resolution of the
// open question about a missing left side.
func evalRelative(a Address, cur Range, ctx Context, forward bool) (Range, error) {
	base := cur
	if a.HasLeft {
		var err error
		base, err = EvalSide(a.Left, cur, ctx)
		if err != nil {
			return Range{}, err
		}
	}

	n := 1
	if a.HasRight && a.Right.Kind == SideLine {
		n = a.Right.Line
	}

	// The anchor byte must be the last byte actually inside the range (not
	// the exclusive End, which may coincide with the next line's Start and
	// so would be miscounted as already belonging to the following line).
	var anchor int
	if forward {
		anchor = base.End - 1
		if anchor < base.Start {
			anchor = base.Start
		}
	} else {
		anchor = base.Start
	}
	line := ctx.LineAt(anchor)

	var target int
	if forward {
		target = line + n
	} else {
		target = line - n
		if target < 1 {
			target = 1
		}
	}
	return Range{ctx.LineStart(target), ctx.LineStart(target + 1)}, nil
}
