package reconcile

import (
	"fmt"

	"github.com/tonyjiang88215/react/fiber"
	"github.com/tonyjiang88215/react/iter"
)

// textChild is the normalized form of an implicit text child: a bare
// string or number passed where a single child description is
// expected (spec §4.8).
type textChild string

// asIterableSequence reports whether v declares a lazy forward child
// sequence, returning the declaration itself rather than a single
// Iterator so the dev-mode duplicate-key scan can request its own,
// separate pass over the sequence (spec §9, "Lazy sequence in dev
// mode").
func asIterableSequence(v any) (iter.IterableSequence, bool) {
	seq, ok := v.(iter.IterableSequence)
	return seq, ok
}

// normalizeChild reduces a single-child value to either nil (empty),
// textChild, or one of the fiber.ChildDescription concrete types.
// Top-level iterable sequences are handled by the caller before
// normalizeChild is ever reached (spec §4.8); a sequence nested inside
// one becomes an unkeyed fiber.Fragment. owner is threaded
// through so an Element with no explicit Owner inherits the fiber
// whose children are being reconciled.
func normalizeChild(v any, owner *fiber.Fiber) (any, error) {
	switch c := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return nil, nil
	case string:
		return textChild(c), nil
	case int, int32, int64, float32, float64:
		return textChild(fmt.Sprintf("%v", c)), nil
	case fiber.Element:
		if c.Owner == nil {
			c.Owner = owner
		}
		return c, nil
	case fiber.Coroutine:
		return c, nil
	case fiber.Yield:
		return c, nil
	case fiber.Portal:
		return c, nil
	case fiber.Fragment:
		return c, nil
	case []fiber.ChildDescription, []any, iter.IterableSequence:
		return fiber.Fragment{Children: c}, nil
	default:
		return nil, nil
	}
}

// isEmpty reports whether a normalized child description carries no
// content at all.
func isEmpty(v any) bool {
	return v == nil
}

// childKey extracts the identity key carried by a normalized child
// description, or nil if it has none (implicit, positional identity).
func childKey(v any) *string {
	switch c := v.(type) {
	case fiber.Element:
		return c.Key
	case fiber.Coroutine:
		return c.Key
	case fiber.Yield:
		return c.Key
	case fiber.Portal:
		return c.Key
	case fiber.Fragment:
		return c.Key
	default:
		return nil
	}
}
