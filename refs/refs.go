// Package refs implements ref coercion (spec §4.9): turning the raw ref
// value an author declared on an element into a callable fiber.Ref,
// preserving identity for string refs across reconciliations the same
// way resorch's Container preserves a built instance's identity across
// Reconcile calls as long as its Definition doesn't change.
package refs

import (
	"github.com/tonyjiang88215/react/diagnostics"
	"github.com/tonyjiang88215/react/fiber"
)

// callableRef adapts a plain func(any) into fiber.Ref, with no string
// identity of its own.
type callableRef struct {
	attach func(instance any)
}

func (r callableRef) Attach(instance any)       { r.attach(instance) }
func (r callableRef) StringKey() (string, bool) { return "", false }

// stringRef is the coerced form of a legacy string ref: a closure bound
// to (owner, key) that writes the attached instance into the owner's
// ref table, plus the original key so a later coercion of the same
// (owner, key) pair can detect it is already bound and reuse this value
// (spec §4.9, "identity preserved across reconciliations").
type stringRef struct {
	owner *fiber.Fiber
	key   string
}

func (r stringRef) Attach(instance any) {
	holder, ok := r.owner.StateNode.(RefsHolder)
	if !ok {
		return
	}
	holder.SetRef(r.key, instance)
}

func (r stringRef) StringKey() (string, bool) { return r.key, true }

// RefsHolder is implemented by an owner's stateNode to receive string-ref
// attachments, mirroring the React class-component instance.refs table.
type RefsHolder interface {
	SetRef(key string, instance any)
}

// Coerce converts a raw declared ref value into a fiber.Ref.
//
//   - nil yields (nil, nil): no ref declared.
//   - an existing fiber.Ref is returned unchanged.
//   - a func(any) is wrapped in callableRef.
//   - a string requires owner to be non-nil, and returns
//     diagnostics.MissingOwnerError otherwise.
//
// When current already carries a stringRef for the same (owner, key),
// that existing fiber.Ref is returned instead of a new one, so the
// attached instance is not redundantly re-attached on every update.
func Coerce(current *fiber.Fiber, raw any, owner *fiber.Fiber) (fiber.Ref, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case fiber.Ref:
		return v, nil
	case func(any):
		return callableRef{attach: v}, nil
	case string:
		if owner == nil {
			return nil, diagnostics.MissingOwnerError{Key: v}
		}
		if current != nil && current.Ref != nil {
			if key, ok := current.Ref.StringKey(); ok && key == v {
				if sr, ok := current.Ref.(stringRef); ok && sr.owner == owner {
					return current.Ref, nil
				}
			}
		}
		return stringRef{owner: owner, key: v}, nil
	default:
		return nil, nil
	}
}
