package feature

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnah/go-htmlmin/markup"
)

// ErrInvalidModuleShape is returned when a loaded value cannot be read as a
// feature module.
var ErrInvalidModuleShape = errors.New("not a valid feature module")

// maxUnwrapDepth bounds the number of default layers followed, so that a
// DefaultExporter returning itself cannot loop forever.
const maxUnwrapDepth = 8

// Export bundle keys.
const (
	KeyOnAttrs   = "onAttrs"
	KeyOnContent = "onContent"
	KeyOnNode    = "onNode"
	KeyDefault   = "default"
)

type unwrapState int

const (
	stateUnwrapped unwrapState = iota
	stateNeedsUnwrap
	stateResolved
	stateInvalid
)

// layer is what one level of a loaded value declares.
type layer struct {
	module  Module
	next    any // the default export, when it is not itself a transform
	hasNext bool
}

// Unwrap normalizes a loaded value into a Module. Accepted shapes are
// Module, *Module, map[string]any export bundles (keys onAttrs, onContent,
// onNode, default) and DefaultExporter values, nested behind any number of
// default layers up to a fixed depth.
//
// The first layer declaring a handler factory is the module. When no layer
// does, the innermost layer whose default is a transform is the module.
func Unwrap(raw any) (*Module, error) {
	var (
		state   = stateUnwrapped
		current = raw
		holder  *layer
		result  *Module
		err     error
		depth   int
	)

	for {
		switch state {
		case stateUnwrapped:
			l, inspectErr := inspect(current)
			if inspectErr != nil {
				err = inspectErr
				state = stateInvalid
				continue
			}
			if l.module.HasHandlers() {
				result = &l.module
				state = stateResolved
				continue
			}
			holder = &l
			state = stateNeedsUnwrap

		case stateNeedsUnwrap:
			if holder.hasNext {
				depth++
				if depth > maxUnwrapDepth {
					err = fmt.Errorf("%w: more than %d default layers", ErrInvalidModuleShape, maxUnwrapDepth)
					state = stateInvalid
					continue
				}
				current = holder.next
				state = stateUnwrapped
				continue
			}
			if holder.module.Default == nil {
				err = fmt.Errorf("%w: no handler factory and no default transform", ErrInvalidModuleShape)
				state = stateInvalid
				continue
			}
			result = &Module{Default: holder.module.Default}
			state = stateResolved

		case stateResolved:
			return result, nil

		case stateInvalid:
			return nil, err
		}
	}
}

func inspect(v any) (layer, error) {
	switch m := v.(type) {
	case nil:
		return layer{}, fmt.Errorf("%w: nil value", ErrInvalidModuleShape)
	case Module:
		return layer{module: m}, nil
	case *Module:
		if m == nil {
			return layer{}, fmt.Errorf("%w: nil module", ErrInvalidModuleShape)
		}
		return layer{module: *m}, nil
	case map[string]any:
		return inspectBundle(m)
	case DefaultExporter:
		next := m.DefaultExport()
		return layer{next: next, hasNext: next != nil}, nil
	default:
		return layer{}, fmt.Errorf("%w: unsupported value of type %T", ErrInvalidModuleShape, v)
	}
}

func inspectBundle(bundle map[string]any) (layer, error) {
	var l layer
	var ok bool

	if v, present := bundle[KeyOnAttrs]; present && v != nil {
		if l.module.OnAttrs, ok = asAttrsFactory(v); !ok {
			return layer{}, fmt.Errorf("%w: %s has type %T", ErrInvalidModuleShape, KeyOnAttrs, v)
		}
	}
	if v, present := bundle[KeyOnContent]; present && v != nil {
		if l.module.OnContent, ok = asContentFactory(v); !ok {
			return layer{}, fmt.Errorf("%w: %s has type %T", ErrInvalidModuleShape, KeyOnContent, v)
		}
	}
	if v, present := bundle[KeyOnNode]; present && v != nil {
		if l.module.OnNode, ok = asNodeFactory(v); !ok {
			return layer{}, fmt.Errorf("%w: %s has type %T", ErrInvalidModuleShape, KeyOnNode, v)
		}
	}
	if v, present := bundle[KeyDefault]; present && v != nil {
		if t, isTransform := AsTransform(v); isTransform {
			l.module.Default = t
		} else {
			l.next, l.hasNext = v, true
		}
	}
	return l, nil
}

func asAttrsFactory(v any) (AttrsFactory, bool) {
	switch f := v.(type) {
	case AttrsFactory:
		return f, f != nil
	case func(*Options, any) AttrsHandler:
		return f, f != nil
	}
	return nil, false
}

func asContentFactory(v any) (ContentFactory, bool) {
	switch f := v.(type) {
	case ContentFactory:
		return f, f != nil
	case func(*Options, any) ContentHandler:
		return f, f != nil
	}
	return nil, false
}

func asNodeFactory(v any) (NodeFactory, bool) {
	switch f := v.(type) {
	case NodeFactory:
		return f, f != nil
	case func(*Options, any) NodeHandler:
		return f, f != nil
	}
	return nil, false
}

// AsTransform reports whether v is a tree transform, named or not.
func AsTransform(v any) (Transform, bool) {
	switch f := v.(type) {
	case Transform:
		return f, f != nil
	case func(context.Context, *markup.Tree, *Options, any) (*markup.Tree, error):
		return f, f != nil
	}
	return nil, false
}
