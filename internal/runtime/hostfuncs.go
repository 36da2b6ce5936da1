package runtime

import (
	"context"
	"log/slog"

	"github.com/risor-io/risor/object"

	"github.com/jward/frond/internal/complete"
)

// makeBindingKindFn creates the "binding_kind" host function.
//
// binding_kind(name) → "var", "param", "func", "class", "import", "member",
// or "" when the proposal has no binding.
func makeBindingKindFn(set *complete.Set) *object.Builtin {
	return object.NewBuiltin("binding_kind", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.NewArgsError("binding_kind", 1, len(args))
		}
		name, ok := args[0].(*object.String)
		if !ok {
			return object.Errorf("binding_kind: name must be a string, got %s", args[0].Type())
		}
		p, ok := set.Get(name.Value())
		if !ok || p.Binding == nil {
			return object.NewString("")
		}
		return object.NewString(p.Binding.Kind.String())
	})
}

// makeBindingTypesFn creates the "binding_types" host function.
//
// binding_types(name) → list of candidate type names, possibly empty.
func makeBindingTypesFn(set *complete.Set) *object.Builtin {
	return object.NewBuiltin("binding_types", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.NewArgsError("binding_types", 1, len(args))
		}
		name, ok := args[0].(*object.String)
		if !ok {
			return object.Errorf("binding_types: name must be a string, got %s", args[0].Type())
		}
		p, ok := set.Get(name.Value())
		if !ok || p.Binding == nil {
			return object.NewList(nil)
		}
		items := make([]object.Object, len(p.Binding.Types))
		for i, t := range p.Binding.Types {
			items[i] = object.NewString(t.String())
		}
		return object.NewList(items)
	})
}

// logObject provides log.Info/Warn/Error methods for Risor scripts.
type logObject struct {
	logger *slog.Logger
}

func (l *logObject) Info(msg string) {
	l.logger.Info(msg, "source", "script")
}

func (l *logObject) Warn(msg string) {
	l.logger.Warn(msg, "source", "script")
}

func (l *logObject) Error(msg string) {
	l.logger.Error(msg, "source", "script")
}
