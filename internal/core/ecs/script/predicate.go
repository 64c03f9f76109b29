// Package script compiles user-supplied Lua boolean expressions into the
// Filter.Select predicate signature (func(ecs.Entity) bool), using
// github.com/yuin/gopher-lua. This lets a host supply a user predicate over
// an entity handle without a Go recompile per rule change. The dependency is
// one-directional: script imports ecs, ecs never imports script.
package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"emberecs/internal/core/ecs"
)

// Predicates holds one Lua VM and the host-registered query functions a
// compiled expression may call, keyed by entity id.
type Predicates struct {
	l *lua.LState
}

// New returns a Predicates bound to a fresh Lua VM.
func New() *Predicates {
	return &Predicates{l: lua.NewState()}
}

// Close releases the underlying Lua VM.
func (p *Predicates) Close() { p.l.Close() }

// RegisterQuery exposes fn to Lua as a global function name(eid) -> bool,
// so a compiled expression can ask "does this entity hold kind X" without
// the script package ever importing the host's concrete component types.
func (p *Predicates) RegisterQuery(name string, fn func(ecs.EntityID) bool) {
	p.l.SetGlobal(name, p.l.NewFunction(func(l *lua.LState) int {
		eid := ecs.EntityID(l.CheckInt64(1))
		l.Push(lua.LBool(fn(eid)))
		return 1
	}))
}

// Compile parses expr as a Lua boolean expression in terms of eid (the
// entity's id, passed as the sole argument) and any functions registered via
// RegisterQuery, returning a predicate usable with Filter.Select.
func (p *Predicates) Compile(expr string) (func(ecs.Entity) bool, error) {
	chunk := fmt.Sprintf("return function(eid) return (%s) end", expr)
	fn, err := p.l.LoadString(chunk)
	if err != nil {
		return nil, fmt.Errorf("script: compile: %w", err)
	}
	p.l.Push(fn)
	if err := p.l.PCall(0, 1, nil); err != nil {
		return nil, fmt.Errorf("script: compile: %w", err)
	}
	predFn := p.l.Get(-1)
	p.l.Pop(1)

	return func(e ecs.Entity) bool {
		p.l.Push(predFn)
		p.l.Push(lua.LNumber(e.ID()))
		if err := p.l.PCall(1, 1, nil); err != nil {
			return false
		}
		ret := p.l.Get(-1)
		p.l.Pop(1)
		return lua.LVAsBool(ret)
	}, nil
}
