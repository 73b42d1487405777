// This file is part of Glimmer.
//
// Glimmer is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Glimmer is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Glimmer.  If not, see <https://www.gnu.org/licenses/>.

package avm

import (
	"github.com/glimmerproject/glimmer/curated"
	"github.com/glimmerproject/glimmer/logger"
	"github.com/glimmerproject/glimmer/movie/action"
	"github.com/glimmerproject/glimmer/player/arena"
	"github.com/glimmerproject/glimmer/player/object"
	"github.com/glimmerproject/glimmer/player/values"
)

// Sentinel error patterns for the interpreter. The resource limit errors
// are not script-catchable; everything else surfaces to scripts as a
// catchable exception and only reaches these patterns when uncaught.
const (
	UncaughtException = "uncaught exception: %s"
	ScriptTimeout     = "script timeout: instruction budget exhausted (%d)"
	StackOverflow     = "stack overflow: call depth limit (%d)"
	MachineDisabled   = "script execution disabled"
)

// Default resource limits.
const (
	DefCallDepth         = 256
	DefInstructionBudget = 1000000
)

// Exception is a script-visible error carrying the thrown value. It unwinds
// through try regions and is catchable.
type Exception struct {
	Value values.Value

	// message rendered at throw time. the thrown value may refer to objects
	// that no longer exist when the message is finally read
	msg string
}

func (e *Exception) Error() string {
	return e.msg
}

// Machine executes scripts. One machine serves the whole player; scripts
// share the global object and the object store.
type Machine struct {
	objects *object.Store

	globals arena.Handle

	// prototypes for the builtin object kinds
	objectProto   arena.Handle
	arrayProto    arena.Handle
	functionProto arena.Handle

	// MaxCallDepth and InstructionBudget may be adjusted before the first
	// Execute. The budget is per top-level execution, not per tick.
	MaxCallDepth      int
	InstructionBudget int

	// Trace receives the output of the trace instruction. The default
	// sends it to the central logger.
	Trace func(string)

	callDepth int
	budget    int
	disabled  bool
}

// NewMachine is the preferred method of initialisation for the Machine
// type. The machine installs its builtin objects into the object store
// immediately.
func NewMachine(objects *object.Store) *Machine {
	m := &Machine{
		objects:           objects,
		MaxCallDepth:      DefCallDepth,
		InstructionBudget: DefInstructionBudget,
	}
	m.Trace = func(s string) {
		logger.Log(logger.Allow, "trace", s)
	}
	m.installBuiltins()
	return m
}

// Globals returns the global object. Top-level variables are its
// properties.
func (m *Machine) Globals() arena.Handle {
	return m.globals
}

// PlainPrototype returns the prototype shared by plain objects. Display
// object bindings chain to it.
func (m *Machine) PlainPrototype() arena.Handle {
	return m.objectProto
}

// NewNative creates a function object around a builtin implementation.
func (m *Machine) NewNative(name string, fn object.NativeFunc) arena.Handle {
	return m.objects.NewFunction(&object.Function{Name: name, Native: fn}, m.functionProto)
}

// Roots returns the handles the player must treat as reachable when
// marking: the global object and the builtin prototypes.
func (m *Machine) Roots() []arena.Handle {
	return []arena.Handle{m.globals, m.objectProto, m.arrayProto, m.functionProto}
}

// Disable stops all further script execution. Called by the player after a
// resource limit error - content that has run away once is not trusted
// again.
func (m *Machine) Disable() {
	m.disabled = true
}

// Disabled indicates whether script execution has been stopped.
func (m *Machine) Disabled() bool {
	return m.disabled
}

// Execute runs a top-level script with the given this binding. The scope
// chain is the global object alone. An uncaught exception or a resource
// limit is returned as an error; the resource limit errors additionally
// disable the machine.
func (m *Machine) Execute(script *action.Script, this arena.Handle) (values.Value, error) {
	if m.disabled {
		return values.Undefined(), curated.Errorf(MachineDisabled)
	}

	m.budget = m.InstructionBudget
	m.callDepth = 0

	v, err := m.run(script, []arena.Handle{m.globals}, this)
	return v, m.finalize(err)
}

// Call invokes a function object from outside the interpreter, for event
// callbacks held as object properties. Error semantics match Execute.
func (m *Machine) Call(fn arena.Handle, this arena.Handle, args []values.Value) (values.Value, error) {
	if m.disabled {
		return values.Undefined(), curated.Errorf(MachineDisabled)
	}

	m.budget = m.InstructionBudget
	m.callDepth = 0

	v, err := m.call(fn, this, args)
	return v, m.finalize(err)
}

// finalize converts internal errors to the boundary form: exceptions that
// reached the top are uncaught, resource limits disable the machine.
func (m *Machine) finalize(err error) error {
	if err == nil {
		return nil
	}
	if exc, ok := err.(*Exception); ok {
		return curated.Errorf(UncaughtException, exc.msg)
	}
	if m.isResourceLimit(err) {
		m.disabled = true
	}
	return err
}

func (m *Machine) isResourceLimit(err error) bool {
	return curated.Is(err, ScriptTimeout) || curated.Is(err, StackOverflow)
}

// throw wraps a value as a catchable exception.
func (m *Machine) throw(v values.Value) *Exception {
	return &Exception{Value: v, msg: m.Stringify(v)}
}

// asException converts an operational error to a catchable exception. A
// resource limit error passes through untouched - those are not for
// scripts to see.
func (m *Machine) asException(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*Exception); ok {
		return err
	}
	if m.isResourceLimit(err) {
		return err
	}
	return m.throw(values.String(err.Error()))
}

// call invokes a function object from within the machine. Exceptions
// propagate in their internal, catchable form.
func (m *Machine) call(fn arena.Handle, this arena.Handle, args []values.Value) (values.Value, error) {
	if m.callDepth >= m.MaxCallDepth {
		return values.Undefined(), curated.Errorf(StackOverflow, m.MaxCallDepth)
	}

	f, ok := m.objects.FunctionOf(fn)
	if !ok {
		return values.Undefined(), m.throw(values.String("call of a value that is not a function"))
	}

	m.callDepth++
	defer func() { m.callDepth-- }()

	if f.Native != nil {
		v, err := f.Native(this, args)
		return v, m.asException(err)
	}

	// an activation object holds the parameters and locals. it chains
	// nowhere - scope lookup walks the chain slice, not prototypes
	activation := m.objects.NewObject(arena.Null)
	for i, p := range f.Params {
		v := values.Undefined()
		if i < len(args) {
			v = args[i]
		}
		if err := m.objects.SetProperty(activation, p, v); err != nil {
			return values.Undefined(), m.asException(err)
		}
	}

	scope := make([]arena.Handle, 0, len(f.Scope)+1)
	scope = append(scope, f.Scope...)
	scope = append(scope, activation)

	return m.run(f.Body, scope, this)
}
