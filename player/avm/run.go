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
	"math"
	"strconv"

	"github.com/glimmerproject/glimmer/curated"
	"github.com/glimmerproject/glimmer/movie/action"
	"github.com/glimmerproject/glimmer/player/arena"
	"github.com/glimmerproject/glimmer/player/object"
	"github.com/glimmerproject/glimmer/player/values"
)

// completion kinds recorded while a finally body runs.
const (
	completeNormal = iota
	completeReturn
	completeThrow
)

type completion struct {
	kind  int
	value values.Value
	exc   *Exception
}

// try region states.
const (
	inTry = iota
	inCatch
	inFinally
)

// tryContext is the runtime record of one entered try region. The operand
// stack and scope chain are truncated back to the recorded depths whenever
// control transfers to the catch or finally body.
type tryContext struct {
	block      *action.TryBlock
	stackDepth int
	scopeDepth int
	state      int

	// what the finally body must do once it completes
	pending completion
}

type frame struct {
	script *action.Script
	pc     int
	stack  []values.Value
	scope  []arena.Handle
	this   arena.Handle
	trys   []tryContext
}

func (f *frame) push(v values.Value) {
	f.stack = append(f.stack, v)
}

func (m *Machine) pop1(f *frame) (values.Value, error) {
	if len(f.stack) == 0 {
		return values.Undefined(), m.throw(values.String("operand stack underflow"))
	}
	v := f.stack[len(f.stack)-1]
	f.stack = f.stack[:len(f.stack)-1]
	return v, nil
}

// pop2 returns the two topmost values; a is below b.
func (m *Machine) pop2(f *frame) (a, b values.Value, err error) {
	b, err = m.pop1(f)
	if err != nil {
		return
	}
	a, err = m.pop1(f)
	return
}

// popN returns n values in the order they were pushed.
func (m *Machine) popN(f *frame, n int) ([]values.Value, error) {
	if n < 0 || n > len(f.stack) {
		return nil, m.throw(values.String("operand stack underflow"))
	}
	vals := make([]values.Value, n)
	copy(vals, f.stack[len(f.stack)-n:])
	f.stack = f.stack[:len(f.stack)-n]
	return vals, nil
}

// run interprets one script to completion. The error, if any, is either an
// *Exception that no try region caught or a resource limit.
func (m *Machine) run(script *action.Script, scope []arena.Handle, this arena.Handle) (values.Value, error) {
	f := &frame{script: script, scope: scope, this: this}

	for {
		if f.pc < 0 || f.pc >= len(script.Instructions) {
			// running off the end is a return of undefined. pending finally
			// bodies still run
			v, done := m.unwindReturn(f, values.Undefined())
			if done {
				return v, nil
			}
			continue
		}

		m.budget--
		if m.budget < 0 {
			return values.Undefined(), curated.Errorf(ScriptTimeout, m.InstructionBudget)
		}

		ins := &script.Instructions[f.pc]
		f.pc++

		ret, done, err := m.step(f, ins)
		if err != nil {
			if err = m.raise(f, err); err != nil {
				return values.Undefined(), err
			}
			continue
		}
		if done {
			return ret, nil
		}
	}
}

// raise transfers control to the nearest try region that can handle the
// error. A non-nil return means no region could and the error propagates
// out of the frame. Resource limits are never handled.
func (m *Machine) raise(f *frame, err error) error {
	if m.isResourceLimit(err) {
		return err
	}

	exc, ok := err.(*Exception)
	if !ok {
		exc = m.throw(values.String(err.Error()))
	}

	for len(f.trys) > 0 {
		ctx := &f.trys[len(f.trys)-1]

		switch {
		case ctx.state == inTry && ctx.block.HasCatch:
			ctx.state = inCatch
			f.stack = f.stack[:ctx.stackDepth]
			f.scope = f.scope[:ctx.scopeDepth]

			// the catch variable lives in a scope of its own so it cannot
			// clobber a local of the same name
			sc := m.objects.NewObject(arena.Null)
			if err := m.objects.SetProperty(sc, ctx.block.CatchVar, exc.Value); err != nil {
				return err
			}
			f.scope = append(f.scope, sc)

			f.pc = ctx.block.CatchTarget
			return nil

		case ctx.state != inFinally && ctx.block.HasFinally:
			// from the try body with no catch, or from the catch body. the
			// finally body runs with the throw pending
			ctx.pending = completion{kind: completeThrow, exc: exc}
			ctx.state = inFinally
			f.stack = f.stack[:ctx.stackDepth]
			f.scope = f.scope[:ctx.scopeDepth]
			f.pc = ctx.block.FinallyTarget
			return nil

		default:
			// an exception from the finally body itself replaces whatever
			// was pending and keeps unwinding
			f.trys = f.trys[:len(f.trys)-1]
		}
	}

	return exc
}

// unwindReturn routes a return through any pending finally bodies. A false
// return means a finally body has taken control and interpretation
// continues; true means the frame is done.
func (m *Machine) unwindReturn(f *frame, v values.Value) (values.Value, bool) {
	for len(f.trys) > 0 {
		ctx := &f.trys[len(f.trys)-1]
		if ctx.state != inFinally && ctx.block.HasFinally {
			ctx.pending = completion{kind: completeReturn, value: v}
			ctx.state = inFinally
			f.stack = f.stack[:ctx.stackDepth]
			f.scope = f.scope[:ctx.scopeDepth]
			f.pc = ctx.block.FinallyTarget
			return values.Undefined(), false
		}
		f.trys = f.trys[:len(f.trys)-1]
	}
	return v, true
}

// step executes one instruction. done is true when the frame has produced
// its final value.
func (m *Machine) step(f *frame, ins *action.Instruction) (ret values.Value, done bool, err error) {
	switch ins.Op {
	case action.PushNumber:
		f.push(values.Number(ins.Number))

	case action.PushString:
		f.push(values.String(ins.Str))

	case action.PushBool:
		f.push(values.Boolean(ins.Bool))

	case action.PushUndefined:
		f.push(values.Undefined())

	case action.PushNull:
		f.push(values.Null())

	case action.Pop:
		_, err = m.pop1(f)

	case action.Dup:
		if len(f.stack) == 0 {
			err = m.throw(values.String("operand stack underflow"))
			break
		}
		f.push(f.stack[len(f.stack)-1])

	case action.Swap:
		var a, b values.Value
		if a, b, err = m.pop2(f); err == nil {
			f.push(b)
			f.push(a)
		}

	case action.Add:
		err = m.opAdd(f)

	case action.Subtract:
		err = m.numericOp(f, func(a, b float64) float64 { return a - b })

	case action.Multiply:
		err = m.numericOp(f, func(a, b float64) float64 { return a * b })

	case action.Divide:
		err = m.numericOp(f, func(a, b float64) float64 { return a / b })

	case action.Modulo:
		err = m.numericOp(f, math.Mod)

	case action.Increment:
		err = m.unaryNumericOp(f, func(a float64) float64 { return a + 1 })

	case action.Decrement:
		err = m.unaryNumericOp(f, func(a float64) float64 { return a - 1 })

	case action.Equals:
		var a, b values.Value
		if a, b, err = m.pop2(f); err == nil {
			var eq bool
			if eq, err = m.equals(a, b); err == nil {
				f.push(values.Boolean(eq))
			}
		}

	case action.StrictEquals:
		var a, b values.Value
		if a, b, err = m.pop2(f); err == nil {
			f.push(values.Boolean(values.StrictEquals(a, b)))
		}

	case action.Less:
		err = m.relationalOp(f, false)

	case action.Greater:
		err = m.relationalOp(f, true)

	case action.Not:
		var v values.Value
		if v, err = m.pop1(f); err == nil {
			f.push(values.Boolean(!v.ToBoolean()))
		}

	case action.And:
		var a, b values.Value
		if a, b, err = m.pop2(f); err == nil {
			f.push(values.Boolean(a.ToBoolean() && b.ToBoolean()))
		}

	case action.Or:
		var a, b values.Value
		if a, b, err = m.pop2(f); err == nil {
			f.push(values.Boolean(a.ToBoolean() || b.ToBoolean()))
		}

	case action.BitAnd:
		err = m.int32Op(f, func(a, b int32) int32 { return a & b })

	case action.BitOr:
		err = m.int32Op(f, func(a, b int32) int32 { return a | b })

	case action.BitXor:
		err = m.int32Op(f, func(a, b int32) int32 { return a ^ b })

	case action.ShiftLeft:
		err = m.int32Op(f, func(a, b int32) int32 { return a << (uint32(b) & 31) })

	case action.ShiftRight:
		err = m.int32Op(f, func(a, b int32) int32 { return a >> (uint32(b) & 31) })

	case action.ShiftRightUnsigned:
		var a, b values.Value
		if a, b, err = m.pop2(f); err == nil {
			f.push(values.Number(float64(a.ToUint32() >> (b.ToUint32() & 31))))
		}

	case action.Jump:
		f.pc = ins.Int

	case action.If:
		var v values.Value
		if v, err = m.pop1(f); err == nil && v.ToBoolean() {
			f.pc = ins.Int
		}

	case action.GetVariable:
		err = m.opGetVariable(f)

	case action.SetVariable:
		err = m.opSetVariable(f)

	case action.DefineLocal:
		err = m.opDefineLocal(f)

	case action.GetMember:
		err = m.opGetMember(f)

	case action.SetMember:
		err = m.opSetMember(f)

	case action.DeleteMember:
		err = m.opDeleteMember(f)

	case action.NewObject:
		err = m.opNewObject(f, ins.Int)

	case action.InitObject:
		err = m.opInitObject(f, ins.Int)

	case action.InitArray:
		err = m.opInitArray(f, ins.Int)

	case action.DefineFunction:
		err = m.opDefineFunction(f, ins)

	case action.CallFunction:
		err = m.opCallFunction(f, ins.Int)

	case action.CallMethod:
		err = m.opCallMethod(f, ins.Int)

	case action.Return:
		v := values.Undefined()
		if len(f.stack) > 0 {
			v, _ = m.pop1(f)
		}
		ret, done = m.unwindReturn(f, v)

	case action.Throw:
		var v values.Value
		if v, err = m.pop1(f); err == nil {
			err = m.throw(v)
		}

	case action.Try:
		f.trys = append(f.trys, tryContext{
			block:      ins.Try,
			stackDepth: len(f.stack),
			scopeDepth: len(f.scope),
		})

	case action.EndTry:
		err = m.opEndTry(f)

	case action.EndFinally:
		ret, done, err = m.opEndFinally(f)

	case action.TypeOf:
		var v values.Value
		if v, err = m.pop1(f); err == nil {
			f.push(values.String(m.typeOf(v)))
		}

	case action.Trace:
		var v values.Value
		if v, err = m.pop1(f); err == nil {
			var s string
			if s, err = m.toString(v); err == nil {
				m.Trace(s)
			}
		}
	}

	return ret, done, err
}

// opEndTry ends the try body or the catch body of the topmost region.
func (m *Machine) opEndTry(f *frame) error {
	if len(f.trys) == 0 {
		return m.throw(values.String("end of try region outside a try region"))
	}
	ctx := &f.trys[len(f.trys)-1]

	// leaving the catch body discards the catch variable's scope
	f.scope = f.scope[:ctx.scopeDepth]
	f.stack = f.stack[:ctx.stackDepth]

	if ctx.block.HasFinally && ctx.state != inFinally {
		ctx.pending = completion{kind: completeNormal}
		ctx.state = inFinally
		f.pc = ctx.block.FinallyTarget
		return nil
	}

	f.trys = f.trys[:len(f.trys)-1]
	f.pc = ctx.block.EndTarget
	return nil
}

// opEndFinally completes the finally body and applies the pending
// completion: fall through, resume a return, or rethrow.
func (m *Machine) opEndFinally(f *frame) (values.Value, bool, error) {
	if len(f.trys) == 0 {
		return values.Undefined(), false, m.throw(values.String("end of finally outside a try region"))
	}
	ctx := f.trys[len(f.trys)-1]
	f.trys = f.trys[:len(f.trys)-1]

	switch ctx.pending.kind {
	case completeReturn:
		v, done := m.unwindReturn(f, ctx.pending.value)
		return v, done, nil
	case completeThrow:
		return values.Undefined(), false, ctx.pending.exc
	}

	f.pc = ctx.block.EndTarget
	return values.Undefined(), false, nil
}

func (m *Machine) opAdd(f *frame) error {
	a, b, err := m.pop2(f)
	if err != nil {
		return err
	}
	pa, err := m.toPrimitive(a)
	if err != nil {
		return err
	}
	pb, err := m.toPrimitive(b)
	if err != nil {
		return err
	}
	if pa.Kind() == values.KindString || pb.Kind() == values.KindString {
		f.push(values.String(pa.ToString() + pb.ToString()))
	} else {
		f.push(values.Number(pa.ToNumber() + pb.ToNumber()))
	}
	return nil
}

func (m *Machine) numericOp(f *frame, op func(a, b float64) float64) error {
	a, b, err := m.pop2(f)
	if err != nil {
		return err
	}
	na, err := m.toNumber(a)
	if err != nil {
		return err
	}
	nb, err := m.toNumber(b)
	if err != nil {
		return err
	}
	f.push(values.Number(op(na, nb)))
	return nil
}

func (m *Machine) unaryNumericOp(f *frame, op func(a float64) float64) error {
	v, err := m.pop1(f)
	if err != nil {
		return err
	}
	n, err := m.toNumber(v)
	if err != nil {
		return err
	}
	f.push(values.Number(op(n)))
	return nil
}

func (m *Machine) int32Op(f *frame, op func(a, b int32) int32) error {
	a, b, err := m.pop2(f)
	if err != nil {
		return err
	}
	f.push(values.Number(float64(op(a.ToInt32(), b.ToInt32()))))
	return nil
}

// relationalOp pushes the result of a or b compared to the other. A
// comparison with a NaN operand is false.
func (m *Machine) relationalOp(f *frame, greater bool) error {
	a, b, err := m.pop2(f)
	if err != nil {
		return err
	}
	if greater {
		a, b = b, a
	}
	r, ok, err := m.less(a, b)
	if err != nil {
		return err
	}
	f.push(values.Boolean(ok && r))
	return nil
}

func (m *Machine) opGetVariable(f *frame) error {
	nameV, err := m.pop1(f)
	if err != nil {
		return err
	}
	name, err := m.toString(nameV)
	if err != nil {
		return err
	}

	if name == "this" {
		if f.this.IsNull() {
			f.push(values.Undefined())
		} else {
			f.push(values.Object(f.this))
		}
		return nil
	}

	for i := len(f.scope) - 1; i >= 0; i-- {
		if m.objects.HasOwnProperty(f.scope[i], name) {
			v, err := m.objects.GetProperty(f.scope[i], name)
			if err != nil {
				return m.asException(err)
			}
			f.push(v)
			return nil
		}
	}

	// the global object's prototype chain has the last word
	v, err := m.objects.GetProperty(m.globals, name)
	if err != nil {
		return m.asException(err)
	}
	f.push(v)
	return nil
}

func (m *Machine) opSetVariable(f *frame) error {
	v, err := m.pop1(f)
	if err != nil {
		return err
	}
	nameV, err := m.pop1(f)
	if err != nil {
		return err
	}
	name, err := m.toString(nameV)
	if err != nil {
		return err
	}

	// assignment lands on the nearest scope that already defines the name,
	// falling back to the global object
	for i := len(f.scope) - 1; i >= 0; i-- {
		if m.objects.HasOwnProperty(f.scope[i], name) {
			return m.asException(m.objects.SetProperty(f.scope[i], name, v))
		}
	}
	return m.asException(m.objects.SetProperty(m.globals, name, v))
}

func (m *Machine) opDefineLocal(f *frame) error {
	v, err := m.pop1(f)
	if err != nil {
		return err
	}
	nameV, err := m.pop1(f)
	if err != nil {
		return err
	}
	name, err := m.toString(nameV)
	if err != nil {
		return err
	}
	return m.asException(m.objects.SetProperty(f.scope[len(f.scope)-1], name, v))
}

func (m *Machine) opGetMember(f *frame) error {
	nameV, err := m.pop1(f)
	if err != nil {
		return err
	}
	obj, err := m.pop1(f)
	if err != nil {
		return err
	}
	name, err := m.toString(nameV)
	if err != nil {
		return err
	}

	switch obj.Kind() {
	case values.KindUndefined, values.KindNull:
		return m.throw(values.String("member access on " + obj.ToString() + ": " + name))
	case values.KindObject:
		v, err := m.objects.GetProperty(obj.ObjectHandle(), name)
		if err != nil {
			return m.asException(err)
		}
		f.push(v)
	default:
		// primitive values have no members in this dialect
		f.push(values.Undefined())
	}
	return nil
}

func (m *Machine) opSetMember(f *frame) error {
	v, err := m.pop1(f)
	if err != nil {
		return err
	}
	nameV, err := m.pop1(f)
	if err != nil {
		return err
	}
	obj, err := m.pop1(f)
	if err != nil {
		return err
	}
	name, err := m.toString(nameV)
	if err != nil {
		return err
	}

	switch obj.Kind() {
	case values.KindUndefined, values.KindNull:
		return m.throw(values.String("member write on " + obj.ToString() + ": " + name))
	case values.KindObject:
		return m.asException(m.objects.SetProperty(obj.ObjectHandle(), name, v))
	}
	// a write to a primitive's member is silently lost
	return nil
}

func (m *Machine) opDeleteMember(f *frame) error {
	nameV, err := m.pop1(f)
	if err != nil {
		return err
	}
	obj, err := m.pop1(f)
	if err != nil {
		return err
	}
	name, err := m.toString(nameV)
	if err != nil {
		return err
	}
	if !obj.IsObject() {
		return nil
	}
	return m.asException(m.objects.DeleteProperty(obj.ObjectHandle(), name))
}

func (m *Machine) opNewObject(f *frame, argc int) error {
	fnV, err := m.pop1(f)
	if err != nil {
		return err
	}
	args, err := m.popN(f, argc)
	if err != nil {
		return err
	}
	if !fnV.IsObject() {
		return m.throw(values.String("new of a value that is not a function"))
	}
	fnH := fnV.ObjectHandle()

	proto := m.objectProto
	if p, err := m.objects.GetProperty(fnH, "prototype"); err == nil && p.IsObject() {
		proto = p.ObjectHandle()
	}

	obj := m.objects.NewObject(proto)
	r, err := m.call(fnH, obj, args)
	if err != nil {
		return err
	}
	if r.IsObject() {
		f.push(r)
	} else {
		f.push(values.Object(obj))
	}
	return nil
}

func (m *Machine) opInitObject(f *frame, pairs int) error {
	obj := m.objects.NewObject(m.objectProto)
	for i := 0; i < pairs; i++ {
		v, err := m.pop1(f)
		if err != nil {
			return err
		}
		nameV, err := m.pop1(f)
		if err != nil {
			return err
		}
		name, err := m.toString(nameV)
		if err != nil {
			return err
		}
		if err := m.objects.SetProperty(obj, name, v); err != nil {
			return m.asException(err)
		}
	}
	f.push(values.Object(obj))
	return nil
}

func (m *Machine) opInitArray(f *frame, count int) error {
	elems, err := m.popN(f, count)
	if err != nil {
		return err
	}
	arr := m.objects.NewArray(m.arrayProto)
	for i, v := range elems {
		if err := m.objects.SetProperty(arr, strconv.Itoa(i), v); err != nil {
			return m.asException(err)
		}
	}
	f.push(values.Object(arr))
	return nil
}

func (m *Machine) opDefineFunction(f *frame, ins *action.Instruction) error {
	// the captured scope chain is a copy. the defining frame's chain keeps
	// changing; the closure's must not
	captured := make([]arena.Handle, len(f.scope))
	copy(captured, f.scope)

	fn := &object.Function{
		Name:   ins.Str,
		Params: ins.Params,
		Body:   ins.Script,
		Scope:  captured,
	}
	h := m.objects.NewFunction(fn, m.functionProto)

	proto := m.objects.NewObject(m.objectProto)
	if err := m.objects.SetProperty(proto, "constructor", values.Object(h)); err != nil {
		return m.asException(err)
	}
	if err := m.objects.SetProperty(h, "prototype", values.Object(proto)); err != nil {
		return m.asException(err)
	}

	if ins.Str != "" {
		// a named definition binds in the enclosing scope and pushes nothing
		return m.asException(m.objects.SetProperty(f.scope[len(f.scope)-1], ins.Str, values.Object(h)))
	}

	f.push(values.Object(h))
	return nil
}

func (m *Machine) opCallFunction(f *frame, argc int) error {
	fnV, err := m.pop1(f)
	if err != nil {
		return err
	}
	args, err := m.popN(f, argc)
	if err != nil {
		return err
	}
	if !fnV.IsObject() {
		return m.throw(values.String("call of a value that is not a function"))
	}
	r, err := m.call(fnV.ObjectHandle(), m.globals, args)
	if err != nil {
		return err
	}
	f.push(r)
	return nil
}

func (m *Machine) opCallMethod(f *frame, argc int) error {
	nameV, err := m.pop1(f)
	if err != nil {
		return err
	}
	objV, err := m.pop1(f)
	if err != nil {
		return err
	}
	args, err := m.popN(f, argc)
	if err != nil {
		return err
	}
	name, err := m.toString(nameV)
	if err != nil {
		return err
	}

	if !objV.IsObject() {
		return m.throw(values.String("method call on a non-object: " + name))
	}
	obj := objV.ObjectHandle()

	method, err := m.objects.GetProperty(obj, name)
	if err != nil {
		return m.asException(err)
	}
	if !method.IsObject() {
		return m.throw(values.String("call of a value that is not a function: " + name))
	}

	r, err := m.call(method.ObjectHandle(), obj, args)
	if err != nil {
		return err
	}
	f.push(r)
	return nil
}

func (m *Machine) typeOf(v values.Value) string {
	if v.IsObject() {
		if _, ok := m.objects.FunctionOf(v.ObjectHandle()); ok {
			return "function"
		}
		return "object"
	}
	return v.Kind().String()
}
