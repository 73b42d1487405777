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

package avm_test

import (
	"testing"

	"github.com/glimmerproject/glimmer/curated"
	"github.com/glimmerproject/glimmer/movie/action"
	"github.com/glimmerproject/glimmer/player/arena"
	"github.com/glimmerproject/glimmer/player/avm"
	"github.com/glimmerproject/glimmer/player/object"
	"github.com/glimmerproject/glimmer/player/values"
	"github.com/glimmerproject/glimmer/test"
)

// instruction shorthands. tests build scripts by hand so the layouts stay
// readable.
func num(n float64) action.Instruction {
	return action.Instruction{Op: action.PushNumber, Number: n}
}

func str(s string) action.Instruction {
	return action.Instruction{Op: action.PushString, Str: s}
}

func op(o action.Opcode) action.Instruction {
	return action.Instruction{Op: o}
}

func opN(o action.Opcode, n int) action.Instruction {
	return action.Instruction{Op: o, Int: n}
}

func script(ins ...action.Instruction) *action.Script {
	return &action.Script{Instructions: ins}
}

func newTestMachine(t *testing.T) (*avm.Machine, *object.Store) {
	t.Helper()
	objs := object.NewStore()
	return avm.NewMachine(objs), objs
}

// run validates and executes a script, failing the test on any error.
func run(t *testing.T, m *avm.Machine, s *action.Script) {
	t.Helper()
	test.ExpectedSuccess(t, s.Validate())
	_, err := m.Execute(s, arena.Null)
	test.ExpectedSuccess(t, err)
}

func globalVal(t *testing.T, m *avm.Machine, objs *object.Store, name string) values.Value {
	t.Helper()
	v, err := objs.GetProperty(m.Globals(), name)
	test.ExpectedSuccess(t, err)
	return v
}

func TestArithmetic(t *testing.T) {
	m, objs := newTestMachine(t)

	run(t, m, script(
		str("r"),
		num(2), num(3), op(action.Add),
		num(4), op(action.Multiply),
		num(5), op(action.Subtract),
		op(action.SetVariable),
	))
	test.Equate(t, globalVal(t, m, objs, "r").ToNumber(), 15)
}

func TestStringConcatenation(t *testing.T) {
	m, objs := newTestMachine(t)

	run(t, m, script(
		str("r"),
		str("a"), num(1), op(action.Add),
		op(action.SetVariable),
	))
	test.Equate(t, globalVal(t, m, objs, "r").ToString(), "a1")
}

func TestBranchLoop(t *testing.T) {
	m, objs := newTestMachine(t)

	// i = 0; s = 0; while (i < 5) { i = i + 1; s = s + i }
	run(t, m, script(
		str("i"), num(0), op(action.SetVariable),
		str("s"), num(0), op(action.SetVariable),
		str("i"), op(action.GetVariable), num(5), op(action.Less), // 6..9
		op(action.Not),
		opN(action.If, 25),
		str("i"), str("i"), op(action.GetVariable), op(action.Increment), op(action.SetVariable),
		str("s"), str("s"), op(action.GetVariable), str("i"), op(action.GetVariable), op(action.Add), op(action.SetVariable),
		opN(action.Jump, 6),
	))
	test.Equate(t, globalVal(t, m, objs, "s").ToNumber(), 15)
	test.Equate(t, globalVal(t, m, objs, "i").ToNumber(), 5)
}

func TestBitwiseWraparound(t *testing.T) {
	m, objs := newTestMachine(t)

	run(t, m, script(
		str("r"), num(4294967295), num(1), op(action.BitAnd), op(action.SetVariable),
		str("s"), num(1), num(31), op(action.ShiftLeft), op(action.SetVariable),
		str("u"), num(4294967295), num(0), op(action.ShiftRightUnsigned), op(action.SetVariable),
	))
	test.Equate(t, globalVal(t, m, objs, "r").ToNumber(), 1)
	test.Equate(t, globalVal(t, m, objs, "s").ToNumber(), float64(-2147483648))
	test.Equate(t, globalVal(t, m, objs, "u").ToNumber(), float64(4294967295))
}

func TestObjects(t *testing.T) {
	m, objs := newTestMachine(t)

	// o = {a: 1}; o.b = 2; r = o.a + o.b; t = typeof o
	run(t, m, script(
		str("o"), str("a"), num(1), opN(action.InitObject, 1), op(action.SetVariable),
		str("o"), op(action.GetVariable), str("b"), num(2), op(action.SetMember),
		str("r"),
		str("o"), op(action.GetVariable), str("a"), op(action.GetMember),
		str("o"), op(action.GetVariable), str("b"), op(action.GetMember),
		op(action.Add), op(action.SetVariable),
		str("t"), str("o"), op(action.GetVariable), op(action.TypeOf), op(action.SetVariable),
	))
	test.Equate(t, globalVal(t, m, objs, "r").ToNumber(), 3)
	test.Equate(t, globalVal(t, m, objs, "t").ToString(), "object")
}

func TestMemberAccessOnUndefinedThrows(t *testing.T) {
	m, _ := newTestMachine(t)

	s := script(
		op(action.PushUndefined), str("x"), op(action.GetMember),
	)
	test.ExpectedSuccess(t, s.Validate())
	_, err := m.Execute(s, arena.Null)
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, avm.UncaughtException))
}

func TestArrays(t *testing.T) {
	m, objs := newTestMachine(t)

	// a = [1, 2, 3]; a.push(4); r = a.join("-"); l = a.length
	run(t, m, script(
		str("a"), num(1), num(2), num(3), opN(action.InitArray, 3), op(action.SetVariable),
		num(4), str("a"), op(action.GetVariable), str("push"), opN(action.CallMethod, 1), op(action.Pop),
		str("r"), str("-"), str("a"), op(action.GetVariable), str("join"), opN(action.CallMethod, 1), op(action.SetVariable),
		str("l"), str("a"), op(action.GetVariable), str("length"), op(action.GetMember), op(action.SetVariable),
	))
	test.Equate(t, globalVal(t, m, objs, "r").ToString(), "1-2-3-4")
	test.Equate(t, globalVal(t, m, objs, "l").ToNumber(), 4)
}

func TestConstructor(t *testing.T) {
	m, objs := newTestMachine(t)

	// function Point(x) { this.x = x }; p = new Point(5); r = p.x
	body := script(
		str("this"), op(action.GetVariable),
		str("x"), str("x"), op(action.GetVariable),
		op(action.SetMember),
	)
	run(t, m, script(
		action.Instruction{Op: action.DefineFunction, Str: "Point", Params: []string{"x"}, Script: body},
		str("p"), num(5), str("Point"), op(action.GetVariable), opN(action.NewObject, 1), op(action.SetVariable),
		str("r"), str("p"), op(action.GetVariable), str("x"), op(action.GetMember), op(action.SetVariable),
	))
	test.Equate(t, globalVal(t, m, objs, "r").ToNumber(), 5)
}

func TestClosures(t *testing.T) {
	m, objs := newTestMachine(t)

	// the inner function keeps the counter's activation alive and mutates
	// it across calls
	inner := script(
		str("n"), str("n"), op(action.GetVariable), op(action.Increment), op(action.SetVariable),
		str("n"), op(action.GetVariable), op(action.Return),
	)
	counter := script(
		str("n"), num(0), op(action.DefineLocal),
		action.Instruction{Op: action.DefineFunction, Script: inner},
		op(action.Return),
	)
	run(t, m, script(
		str("c"),
		action.Instruction{Op: action.DefineFunction, Script: counter},
		opN(action.CallFunction, 0),
		op(action.SetVariable),
		str("c"), op(action.GetVariable), opN(action.CallFunction, 0), op(action.Pop),
		str("r"), str("c"), op(action.GetVariable), opN(action.CallFunction, 0), op(action.SetVariable),
	))
	test.Equate(t, globalVal(t, m, objs, "r").ToNumber(), 2)

	// the counter variable is not visible outside the closure
	test.Equate(t, globalVal(t, m, objs, "n").IsUndefined(), true)
}

func TestTryCatchFinally(t *testing.T) {
	m, objs := newTestMachine(t)

	// try { throw "boom" } catch (e) { r1 = e } finally { r2 = "fin" }
	// r3 = "after"
	s := script(
		action.Instruction{Op: action.Try, Try: &action.TryBlock{
			HasCatch: true, CatchVar: "e", CatchTarget: 3,
			HasFinally: true, FinallyTarget: 8,
			EndTarget: 12,
		}},
		str("boom"), op(action.Throw),
		str("r1"), str("e"), op(action.GetVariable), op(action.SetVariable), // 3..6
		op(action.EndTry), // 7
		str("r2"), str("fin"), op(action.SetVariable), // 8..10
		op(action.EndFinally), // 11
		str("r3"), str("after"), op(action.SetVariable), // 12..14
	)
	run(t, m, s)
	test.Equate(t, globalVal(t, m, objs, "r1").ToString(), "boom")
	test.Equate(t, globalVal(t, m, objs, "r2").ToString(), "fin")
	test.Equate(t, globalVal(t, m, objs, "r3").ToString(), "after")
}

func TestFinallyOnNormalPath(t *testing.T) {
	m, objs := newTestMachine(t)

	// try { r1 = "body" } finally { r2 = "fin" }
	s := script(
		action.Instruction{Op: action.Try, Try: &action.TryBlock{
			HasFinally: true, FinallyTarget: 5, EndTarget: 9,
		}},
		str("r1"), str("body"), op(action.SetVariable), // 1..3
		op(action.EndTry), // 4
		str("r2"), str("fin"), op(action.SetVariable), // 5..7
		op(action.EndFinally), // 8
	)
	run(t, m, s)
	test.Equate(t, globalVal(t, m, objs, "r1").ToString(), "body")
	test.Equate(t, globalVal(t, m, objs, "r2").ToString(), "fin")
}

func TestFinallyOnReturnPath(t *testing.T) {
	m, objs := newTestMachine(t)

	// function f() { try { return 1 } finally { g = 9 } }; r = f()
	body := script(
		action.Instruction{Op: action.Try, Try: &action.TryBlock{
			HasFinally: true, FinallyTarget: 4, EndTarget: 8,
		}},
		num(1), op(action.Return), // 1..2
		op(action.EndTry), // 3, unreachable
		str("g"), num(9), op(action.SetVariable), // 4..6
		op(action.EndFinally), // 7
	)
	run(t, m, script(
		str("r"),
		action.Instruction{Op: action.DefineFunction, Script: body},
		opN(action.CallFunction, 0),
		op(action.SetVariable),
	))

	// the finally body ran exactly once and the return value survived it
	test.Equate(t, globalVal(t, m, objs, "r").ToNumber(), 1)
	test.Equate(t, globalVal(t, m, objs, "g").ToNumber(), 9)
}

func TestUncaughtException(t *testing.T) {
	m, _ := newTestMachine(t)

	s := script(str("boom"), op(action.Throw))
	test.ExpectedSuccess(t, s.Validate())
	_, err := m.Execute(s, arena.Null)
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, avm.UncaughtException))

	// an uncaught exception does not disable the machine
	test.Equate(t, m.Disabled(), false)
}

func TestNativeErrorIsCatchable(t *testing.T) {
	m, objs := newTestMachine(t)

	bad := m.NewNative("bad", func(this arena.Handle, args []values.Value) (values.Value, error) {
		return values.Undefined(), curated.Errorf("native failure")
	})
	test.ExpectedSuccess(t, objs.SetProperty(m.Globals(), "bad", values.Object(bad)))

	// try { bad() } catch (e) { r = e }
	s := script(
		action.Instruction{Op: action.Try, Try: &action.TryBlock{
			HasCatch: true, CatchVar: "e", CatchTarget: 5, EndTarget: 10,
		}},
		str("bad"), op(action.GetVariable), opN(action.CallFunction, 0), // 1..3
		op(action.EndTry), // 4
		str("r"), str("e"), op(action.GetVariable), op(action.SetVariable), // 5..8
		op(action.EndTry), // 9
	)
	run(t, m, s)
	test.Equate(t, globalVal(t, m, objs, "r").ToString(), "native failure")
}

func TestStackOverflow(t *testing.T) {
	m, _ := newTestMachine(t)

	// function f() { f() }; f()
	body := script(
		str("f"), op(action.GetVariable), opN(action.CallFunction, 0), op(action.Return),
	)
	s := script(
		action.Instruction{Op: action.DefineFunction, Str: "f", Script: body},
		str("f"), op(action.GetVariable), opN(action.CallFunction, 0),
	)
	test.ExpectedSuccess(t, s.Validate())
	_, err := m.Execute(s, arena.Null)
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, avm.StackOverflow))
	test.Equate(t, m.Disabled(), true)
}

func TestStackOverflowIsNotCatchable(t *testing.T) {
	m, _ := newTestMachine(t)

	body := script(
		str("f"), op(action.GetVariable), opN(action.CallFunction, 0), op(action.Return),
	)

	// try { f() } catch (e) { r = "caught" } - the limit must not be caught
	s := script(
		action.Instruction{Op: action.DefineFunction, Str: "f", Script: body},
		action.Instruction{Op: action.Try, Try: &action.TryBlock{
			HasCatch: true, CatchVar: "e", CatchTarget: 6, EndTarget: 10,
		}},
		str("f"), op(action.GetVariable), opN(action.CallFunction, 0), // 2..4
		op(action.EndTry), // 5
		str("r"), str("caught"), op(action.SetVariable), // 6..8
		op(action.EndTry), // 9
	)
	test.ExpectedSuccess(t, s.Validate())
	_, err := m.Execute(s, arena.Null)
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, avm.StackOverflow))
}

func TestInstructionBudget(t *testing.T) {
	m, _ := newTestMachine(t)
	m.InstructionBudget = 1000

	s := script(opN(action.Jump, 0))
	test.ExpectedSuccess(t, s.Validate())
	_, err := m.Execute(s, arena.Null)
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, avm.ScriptTimeout))
	test.Equate(t, m.Disabled(), true)

	// a disabled machine refuses further work
	_, err = m.Execute(script(num(1)), arena.Null)
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, avm.MachineDisabled))
}

func TestTrace(t *testing.T) {
	m, _ := newTestMachine(t)

	var traced []string
	m.Trace = func(s string) {
		traced = append(traced, s)
	}

	run(t, m, script(
		num(1), num(2), op(action.Add), op(action.Trace),
		str("hello"), op(action.Trace),
	))
	test.Equate(t, len(traced), 2)
	test.Equate(t, traced[0], "3")
	test.Equate(t, traced[1], "hello")
}

func TestMathBuiltins(t *testing.T) {
	m, objs := newTestMachine(t)

	run(t, m, script(
		str("r"),
		num(-9), str("Math"), op(action.GetVariable), str("abs"), opN(action.CallMethod, 1),
		op(action.SetVariable),
		str("s"),
		num(2), num(10), str("Math"), op(action.GetVariable), str("pow"), opN(action.CallMethod, 2),
		op(action.SetVariable),
	))
	test.Equate(t, globalVal(t, m, objs, "r").ToNumber(), 9)
	test.Equate(t, globalVal(t, m, objs, "s").ToNumber(), 1024)
}
