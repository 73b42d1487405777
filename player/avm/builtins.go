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
	"strings"

	"github.com/glimmerproject/glimmer/player/arena"
	"github.com/glimmerproject/glimmer/player/values"
)

// installBuiltins populates the global object. Note the absence of any
// source of nondeterminism: no random numbers, no clock. Identical input
// must produce identical output.
func (m *Machine) installBuiltins() {
	m.objectProto = m.objects.NewObject(arena.Null)
	m.functionProto = m.objects.NewObject(m.objectProto)
	m.arrayProto = m.objects.NewObject(m.objectProto)
	m.globals = m.objects.NewObject(m.objectProto)

	set := func(obj arena.Handle, name string, v values.Value) {
		// these objects are freshly made and cannot be stale
		_ = m.objects.SetProperty(obj, name, v)
	}
	fn := func(obj arena.Handle, name string, f func(this arena.Handle, args []values.Value) (values.Value, error)) {
		set(obj, name, values.Object(m.NewNative(name, f)))
	}
	arg := func(args []values.Value, i int) values.Value {
		if i < len(args) {
			return args[i]
		}
		return values.Undefined()
	}

	// Object.prototype
	fn(m.objectProto, "hasOwnProperty", func(this arena.Handle, args []values.Value) (values.Value, error) {
		return values.Boolean(m.objects.HasOwnProperty(this, arg(args, 0).ToString())), nil
	})
	fn(m.objectProto, "toString", func(this arena.Handle, args []values.Value) (values.Value, error) {
		return values.String(m.Stringify(values.Object(this))), nil
	})

	// Array.prototype
	fn(m.arrayProto, "push", func(this arena.Handle, args []values.Value) (values.Value, error) {
		n := m.objects.ArrayLength(this)
		for _, v := range args {
			if err := m.objects.SetProperty(this, strconv.Itoa(n), v); err != nil {
				return values.Undefined(), err
			}
			n++
		}
		return values.Number(float64(n)), nil
	})
	fn(m.arrayProto, "pop", func(this arena.Handle, args []values.Value) (values.Value, error) {
		n := m.objects.ArrayLength(this)
		if n == 0 {
			return values.Undefined(), nil
		}
		v, err := m.objects.GetProperty(this, strconv.Itoa(n-1))
		if err != nil {
			return values.Undefined(), err
		}
		if err := m.objects.SetProperty(this, "length", values.Number(float64(n-1))); err != nil {
			return values.Undefined(), err
		}
		return v, nil
	})
	fn(m.arrayProto, "join", func(this arena.Handle, args []values.Value) (values.Value, error) {
		sep := ","
		if !arg(args, 0).IsUndefined() {
			sep = arg(args, 0).ToString()
		}
		n := m.objects.ArrayLength(this)
		parts := make([]string, n)
		for i := 0; i < n; i++ {
			v, err := m.objects.GetProperty(this, strconv.Itoa(i))
			if err != nil {
				return values.Undefined(), err
			}
			s, err := m.toString(v)
			if err != nil {
				return values.Undefined(), err
			}
			parts[i] = s
		}
		return values.String(strings.Join(parts, sep)), nil
	})

	// constructors
	objectCtor := m.NewNative("Object", func(this arena.Handle, args []values.Value) (values.Value, error) {
		return values.Undefined(), nil
	})
	set(objectCtor, "prototype", values.Object(m.objectProto))
	set(m.globals, "Object", values.Object(objectCtor))

	arrayCtor := m.NewNative("Array", func(this arena.Handle, args []values.Value) (values.Value, error) {
		arr := m.objects.NewArray(m.arrayProto)
		if len(args) == 1 && args[0].Kind() == values.KindNumber {
			if err := m.objects.SetProperty(arr, "length", args[0]); err != nil {
				return values.Undefined(), err
			}
			return values.Object(arr), nil
		}
		for i, v := range args {
			if err := m.objects.SetProperty(arr, strconv.Itoa(i), v); err != nil {
				return values.Undefined(), err
			}
		}
		return values.Object(arr), nil
	})
	set(arrayCtor, "prototype", values.Object(m.arrayProto))
	set(m.globals, "Array", values.Object(arrayCtor))

	// Math
	mathObj := m.objects.NewObject(m.objectProto)
	set(m.globals, "Math", values.Object(mathObj))
	set(mathObj, "PI", values.Number(math.Pi))
	set(mathObj, "E", values.Number(math.E))

	math1 := func(name string, f func(float64) float64) {
		fn(mathObj, name, func(this arena.Handle, args []values.Value) (values.Value, error) {
			n, err := m.toNumber(arg(args, 0))
			if err != nil {
				return values.Undefined(), err
			}
			return values.Number(f(n)), nil
		})
	}
	math1("abs", math.Abs)
	math1("floor", math.Floor)
	math1("ceil", math.Ceil)
	math1("round", func(f float64) float64 { return math.Floor(f + 0.5) })
	math1("sqrt", math.Sqrt)

	math2 := func(name string, f func(a, b float64) float64) {
		fn(mathObj, name, func(this arena.Handle, args []values.Value) (values.Value, error) {
			a, err := m.toNumber(arg(args, 0))
			if err != nil {
				return values.Undefined(), err
			}
			b, err := m.toNumber(arg(args, 1))
			if err != nil {
				return values.Undefined(), err
			}
			return values.Number(f(a, b)), nil
		})
	}
	math2("min", math.Min)
	math2("max", math.Max)
	math2("pow", math.Pow)

	// global functions and constants
	fn(m.globals, "isNaN", func(this arena.Handle, args []values.Value) (values.Value, error) {
		n, err := m.toNumber(arg(args, 0))
		if err != nil {
			return values.Undefined(), err
		}
		return values.Boolean(math.IsNaN(n)), nil
	})
	fn(m.globals, "parseFloat", func(this arena.Handle, args []values.Value) (values.Value, error) {
		s := strings.TrimSpace(arg(args, 0).ToString())
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return values.Number(math.NaN()), nil
		}
		return values.Number(f), nil
	})
	fn(m.globals, "parseInt", func(this arena.Handle, args []values.Value) (values.Value, error) {
		s := strings.TrimSpace(arg(args, 0).ToString())
		base := 10
		if b := arg(args, 1); !b.IsUndefined() {
			base = int(b.ToNumber())
		}
		n, err := strconv.ParseInt(s, base, 64)
		if err != nil {
			return values.Number(math.NaN()), nil
		}
		return values.Number(float64(n)), nil
	})
	fn(m.globals, "String", func(this arena.Handle, args []values.Value) (values.Value, error) {
		s, err := m.toString(arg(args, 0))
		if err != nil {
			return values.Undefined(), err
		}
		return values.String(s), nil
	})
	fn(m.globals, "Number", func(this arena.Handle, args []values.Value) (values.Value, error) {
		n, err := m.toNumber(arg(args, 0))
		if err != nil {
			return values.Undefined(), err
		}
		return values.Number(n), nil
	})
	set(m.globals, "Infinity", values.Number(math.Inf(1)))
	set(m.globals, "NaN", values.Number(math.NaN()))
}
