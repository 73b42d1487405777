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
	"strconv"
	"strings"

	"github.com/glimmerproject/glimmer/player/values"
)

// toPrimitive converts an object value to a primitive by consulting the
// object's valueOf and then toString methods. Non-object values pass
// through. An object with neither method coerces through the value layer's
// generic forms.
func (m *Machine) toPrimitive(v values.Value) (values.Value, error) {
	if !v.IsObject() {
		return v, nil
	}

	h := v.ObjectHandle()
	for _, name := range []string{"valueOf", "toString"} {
		fn, err := m.objects.GetProperty(h, name)
		if err != nil {
			return values.Undefined(), m.asException(err)
		}
		if !fn.IsObject() {
			continue
		}
		if _, ok := m.objects.FunctionOf(fn.ObjectHandle()); !ok {
			continue
		}
		r, err := m.call(fn.ObjectHandle(), h, nil)
		if err != nil {
			return values.Undefined(), err
		}
		if !r.IsObject() {
			return r, nil
		}
	}

	return v, nil
}

// toNumber is the object-aware ToNumber.
func (m *Machine) toNumber(v values.Value) (float64, error) {
	p, err := m.toPrimitive(v)
	if err != nil {
		return 0, err
	}
	return p.ToNumber(), nil
}

// toString is the object-aware ToString.
func (m *Machine) toString(v values.Value) (string, error) {
	p, err := m.toPrimitive(v)
	if err != nil {
		return "", err
	}
	if p.IsObject() {
		return m.Stringify(p), nil
	}
	return p.ToString(), nil
}

// Stringify renders a value for diagnostics without running any script
// code. Used for trace output fallback, exception messages and
// notifications, where re-entering the interpreter would be unwelcome.
func (m *Machine) Stringify(v values.Value) string {
	if !v.IsObject() {
		return v.ToString()
	}

	h := v.ObjectHandle()

	if fn, ok := m.objects.FunctionOf(h); ok {
		if fn.Name == "" {
			return "[function]"
		}
		return "[function " + fn.Name + "]"
	}

	if m.objects.IsArray(h) {
		n := m.objects.ArrayLength(h)
		parts := make([]string, n)
		for i := 0; i < n; i++ {
			ev, err := m.objects.GetProperty(h, strconv.Itoa(i))
			if err != nil || ev.IsObject() {
				parts[i] = "..."
				continue
			}
			parts[i] = ev.ToString()
		}
		return strings.Join(parts, ",")
	}

	return v.ToString()
}

// equals is the object-aware abstract equality.
func (m *Machine) equals(a, b values.Value) (bool, error) {
	// object against object compares identity; the value layer handles it
	if a.IsObject() != b.IsObject() {
		var err error
		if a, err = m.toPrimitive(a); err != nil {
			return false, err
		}
		if b, err = m.toPrimitive(b); err != nil {
			return false, err
		}
	}
	return values.Equals(a, b), nil
}

// less is the object-aware relational comparison. The second return value
// is false when the comparison is undefined (a NaN operand).
func (m *Machine) less(a, b values.Value) (bool, bool, error) {
	pa, err := m.toPrimitive(a)
	if err != nil {
		return false, false, err
	}
	pb, err := m.toPrimitive(b)
	if err != nil {
		return false, false, err
	}
	r, ok := values.Less(pa, pb)
	return r, ok, nil
}
