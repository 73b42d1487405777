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

package action

import "github.com/glimmerproject/glimmer/curated"

// Sentinel error patterns for script validation. A failed validation always
// fails the load of the whole document.
const (
	InvalidBranch  = "script error: instruction %d: branch target out of range (%d)"
	InvalidTry     = "script error: instruction %d: malformed try region"
	MissingBody    = "script error: instruction %d: function definition without a body"
	UnknownOpcode  = "script error: instruction %d: unknown opcode (%d)"
	MissingTryInfo = "script error: instruction %d: try instruction without region information"
)

// TryBlock describes one structured exception region. The targets are
// instruction indices into the owning script.
//
// Every TryBlock has at least one of a catch or a finally entry. EndTarget
// is the first instruction after the whole construct and is jumped to once
// the region has completed.
type TryBlock struct {
	HasCatch    bool
	CatchVar    string
	CatchTarget int

	HasFinally    bool
	FinallyTarget int

	EndTarget int
}

// Instruction is a single decoded operation. The operand fields are used
// according to the opcode; unused fields are left at their zero value.
type Instruction struct {
	Op Opcode

	Number float64 // PushNumber
	Str    string  // PushString
	Bool   bool    // PushBool
	Int    int     // Jump/If target, InitObject/InitArray count, call argument count

	Params []string // DefineFunction parameter names
	Script *Script  // DefineFunction body
	Try    *TryBlock
}

// Script is a validated sequence of instructions. Execution begins at
// instruction zero and terminates by running off the end or by an explicit
// Return.
type Script struct {
	Instructions []Instruction
}

// Validate checks every branch target, try region and nested function body.
// The interpreter assumes a script that has passed validation; a script that
// has not must never reach it.
func (s *Script) Validate() error {
	limit := len(s.Instructions)

	inRange := func(target int) bool {
		// a target equal to the instruction count is a jump to the end of
		// the script, which is a normal termination
		return target >= 0 && target <= limit
	}

	for i, ins := range s.Instructions {
		if ins.Op < 0 || ins.Op >= numOpcodes {
			return curated.Errorf(UnknownOpcode, i, int(ins.Op))
		}

		switch ins.Op {
		case Jump, If:
			if !inRange(ins.Int) {
				return curated.Errorf(InvalidBranch, i, ins.Int)
			}

		case Try:
			if ins.Try == nil {
				return curated.Errorf(MissingTryInfo, i)
			}
			t := ins.Try
			if !t.HasCatch && !t.HasFinally {
				return curated.Errorf(InvalidTry, i)
			}
			if t.HasCatch && !inRange(t.CatchTarget) {
				return curated.Errorf(InvalidBranch, i, t.CatchTarget)
			}
			if t.HasFinally && !inRange(t.FinallyTarget) {
				return curated.Errorf(InvalidBranch, i, t.FinallyTarget)
			}
			if !inRange(t.EndTarget) {
				return curated.Errorf(InvalidBranch, i, t.EndTarget)
			}

		case DefineFunction:
			if ins.Script == nil {
				return curated.Errorf(MissingBody, i)
			}
			if err := ins.Script.Validate(); err != nil {
				return err
			}
		}
	}

	return nil
}
