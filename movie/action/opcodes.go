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

// Opcode is the operation field of a decoded instruction.
type Opcode int

// The instruction set. One consistent dialect for the whole document.
const (
	// stack
	PushNumber Opcode = iota
	PushString
	PushBool
	PushUndefined
	PushNull
	Pop
	Dup
	Swap

	// arithmetic. all arithmetic is performed in double precision
	Add
	Subtract
	Multiply
	Divide
	Modulo
	Increment
	Decrement

	// comparison
	Equals
	StrictEquals
	Less
	Greater

	// logic
	Not
	And
	Or

	// bitwise. operands are coerced to 32-bit two's-complement integers
	// before the operation and back to double afterwards
	BitAnd
	BitOr
	BitXor
	ShiftLeft
	ShiftRight
	ShiftRightUnsigned

	// control flow. branch targets are instruction indices
	Jump
	If

	// variables. names are popped from the stack
	GetVariable
	SetVariable
	DefineLocal

	// objects and members
	GetMember
	SetMember
	DeleteMember
	NewObject
	InitObject
	InitArray

	// functions
	DefineFunction
	CallFunction
	CallMethod
	Return

	// exceptions
	Throw
	Try
	EndTry
	EndFinally

	// miscellaneous
	TypeOf
	Trace

	// sentinel. not a real opcode
	numOpcodes
)

var opcodeNames = []string{
	"PUSHN", "PUSHS", "PUSHB", "PUSHU", "PUSHNULL",
	"POP", "DUP", "SWAP",
	"ADD", "SUB", "MUL", "DIV", "MOD", "INC", "DEC",
	"EQ", "SEQ", "LT", "GT",
	"NOT", "AND", "OR",
	"BAND", "BOR", "BXOR", "SHL", "SHR", "USHR",
	"JMP", "IF",
	"GETVAR", "SETVAR", "DEFLOCAL",
	"GETMEM", "SETMEM", "DELMEM", "NEW", "INITOBJ", "INITARR",
	"DEFFN", "CALLFN", "CALLMETH", "RET",
	"THROW", "TRY", "ENDTRY", "ENDFIN",
	"TYPEOF", "TRACE",
}

func (op Opcode) String() string {
	if op < 0 || int(op) >= len(opcodeNames) {
		return "???"
	}
	return opcodeNames[op]
}
