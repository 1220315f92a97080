package plan

import "fmt"

// Bank identifies one of the four storage areas of the plan mini-language.
type Bank uint8

const (
	// BankU is the first input sequence.
	BankU Bank = iota
	// BankV is the second input sequence.
	BankV
	// BankT is the growable temporary area.
	BankT
	// BankR is the fixed-size output array.
	BankR
)

// String returns the mini-language name of the bank.
func (b Bank) String() string {
	switch b {
	case BankU:
		return "u"
	case BankV:
		return "v"
	case BankT:
		return "t"
	case BankR:
		return "r"
	}
	return "?"
}

// Ref is a storage slot reference of the form u[i], v[i], t[j] or r[k].
type Ref struct {
	Bank  Bank
	Index int
}

// String renders the reference in mini-language syntax.
func (r Ref) String() string {
	return fmt.Sprintf("%s[%d]", r.Bank, r.Index)
}

// Op is the operation of a scheduled statement.
type Op uint8

const (
	// OpMul multiplies all operands.
	OpMul Op = iota
	// OpAdd sums all operands.
	OpAdd
	// OpSub subtracts the second operand from the first.
	OpSub
	// OpNeg negates the single operand.
	OpNeg
	// OpCopy passes an input slot through to an output slot.
	OpCopy
)

// Instr is one statement of a compiled plan: compute Op over Args and store
// the value in Dst. Dst is always a t[j] or r[k] slot; Args are slots whose
// values are defined by earlier instructions or by the inputs.
type Instr struct {
	Op   Op
	Dst  Ref
	Args []Ref
}

// String renders the full statement in mini-language syntax, for example
// "t[0] = u[1]*v[1]".
func (in Instr) String() string {
	return in.Dst.String() + " = " + in.expr()
}

// expr renders the right-hand side of the instruction in mini-language
// syntax.
func (in Instr) expr() string {
	switch in.Op {
	case OpMul:
		return joinRefs(in.Args, "*")
	case OpAdd:
		return joinRefs(in.Args, "+")
	case OpSub:
		return in.Args[0].String() + "-" + in.Args[1].String()
	case OpNeg:
		return "-" + in.Args[0].String()
	case OpCopy:
		return in.Args[0].String()
	}
	return ""
}

func joinRefs(refs []Ref, sep string) string {
	s := ""
	for i, r := range refs {
		if i > 0 {
			s += sep
		}
		s += r.String()
	}
	return s
}
