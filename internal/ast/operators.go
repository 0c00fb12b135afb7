package ast

// BooleanOperator is the operator of an n-ary BoolOp node.
type BooleanOperator int

const (
	BoolOpAnd BooleanOperator = iota
	BoolOpOr
)

func (op BooleanOperator) String() string {
	if op == BoolOpAnd {
		return "and"
	}
	return "or"
}

// UnaryOperator is the operator of a UnaryOp node.
type UnaryOperator int

const (
	UnaryOpNot UnaryOperator = iota
	UnaryOpUAdd
	UnaryOpUSub
	UnaryOpInvert
)

func (op UnaryOperator) String() string {
	switch op {
	case UnaryOpNot:
		return "not "
	case UnaryOpUAdd:
		return "+"
	case UnaryOpUSub:
		return "-"
	case UnaryOpInvert:
		return "~"
	}
	return "?"
}

// BinaryOperator is the operator of a BinOp node.
type BinaryOperator int

const (
	BinOpAdd BinaryOperator = iota
	BinOpSub
	BinOpMult
	BinOpMatMult
	BinOpDiv
	BinOpMod
	BinOpPow
	BinOpLShift
	BinOpRShift
	BinOpBitOr
	BinOpBitXor
	BinOpBitAnd
	BinOpFloorDiv
)

var binOpNames = map[BinaryOperator]string{
	BinOpAdd:      "+",
	BinOpSub:      "-",
	BinOpMult:     "*",
	BinOpMatMult:  "@",
	BinOpDiv:      "/",
	BinOpMod:      "%",
	BinOpPow:      "**",
	BinOpLShift:   "<<",
	BinOpRShift:   ">>",
	BinOpBitOr:    "|",
	BinOpBitXor:   "^",
	BinOpBitAnd:   "&",
	BinOpFloorDiv: "//",
}

func (op BinaryOperator) String() string {
	if name, ok := binOpNames[op]; ok {
		return name
	}
	return "?"
}

// ComparisonOperator is one operator of a chained Compare node.
type ComparisonOperator int

const (
	CompOpLt ComparisonOperator = iota
	CompOpGt
	CompOpLtE
	CompOpGtE
	CompOpEq
	CompOpNotEq
	CompOpIn
	CompOpNotIn
	CompOpIs
	CompOpIsNot
)

var compOpNames = map[ComparisonOperator]string{
	CompOpLt:    "<",
	CompOpGt:    ">",
	CompOpLtE:   "<=",
	CompOpGtE:   ">=",
	CompOpEq:    "==",
	CompOpNotEq: "!=",
	CompOpIn:    "in",
	CompOpNotIn: "not in",
	CompOpIs:    "is",
	CompOpIsNot: "is not",
}

func (op ComparisonOperator) String() string {
	if name, ok := compOpNames[op]; ok {
		return name
	}
	return "?"
}
