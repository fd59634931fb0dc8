package parser

import (
	"scriptsense/internal/ast"
	"scriptsense/internal/token"
)

// Таблица приоритетов для арифметических и битовых операторов.
// Чем больше число, тем выше приоритет; все левоассоциативные.
// ** разбирается отдельно в parsePower.
const (
	precBitwiseOr      = 1 // |
	precBitwiseXor     = 2 // ^
	precBitwiseAnd     = 3 // &
	precShift          = 4 // << >>
	precAdditive       = 5 // + -
	precMultiplicative = 6 // * / // %
)

func binaryPrec(kind token.Kind) (int, ast.BinaryOp, bool) {
	switch kind {
	case token.Pipe:
		return precBitwiseOr, ast.BinBitOr, true
	case token.Caret:
		return precBitwiseXor, ast.BinBitXor, true
	case token.Amp:
		return precBitwiseAnd, ast.BinBitAnd, true
	case token.Shl:
		return precShift, ast.BinShl, true
	case token.Shr:
		return precShift, ast.BinShr, true
	case token.Plus:
		return precAdditive, ast.BinAdd, true
	case token.Minus:
		return precAdditive, ast.BinSub, true
	case token.Star:
		return precMultiplicative, ast.BinMul, true
	case token.Slash:
		return precMultiplicative, ast.BinDiv, true
	case token.SlashSlash:
		return precMultiplicative, ast.BinFloorDiv, true
	case token.Percent:
		return precMultiplicative, ast.BinMod, true
	}
	return -1, 0, false
}

// augOp maps the text of an augmented assignment token to its operator.
func augOp(text string) ast.BinaryOp {
	switch text {
	case "+=":
		return ast.BinAdd
	case "-=":
		return ast.BinSub
	case "*=":
		return ast.BinMul
	case "/=":
		return ast.BinDiv
	case "//=":
		return ast.BinFloorDiv
	case "%=":
		return ast.BinMod
	case "**=":
		return ast.BinPow
	case "&=":
		return ast.BinBitAnd
	case "|=":
		return ast.BinBitOr
	case "^=":
		return ast.BinBitXor
	case "<<=":
		return ast.BinShl
	default:
		return ast.BinShr
	}
}
