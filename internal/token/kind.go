package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline ends a logical line.
	Newline
	// Indent opens a block.
	Indent
	// Dedent closes a block.
	Dedent

	Ident
	IntLit
	FloatLit
	StringLit

	KwAnd
	KwAs
	KwAssert
	KwBreak
	KwClass
	KwContinue
	KwDef
	KwDel
	KwElif
	KwElse
	KwExcept
	KwExec
	KwFinally
	KwFor
	KwFrom
	KwGlobal
	KwIf
	KwImport
	KwIn
	KwIs
	KwLambda
	KwNot
	KwOr
	KwPass
	KwPrint
	KwRaise
	KwReturn
	KwTry
	KwWhile
	KwWith
	KwYield

	Plus         // +
	Minus        // -
	Star         // *
	StarStar     // **
	Slash        // /
	SlashSlash   // //
	Percent      // %
	Shl          // <<
	Shr          // >>
	Amp          // &
	Pipe         // |
	Caret        // ^
	Tilde        // ~
	Lt           // <
	Gt           // >
	LtEq         // <=
	GtEq         // >=
	EqEq         // ==
	BangEq       // != and <>
	Assign       // =
	AugAssign    // += -= *= /= //= %= **= &= |= ^= <<= >>=
	LParen       // (
	RParen       // )
	LBracket     // [
	RBracket     // ]
	LBrace       // {
	RBrace       // }
	Comma        // ,
	Colon        // :
	Dot          // .
	Semicolon    // ;
	At           // @
	Backtick     // `
	kindSentinel // keep last
)

var kindNames = [...]string{
	Invalid:    "invalid",
	EOF:        "end of input",
	Newline:    "newline",
	Indent:     "indent",
	Dedent:     "dedent",
	Ident:      "identifier",
	IntLit:     "integer",
	FloatLit:   "float",
	StringLit:  "string",
	KwAnd:      "and",
	KwAs:       "as",
	KwAssert:   "assert",
	KwBreak:    "break",
	KwClass:    "class",
	KwContinue: "continue",
	KwDef:      "def",
	KwDel:      "del",
	KwElif:     "elif",
	KwElse:     "else",
	KwExcept:   "except",
	KwExec:     "exec",
	KwFinally:  "finally",
	KwFor:      "for",
	KwFrom:     "from",
	KwGlobal:   "global",
	KwIf:       "if",
	KwImport:   "import",
	KwIn:       "in",
	KwIs:       "is",
	KwLambda:   "lambda",
	KwNot:      "not",
	KwOr:       "or",
	KwPass:     "pass",
	KwPrint:    "print",
	KwRaise:    "raise",
	KwReturn:   "return",
	KwTry:      "try",
	KwWhile:    "while",
	KwWith:     "with",
	KwYield:    "yield",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	StarStar:   "**",
	Slash:      "/",
	SlashSlash: "//",
	Percent:    "%",
	Shl:        "<<",
	Shr:        ">>",
	Amp:        "&",
	Pipe:       "|",
	Caret:      "^",
	Tilde:      "~",
	Lt:         "<",
	Gt:         ">",
	LtEq:       "<=",
	GtEq:       ">=",
	EqEq:       "==",
	BangEq:     "!=",
	Assign:     "=",
	AugAssign:  "augmented assignment",
	LParen:     "(",
	RParen:     ")",
	LBracket:   "[",
	RBracket:   "]",
	LBrace:     "{",
	RBrace:     "}",
	Comma:      ",",
	Colon:      ":",
	Dot:        ".",
	Semicolon:  ";",
	At:         "@",
	Backtick:   "`",
}

func (k Kind) String() string {
	if k < kindSentinel {
		return kindNames[k]
	}
	return "invalid"
}
