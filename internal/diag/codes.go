package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003
	LexBadIndent          Code = 1004
	LexUnbalancedBracket  Code = 1005

	// Синтаксические
	SynUnexpectedToken  Code = 2001
	SynExpectIdentifier Code = 2002
	SynExpectColon      Code = 2003
	SynExpectBlock      Code = 2004
	SynUnclosedParen    Code = 2005
	SynUnclosedBracket  Code = 2006
	SynUnclosedBrace    Code = 2007
	SynBadAssignTarget  Code = 2008
	SynExpectExpression Code = 2009
	SynTooManyErrors    Code = 2010
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexUnknownChar:        "Unknown character",
	LexUnterminatedString: "Unterminated string literal",
	LexBadNumber:          "Malformed number literal",
	LexBadIndent:          "Inconsistent indentation",
	LexUnbalancedBracket:  "Unbalanced closing bracket",
	SynUnexpectedToken:    "Unexpected token",
	SynExpectIdentifier:   "Expected identifier",
	SynExpectColon:        "Expected ':'",
	SynExpectBlock:        "Expected an indented block",
	SynUnclosedParen:      "Unclosed parenthesis",
	SynUnclosedBracket:    "Unclosed bracket",
	SynUnclosedBrace:      "Unclosed brace",
	SynBadAssignTarget:    "Cannot assign to expression",
	SynExpectExpression:   "Expected expression",
	SynTooManyErrors:      "Too many errors",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
