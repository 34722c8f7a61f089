// Package textutils holds small string and rune constants shared across the
// toolkit so packages don't scatter ad-hoc literals for common separators.
package textutils

const (
	EmptyStr      = ""
	ColonStr      = ":"
	PeriodStr     = "."
	SemiColonStr  = ";"
	EqualStr      = "="
	ForwardSlashStr = "/"
	CloseBraceStr = "}"
	WhiteSpaceStr = " "
	NewLineString = "\n"
)

const (
	ColonChar       = ':'
	BackSlashChar   = '\\'
	ForwardSlashChar = '/'
	DollarChar      = '$'
	EqualChar       = '='
	HashChar        = '#'
	OpenBraceChar   = '{'
	CloseBraceChar  = '}'
	ALowerChar      = 'a'
	ZLowerChar      = 'z'
	AUpperChar      = 'A'
	ZUpperChar      = 'Z'
)
