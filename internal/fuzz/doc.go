// Package fuzztests holds fuzz targets for the lexer, the parser and the
// completion engine. Run them with "go test -fuzz=<name> ./internal/fuzz".
package fuzztests
