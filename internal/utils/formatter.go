package utils

import (
	"fmt"
	"go/format"
	"go/parser"
	"go/token"
)

// FormatGoCode formats source the way gofmt does. On failure the error
// carries the parser position when the source does not parse.
func FormatGoCode(source []byte) ([]byte, error) {
	formatted, err := format.Source(source)
	if err == nil {
		return formatted, nil
	}
	if perr := ValidateGoCode(source); perr != nil {
		return nil, fmt.Errorf("invalid Go syntax: %w", perr)
	}
	return nil, err
}

// ValidateGoCode checks that source parses as a Go file.
func ValidateGoCode(source []byte) error {
	_, err := parser.ParseFile(token.NewFileSet(), "", source, parser.ParseComments)
	return err
}
