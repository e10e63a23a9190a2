package utils

import (
	"fmt"
	"strings"
)

// SyntaxError reports an unterminated quote or trailing escape in a
// command line.
type SyntaxError struct {
	Input  string
	Offset int // byte offset of the opening quote or the backslash
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d in %q", e.Reason, e.Offset, e.Input)
}

// SplitArgs splits a command line into argv the way a POSIX shell would
// for plain words, single and double quotes and backslash escapes. No
// expansion is performed. A blank line yields no arguments.
func SplitArgs(line string) ([]string, error) {
	var (
		args    []string
		word    strings.Builder
		inWord  bool
		quote   rune
		quoteAt int
		escAt   = -1
	)
	for i, r := range line {
		switch {
		case escAt >= 0:
			word.WriteRune(r)
			escAt = -1
		case quote != 0:
			if r == quote {
				quote = 0
			} else if r == '\\' && quote == '"' {
				escAt = i
			} else {
				word.WriteRune(r)
			}
		case r == '\\':
			escAt, inWord = i, true
		case r == '"' || r == '\'':
			quote, quoteAt, inWord = r, i, true
		case r == ' ' || r == '\t' || r == '\n':
			if inWord {
				args = append(args, word.String())
				word.Reset()
				inWord = false
			}
		default:
			word.WriteRune(r)
			inWord = true
		}
	}

	switch {
	case quote != 0:
		return nil, &SyntaxError{Input: line, Offset: quoteAt, Reason: fmt.Sprintf("unterminated %c quote", quote)}
	case escAt >= 0:
		return nil, &SyntaxError{Input: line, Offset: escAt, Reason: "trailing backslash"}
	}
	if inWord {
		args = append(args, word.String())
	}
	return args, nil
}
