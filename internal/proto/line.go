package proto

import (
	"errors"
	"strings"
)

// MaxLineBytes is the RFC 1459 line limit including CRLF.
const MaxLineBytes = 512

var (
	// ErrEmptyLine is returned for a line with no command.
	ErrEmptyLine = errors.New("empty line")
	// ErrLineTooLong is returned when a line exceeds the configured limit.
	ErrLineTooLong = errors.New("line too long")
)

// Tokenize splits one inbound line into whitespace-separated tokens.
// A leading ":prefix" is dropped and the command is upper-cased.
// Trailing text keeps its ':' sentinel on the first token so handlers can
// rebuild free text.
func Tokenize(raw string) ([]string, error) {
	line := TrimEOL(raw)
	fields := strings.Fields(line)
	if len(fields) > 0 && strings.HasPrefix(fields[0], ":") {
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return nil, ErrEmptyLine
	}
	fields[0] = strings.ToUpper(fields[0])
	return fields, nil
}

// TrimEOL strips a trailing CRLF or LF.
func TrimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// Trailing returns the free text from a token list, without its ':' sentinel.
func Trailing(tokens []string) string {
	return strings.TrimPrefix(strings.Join(tokens, " "), ":")
}

// Param returns tokens[i] with any ':' sentinel removed, or "".
func Param(tokens []string, i int) string {
	if i < 0 || i >= len(tokens) {
		return ""
	}
	return strings.TrimPrefix(tokens[i], ":")
}

// Server formats a line from the server itself: ":server COMMAND params...".
func Server(server, command string, params ...string) string {
	var b strings.Builder
	if server != "" {
		b.WriteByte(':')
		b.WriteString(server)
		b.WriteByte(' ')
	}
	b.WriteString(command)
	for _, p := range params {
		b.WriteByte(' ')
		b.WriteString(p)
	}
	b.WriteString("\r\n")
	return b.String()
}
