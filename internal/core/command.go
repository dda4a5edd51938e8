package core

import "strings"

// Command names handled by the dispatcher.
const (
	CommandJoin  = "JOIN"
	CommandPart  = "PART"
	CommandKick  = "KICK"
	CommandMode  = "MODE"
	CommandNames = "NAMES"
	CommandQuit  = "QUIT"
)

const maxChannelNameLen = 50

// ValidChannelName reports whether name is an acceptable channel mask.
func ValidChannelName(name string) bool {
	if len(name) < 2 || len(name) > maxChannelNameLen {
		return false
	}
	if name[0] != '#' && name[0] != '&' {
		return false
	}
	return !strings.ContainsAny(name, " ,:\a\r\n")
}

// trailingText rebuilds free text from the remaining tokens.
// A leading ':' marks the start of the text on the wire and is not part of it.
func trailingText(args []string) string {
	text := strings.Join(args, " ")
	return strings.TrimPrefix(text, ":")
}

// splitTargets splits a comma-separated target list, skipping empty entries.
func splitTargets(arg string) []string {
	parts := strings.Split(arg, ",")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// targetParam strips the ':' sentinel from a nick sent as trailing text.
func targetParam(arg string) string {
	return strings.TrimPrefix(arg, ":")
}

// userLine formats a line originating from c.
func userLine(c *Client, command string, params ...string) string {
	var b strings.Builder
	b.WriteByte(':')
	b.WriteString(c.Prefix())
	b.WriteByte(' ')
	b.WriteString(command)
	for _, p := range params {
		b.WriteByte(' ')
		b.WriteString(p)
	}
	b.WriteString("\r\n")
	return b.String()
}

// withTrailing appends text as a trailing parameter when non-empty.
func withTrailing(params []string, text string) []string {
	if text == "" {
		return params
	}
	return append(params, ":"+text)
}
