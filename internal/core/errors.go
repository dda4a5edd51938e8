package core

import (
	"errors"
	"strings"
)

// Numeric reply codes used by the dispatcher.
const (
	CodeWelcome           = "001"
	CodeChannelModeIs     = "324"
	CodeNamReply          = "353"
	CodeEndOfNames        = "366"
	CodeNoSuchChannel     = "403"
	CodeTooManyChannels   = "405"
	CodeUnknownCommand    = "421"
	CodeNoNicknameGiven   = "431"
	CodeErroneousNickname = "432"
	CodeNicknameInUse     = "433"
	CodeUserNotInChannel  = "441"
	CodeNotOnChannel      = "442"
	CodeNotRegistered     = "451"
	CodeNeedMoreParams    = "461"
	CodeAlreadyRegistered = "462"
	CodePasswdMismatch    = "464"
	CodeUnknownMode       = "472"
	CodeBadChanMask       = "476"
	CodeChanOPrivsNeeded  = "482"
)

var (
	ErrNickInUse   = errors.New("nickname is already in use")
	ErrNickInvalid = errors.New("erroneous nickname")
)

// Reply is a numeric line addressed to a single client.
type Reply struct {
	Code   string
	Params []string
	Text   string
}

// Line renders the reply as a CRLF-terminated wire line.
func (r *Reply) Line() string {
	var b strings.Builder
	b.WriteString(r.Code)
	for _, p := range r.Params {
		b.WriteByte(' ')
		b.WriteString(p)
	}
	b.WriteString(" :")
	b.WriteString(r.Text)
	b.WriteString("\r\n")
	return b.String()
}

func (r *Reply) Error() string {
	return strings.TrimSuffix(r.Line(), "\r\n")
}

func numeric(code string, text string, params ...string) *Reply {
	return &Reply{Code: code, Params: params, Text: text}
}

func errNotRegistered(nick string) *Reply {
	return numeric(CodeNotRegistered, "You have not registered", nick)
}

func errNeedMoreParams(nick, command string) *Reply {
	return numeric(CodeNeedMoreParams, "Not enough parameters", nick, command)
}

func errNoSuchChannel(nick, channel string) *Reply {
	return numeric(CodeNoSuchChannel, "No such channel", nick, channel)
}

func errNotOnChannel(nick, channel string) *Reply {
	return numeric(CodeNotOnChannel, "You're not on that channel", nick, channel)
}

func errChanOPrivsNeeded(nick, channel string) *Reply {
	return numeric(CodeChanOPrivsNeeded, "You're not channel operator", nick, channel)
}

func errUserNotInChannel(nick, target, channel string) *Reply {
	return numeric(CodeUserNotInChannel, "They aren't on that channel", nick, target, channel)
}

func errBadChanMask(nick, channel string) *Reply {
	return numeric(CodeBadChanMask, "Bad Channel Mask", nick, channel)
}

func errTooManyChannels(nick, channel string) *Reply {
	return numeric(CodeTooManyChannels, "You have joined too many channels", nick, channel)
}

func errUnknownMode(nick string, mode rune) *Reply {
	return numeric(CodeUnknownMode, "is unknown mode char to me", nick, string(mode))
}

func errUnknownCommand(nick, command string) *Reply {
	return numeric(CodeUnknownCommand, "Unknown command", nick, command)
}
