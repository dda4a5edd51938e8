package core

import "strings"

type opChange struct {
	grant  bool
	target *Client
}

// mode handles MODE <channel> [<modes> [<nick>...]] for the operator flag.
func (d *Dispatcher) mode(c *Client, args []string) {
	nick := c.displayNick()
	if !c.IsRegistered() {
		d.reply(c, errNotRegistered(nick))
		return
	}
	if len(args) < 2 {
		d.reply(c, errNeedMoreParams(nick, CommandMode))
		return
	}

	name := args[1]
	ch, ok := d.registry.Find(name)
	if !ok {
		d.reply(c, errNoSuchChannel(nick, name))
		return
	}
	if len(args) == 2 {
		d.reply(c, &Reply{Code: CodeChannelModeIs, Params: []string{nick, ch.Name()}, Text: "+"})
		return
	}
	if !ch.HasMember(c) {
		d.reply(c, errNotOnChannel(nick, name))
		return
	}
	if !ch.IsOperator(c) {
		d.reply(c, errChanOPrivsNeeded(nick, name))
		return
	}

	modes := args[2]
	for _, r := range modes {
		if r != '+' && r != '-' && r != 'o' {
			d.reply(c, errUnknownMode(nick, r))
			return
		}
	}

	var changes []opChange
	grant, argi := true, 3
	for _, r := range modes {
		switch r {
		case '+':
			grant = true
		case '-':
			grant = false
		case 'o':
			if argi >= len(args) {
				d.reply(c, errNeedMoreParams(nick, CommandMode))
				return
			}
			targetNick := targetParam(args[argi])
			argi++
			target, ok := ch.MemberByNick(targetNick)
			if !ok {
				d.reply(c, errUserNotInChannel(nick, targetNick, name))
				return
			}
			changes = append(changes, opChange{grant: grant, target: target})
		}
	}

	d.applyOpChanges(c, ch, changes)
}

func (d *Dispatcher) applyOpChanges(c *Client, ch *Channel, changes []opChange) {
	var (
		flags   strings.Builder
		targets []string
		sign    byte
	)
	for _, change := range changes {
		kind := EventOpGranted
		want := byte('+')
		if change.grant {
			if !ch.AddOperator(change.target) {
				continue
			}
		} else {
			if !ch.RemoveOperator(change.target) {
				continue
			}
			kind, want = EventOpRevoked, '-'
		}
		if sign != want {
			flags.WriteByte(want)
			sign = want
		}
		flags.WriteByte('o')
		targets = append(targets, change.target.Nick())
		d.emit(Event{
			Kind:     kind,
			Channel:  ch.Name(),
			ClientID: c.ID(),
			Nick:     c.Nick(),
			Target:   change.target.Nick(),
			Members:  ch.Len(),
		})
	}
	if len(targets) == 0 {
		return
	}

	params := append([]string{ch.Name(), flags.String()}, targets...)
	d.broadcast(ch, userLine(c, CommandMode, params...))
}
