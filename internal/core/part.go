package core

// part handles PART <channel>[,<channel>...] [:reason].
func (d *Dispatcher) part(c *Client, args []string) {
	nick := c.displayNick()
	if !c.IsRegistered() {
		d.reply(c, errNotRegistered(nick))
		return
	}
	if len(args) < 2 {
		d.reply(c, errNeedMoreParams(nick, CommandPart))
		return
	}

	reason := trailingText(args[2:])
	targets := splitTargets(args[1])
	if len(targets) == 0 {
		d.reply(c, errNeedMoreParams(nick, CommandPart))
		return
	}
	for _, name := range targets {
		ch, ok := d.registry.Find(name)
		if !ok {
			d.reply(c, errNoSuchChannel(nick, name))
			continue
		}
		if !ch.HasMember(c) {
			d.reply(c, errNotOnChannel(nick, name))
			continue
		}
		d.leave(c, ch, reason)
	}
}

// leave broadcasts the PART to every member, the leaver included, then removes it.
func (d *Dispatcher) leave(c *Client, ch *Channel, reason string) {
	d.broadcast(ch, userLine(c, CommandPart, withTrailing([]string{ch.Name()}, reason)...))
	ch.RemoveMember(c)
	d.emit(Event{
		Kind:     EventParted,
		Channel:  ch.Name(),
		ClientID: c.ID(),
		Nick:     c.Nick(),
		Reason:   reason,
		Members:  ch.Len(),
	})
	d.collect(ch)
}
