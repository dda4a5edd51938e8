package core

// kick handles KICK <channel> <nick> [:reason].
// An operator may kick itself; that is an ordinary removal.
func (d *Dispatcher) kick(c *Client, args []string) {
	nick := c.displayNick()
	if !c.IsRegistered() {
		d.reply(c, errNotRegistered(nick))
		return
	}
	if len(args) < 3 {
		d.reply(c, errNeedMoreParams(nick, CommandKick))
		return
	}

	name, targetNick := args[1], targetParam(args[2])
	ch, ok := d.registry.Find(name)
	if !ok {
		d.reply(c, errNoSuchChannel(nick, name))
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
	target, ok := ch.MemberByNick(targetNick)
	if !ok {
		d.reply(c, errUserNotInChannel(nick, targetNick, name))
		return
	}

	reason := trailingText(args[3:])
	if reason == "" {
		reason = c.Nick()
	}

	d.broadcast(ch, userLine(c, CommandKick, ch.Name(), target.Nick(), ":"+reason))
	ch.RemoveMember(target)
	d.emit(Event{
		Kind:     EventKicked,
		Channel:  ch.Name(),
		ClientID: c.ID(),
		Nick:     c.Nick(),
		Target:   target.Nick(),
		Reason:   reason,
		Members:  ch.Len(),
	})
	d.collect(ch)
}
