package core

// join handles JOIN <channel>[,<channel>...] and JOIN 0.
func (d *Dispatcher) join(c *Client, args []string) {
	nick := c.displayNick()
	if !c.IsRegistered() {
		d.reply(c, errNotRegistered(nick))
		return
	}
	if len(args) < 2 {
		d.reply(c, errNeedMoreParams(nick, CommandJoin))
		return
	}

	if args[1] == "0" {
		for _, ch := range d.registry.ChannelsOf(c) {
			d.leave(c, ch, "")
		}
		return
	}

	targets := splitTargets(args[1])
	if len(targets) == 0 {
		d.reply(c, errNeedMoreParams(nick, CommandJoin))
		return
	}
	for _, name := range targets {
		if !ValidChannelName(name) {
			d.reply(c, errBadChanMask(nick, name))
			continue
		}
		if ch, ok := d.registry.Find(name); ok && ch.HasMember(c) {
			continue
		}
		if len(d.registry.ChannelsOf(c)) >= d.maxChannels {
			d.reply(c, errTooManyChannels(nick, name))
			continue
		}
		d.enter(c, name)
	}
}

func (d *Dispatcher) enter(c *Client, name string) {
	ch, created := d.registry.GetOrCreate(name)
	if created {
		d.log.Debug().Str("channel", ch.Name()).Str("nick", c.Nick()).Msg("channel created")
		d.emit(Event{Kind: EventChannelCreated, Channel: ch.Name(), ClientID: c.ID(), Nick: c.Nick()})
	}
	ch.AddMember(c)
	if created {
		ch.AddOperator(c)
	}
	d.emit(Event{
		Kind:     EventJoined,
		Channel:  ch.Name(),
		ClientID: c.ID(),
		Nick:     c.Nick(),
		Members:  ch.Len(),
	})

	d.broadcast(ch, userLine(c, CommandJoin, ch.Name()))
	d.sendNames(c, ch)
}

// names handles NAMES <channel>[,<channel>...].
func (d *Dispatcher) names(c *Client, args []string) {
	nick := c.displayNick()
	if !c.IsRegistered() {
		d.reply(c, errNotRegistered(nick))
		return
	}
	if len(args) < 2 {
		d.reply(c, errNeedMoreParams(nick, CommandNames))
		return
	}
	targets := splitTargets(args[1])
	if len(targets) == 0 {
		d.reply(c, errNeedMoreParams(nick, CommandNames))
		return
	}
	for _, name := range targets {
		if ch, ok := d.registry.Find(name); ok {
			d.sendNames(c, ch)
			continue
		}
		d.reply(c, numeric(CodeEndOfNames, "End of /NAMES list", nick, name))
	}
}

func (d *Dispatcher) sendNames(c *Client, ch *Channel) {
	nick := c.displayNick()
	d.reply(c, numeric(CodeNamReply, ch.namesList(), nick, "=", ch.Name()))
	d.reply(c, numeric(CodeEndOfNames, "End of /NAMES list", nick, ch.Name()))
}
