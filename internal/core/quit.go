package core

const defaultQuitReason = "Client Quit"

// quit handles QUIT [:reason]. Accepted before registration.
func (d *Dispatcher) quit(c *Client, args []string) {
	reason := trailingText(args[1:])
	if reason == "" {
		reason = defaultQuitReason
	}

	d.sweep(c, reason)
	d.send(c, "ERROR :Closing Link: "+c.Host()+" ("+reason+")\r\n")
	c.Close()
}

// sweep removes c from every channel, telling each co-member exactly once,
// and releases its nickname.
func (d *Dispatcher) sweep(c *Client, reason string) {
	channels := d.registry.ChannelsOf(c)
	if len(channels) > 0 {
		line := userLine(c, CommandQuit, ":"+reason)
		notified := map[*Client]struct{}{c: {}}
		for _, ch := range channels {
			for _, m := range ch.Members() {
				if _, done := notified[m]; done {
					continue
				}
				notified[m] = struct{}{}
				d.send(m, line)
			}
			ch.RemoveMember(c)
			d.emit(Event{
				Kind:     EventQuit,
				Channel:  ch.Name(),
				ClientID: c.ID(),
				Nick:     c.Nick(),
				Reason:   reason,
				Members:  ch.Len(),
			})
			d.collect(ch)
		}
	}
	d.directory.Release(c)
}
