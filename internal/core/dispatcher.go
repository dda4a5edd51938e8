package core

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const defaultMaxChannels = 20

// Dispatcher validates membership commands, mutates the registry and
// multicasts the resulting lines. Each command runs as one critical section.
type Dispatcher struct {
	mu        sync.Mutex
	registry  *Registry
	directory *Directory

	sink        EventSink
	log         *zerolog.Logger
	maxChannels int
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithEventSink routes committed events to sink.
func WithEventSink(sink EventSink) Option {
	return func(d *Dispatcher) {
		if sink != nil {
			d.sink = sink
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.log = logger
		}
	}
}

// WithMaxChannels caps how many channels a single client may be in.
func WithMaxChannels(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.maxChannels = n
		}
	}
}

// NewDispatcher builds a dispatcher over reg and dir.
func NewDispatcher(reg *Registry, dir *Directory, opts ...Option) *Dispatcher {
	if reg == nil {
		reg = NewRegistry()
	}
	if dir == nil {
		dir = NewDirectory()
	}
	nop := zerolog.Nop()
	d := &Dispatcher{
		registry:    reg,
		directory:   dir,
		sink:        nopSink{},
		log:         &nop,
		maxChannels: defaultMaxChannels,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Directory returns the nickname index shared with the registration glue.
func (d *Dispatcher) Directory() *Directory { return d.directory }

// Dispatch runs one tokenized command for c. args[0] is the command name.
// Protocol errors are written to c; nothing is returned.
func (d *Dispatcher) Dispatch(c *Client, args []string) {
	if len(args) == 0 {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	switch cmd := strings.ToUpper(args[0]); cmd {
	case CommandJoin:
		d.join(c, args)
	case CommandPart:
		d.part(c, args)
	case CommandKick:
		d.kick(c, args)
	case CommandMode:
		d.mode(c, args)
	case CommandNames:
		d.names(c, args)
	case CommandQuit:
		d.quit(c, args)
	default:
		if !c.IsRegistered() {
			d.reply(c, errNotRegistered(c.displayNick()))
			return
		}
		d.reply(c, errUnknownCommand(c.displayNick(), cmd))
	}
}

// Disconnect removes c from every channel after its connection went away.
// Safe to call after QUIT; the second call is a no-op.
func (d *Dispatcher) Disconnect(c *Client, reason string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if reason == "" {
		reason = "Connection closed"
	}
	d.sweep(c, reason)
	c.Close()
}

// ChannelInfo is a read-only view of one channel.
type ChannelInfo struct {
	Name      string
	Members   []string
	Operators []string
	CreatedAt time.Time
}

// Channels returns a consistent view of every live channel.
func (d *Dispatcher) Channels() []ChannelInfo {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]ChannelInfo, 0, d.registry.Len())
	for _, name := range d.registry.Names() {
		ch, _ := d.registry.Find(name)
		out = append(out, channelInfo(ch))
	}
	return out
}

// Channel returns a view of the named channel.
func (d *Dispatcher) Channel(name string) (ChannelInfo, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ch, ok := d.registry.Find(name)
	if !ok {
		return ChannelInfo{}, false
	}
	return channelInfo(ch), true
}

func channelInfo(ch *Channel) ChannelInfo {
	info := ChannelInfo{Name: ch.Name(), CreatedAt: ch.CreatedAt()}
	for _, m := range ch.Members() {
		info.Members = append(info.Members, m.Nick())
	}
	for _, op := range ch.Operators() {
		info.Operators = append(info.Operators, op.Nick())
	}
	sortFold(info.Members)
	sortFold(info.Operators)
	return info
}

// Inspect runs fn with the registry while holding the dispatcher lock.
func (d *Dispatcher) Inspect(fn func(*Registry)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d.registry)
}

func (d *Dispatcher) reply(c *Client, r *Reply) {
	d.send(c, r.Line())
}

func (d *Dispatcher) send(c *Client, line string) {
	if !c.Send(line) && !c.Closed() {
		d.log.Warn().Str("client_id", c.ID()).Str("nick", c.Nick()).Msg("outbound queue full, line dropped")
	}
}

func (d *Dispatcher) broadcast(ch *Channel, line string) {
	for _, m := range ch.Members() {
		d.send(m, line)
	}
}

func (d *Dispatcher) emit(ev Event) {
	ev.At = time.Now()
	d.sink.Record(ev)
}

// collect deletes ch from the registry if the step just emptied it.
func (d *Dispatcher) collect(ch *Channel) {
	if !ch.Empty() {
		return
	}
	d.registry.Remove(ch.Name())
	d.log.Debug().Str("channel", ch.Name()).Int("peak", ch.Peak()).Msg("channel destroyed")
	d.emit(Event{Kind: EventChannelDestroyed, Channel: ch.Name(), Peak: ch.Peak()})
}
