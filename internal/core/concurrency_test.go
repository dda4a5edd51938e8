package core

import (
	"fmt"
	"sync"
	"testing"
)

func TestConcurrentJoinAndPartNeverLosesJoiner(t *testing.T) {
	for i := range 200 {
		d := newTestDispatcher()
		leaver := registered(t, d, "leaver")
		joiner := registered(t, d, "joiner")
		joinAll(d, "#race", leaver)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			d.Dispatch(leaver, []string{"PART", "#race"})
		}()
		go func() {
			defer wg.Done()
			d.Dispatch(joiner, []string{"JOIN", "#race"})
		}()
		wg.Wait()

		info, ok := d.Channel("#race")
		if !ok {
			t.Fatalf("iteration %d: channel deleted while joiner is inside", i)
		}
		if len(info.Members) != 1 || info.Members[0] != "joiner" {
			t.Fatalf("iteration %d: expected only joiner, got %v", i, info.Members)
		}
		checkInvariants(t, d)
	}
}

func TestConcurrentMembershipStorm(t *testing.T) {
	d := newTestDispatcher()
	const workers = 16
	channels := []string{"#a", "#b", "#c"}

	clients := make([]*Client, workers)
	for i := range clients {
		clients[i] = registered(t, d, fmt.Sprintf("w%d", i))
	}

	var wg sync.WaitGroup
	for i, c := range clients {
		wg.Add(1)
		go func(i int, c *Client) {
			defer wg.Done()
			for n := range 100 {
				name := channels[(i+n)%len(channels)]
				switch n % 4 {
				case 0, 1:
					d.Dispatch(c, []string{"JOIN", name})
				case 2:
					d.Dispatch(c, []string{"MODE", name, "+o", clients[(i+1)%workers].Nick()})
				case 3:
					d.Dispatch(c, []string{"PART", name})
				}
				drain(c)
			}
		}(i, c)
	}

	// Observe while the storm runs.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 50 {
			if msg := invariantViolation(d); msg != "" {
				t.Error(msg)
				return
			}
		}
	}()

	wg.Wait()
	<-done
	checkInvariants(t, d)

	for _, c := range clients {
		d.Disconnect(c, "")
	}
	if n := len(d.Channels()); n != 0 {
		t.Fatalf("expected registry to be empty after disconnects, got %d", n)
	}
}
