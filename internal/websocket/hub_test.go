// internal/websocket/hub_test.go
package websocket

import (
	"context"
	"testing"
	"time"

	wstypes "garimoto-service/internal/domain/ws"
)

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestCloseIsIdempotent(t *testing.T) {
	hub := NewHub(nil, nil)
	client := NewClient(hub, nil, &ClientAuth{})

	client.Close()
	client.Close() // second close must be a no-op, not a panic
}

// A subscriber that stops draining its send buffer gets dropped by the hub.
// Dropping it must not close its channel twice and must not block the hub's
// own broadcast loop.
func TestSlowSubscriberIsDropped(t *testing.T) {
	hub := NewHub(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := NewClient(hub, nil, &ClientAuth{})
	hub.Register <- client
	waitFor(t, func() bool { return hub.TotalClients() == 1 }, "client never registered")

	if !client.Subscribe(wstypes.ChannelInventory) {
		t.Fatal("inventory channel should be open to anonymous clients")
	}

	// Nobody runs WritePump here, so the buffer only ever fills up.
	for {
		select {
		case client.send <- []byte("backlog"):
			continue
		default:
		}
		break
	}

	// Broadcasting into the full buffer must disconnect the client instead of
	// crashing or wedging the hub goroutine.
	for i := 0; i < 5; i++ {
		hub.BroadcastVehicleChange(wstypes.EventTypeVehicleUpdated, "veh-1", nil)
	}

	waitFor(t, func() bool { return hub.TotalClients() == 0 }, "slow client was never dropped")

	// The hub must still accept new clients afterwards.
	replacement := NewClient(hub, nil, &ClientAuth{})
	hub.Register <- replacement
	waitFor(t, func() bool { return hub.TotalClients() == 1 }, "hub stopped registering clients")
}
