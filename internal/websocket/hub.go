// internal/websocket/hub.go
package websocket

import (
	"context"
	"log"
	"sync"

	wstypes "garimoto-service/internal/domain/ws"
	"garimoto-service/internal/pkg/jwt"
	"garimoto-service/internal/pkg/session"
)

// SnapshotFunc materializes the current inventory for a freshly subscribed
// client, so the client's "loading" state ends with real data rather than an
// explicit re-fetch.
type SnapshotFunc func(ctx context.Context) (interface{}, error)

type Hub struct {
	// Registered clients by identity ID; anonymous storefront visitors share
	// identity 0.
	clients map[int64]map[*Client]bool
	mu      sync.RWMutex

	// Registration/unregistration
	Register   chan *Client
	unregister chan *Client

	// Broadcasting
	broadcast chan *BroadcastMessage

	// Inventory snapshot provider, set once at wiring time
	snapshot SnapshotFunc

	// Auth dependencies
	jwtManager     *jwt.Manager
	sessionManager *session.Manager
}

type BroadcastMessage struct {
	IdentityIDs []int64
	Channel     wstypes.ChannelType
	Message     *wstypes.WSMessage
}

func NewHub(jwtManager *jwt.Manager, sessionManager *session.Manager) *Hub {
	return &Hub{
		clients:        make(map[int64]map[*Client]bool),
		Register:       make(chan *Client),
		unregister:     make(chan *Client),
		broadcast:      make(chan *BroadcastMessage, 256),
		jwtManager:     jwtManager,
		sessionManager: sessionManager,
	}
}

// SetSnapshotFunc installs the inventory snapshot provider.
func (h *Hub) SetSnapshotFunc(fn SnapshotFunc) {
	h.snapshot = fn
}

// AuthenticateClient validates the JWT token and returns the client identity.
// An empty token yields an anonymous (storefront) identity limited to the
// inventory channel.
func (h *Hub) AuthenticateClient(ctx context.Context, token string) (*ClientAuth, error) {
	if token == "" {
		return &ClientAuth{}, nil
	}

	claims, err := h.jwtManager.Verify(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	blacklisted, err := h.sessionManager.IsTokenBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return nil, ErrTokenBlacklisted
	}

	sessionData, err := h.sessionManager.GetSession(ctx, claims.IdentityID, claims.ID)
	if err != nil {
		return nil, ErrSessionExpired
	}

	return &ClientAuth{
		IdentityID: claims.IdentityID,
		SessionID:  claims.ID,
		Roles:      claims.Roles,
		Email:      sessionData.Email,
	}, nil
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.BroadcastMessage(msg)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.identityID] == nil {
		h.clients[client.identityID] = make(map[*Client]bool)
	}
	h.clients[client.identityID][client] = true

	log.Printf("Client connected: identity=%d, total=%d", client.identityID, h.totalClients())

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeConnected, map[string]interface{}{
		"identity_id": client.identityID,
		"roles":       client.roles,
	}))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.identityID]; ok {
		if _, exists := clients[client]; exists {
			delete(clients, client)
			client.Close()

			if len(clients) == 0 {
				delete(h.clients, client.identityID)
			}

			log.Printf("Client disconnected: identity=%d, total=%d", client.identityID, h.totalClients())
		}
	}
}

func (h *Hub) BroadcastMessage(msg *BroadcastMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if msg.IdentityIDs == nil {
		// Broadcast to all
		for _, clients := range h.clients {
			for client := range clients {
				if client.IsSubscribed(msg.Channel) {
					client.SendMessage(msg.Message)
				}
			}
		}
		return
	}

	// Broadcast to specific identities
	for _, identityID := range msg.IdentityIDs {
		if clients, ok := h.clients[identityID]; ok {
			for client := range clients {
				if client.IsSubscribed(msg.Channel) {
					client.SendMessage(msg.Message)
				}
			}
		}
	}
}

// sendSnapshot pushes the current inventory to one client, right after it
// subscribes to the inventory channel.
func (h *Hub) sendSnapshot(ctx context.Context, client *Client) {
	if h.snapshot == nil {
		return
	}
	data, err := h.snapshot(ctx)
	if err != nil {
		client.SendError("snapshot_failed", "Failed to load inventory snapshot", err.Error())
		return
	}
	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeInventorySnapshot, data))
}

func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.totalClients()
}

// Public methods for broadcasting

// BroadcastVehicleChange pushes a created/updated/deleted event to every
// inventory subscriber, admin and storefront alike.
func (h *Hub) BroadcastVehicleChange(event wstypes.EventType, vehicleID string, v interface{}) {
	msg := wstypes.NewMessage(event, &wstypes.VehicleEventData{
		VehicleID: vehicleID,
		Vehicle:   v,
	})
	h.broadcast <- &BroadcastMessage{
		IdentityIDs: nil,
		Channel:     wstypes.ChannelInventory,
		Message:     msg,
	}
}

// BroadcastSale notifies admin sales subscribers of a completed sale.
func (h *Hub) BroadcastSale(vehicleID string, v interface{}) {
	msg := wstypes.NewMessage(wstypes.EventTypeVehicleSold, &wstypes.VehicleEventData{
		VehicleID: vehicleID,
		Vehicle:   v,
	})
	h.broadcast <- &BroadcastMessage{
		IdentityIDs: nil,
		Channel:     wstypes.ChannelSales,
		Message:     msg,
	}
}

// ForceLogout tells every session of an identity to re-authenticate.
func (h *Hub) ForceLogout(identityID int64, sessionID string, reason string) {
	msg := wstypes.NewMessage(wstypes.EventTypeForceLogout, wstypes.SessionEventData{
		SessionID: sessionID,
		Reason:    reason,
		Message:   "You have been logged out",
	})
	h.broadcast <- &BroadcastMessage{
		IdentityIDs: []int64{identityID},
		Channel:     wstypes.ChannelSystem,
		Message:     msg,
	}
}

func (h *Hub) totalClients() int {
	total := 0
	for _, clients := range h.clients {
		total += len(clients)
	}
	return total
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for client := range clients {
			client.Close()
		}
	}
}
