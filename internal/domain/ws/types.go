// internal/domain/ws/types.go
package ws

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents different real-time event types
type EventType string

const (
	// Connection events
	EventTypePing         EventType = "ping"
	EventTypePong         EventType = "pong"
	EventTypeConnected    EventType = "connected"
	EventTypeDisconnected EventType = "disconnected"
	EventTypeError        EventType = "error"

	// Subscription events
	EventTypeSubscribe   EventType = "subscribe"
	EventTypeUnsubscribe EventType = "unsubscribe"

	// Inventory events (server -> client)
	EventTypeInventorySnapshot EventType = "inventory:snapshot"
	EventTypeVehicleCreated    EventType = "inventory:vehicle_created"
	EventTypeVehicleUpdated    EventType = "inventory:vehicle_updated"
	EventTypeVehicleDeleted    EventType = "inventory:vehicle_deleted"

	// Sales events (server -> client)
	EventTypeVehicleSold EventType = "sales:vehicle_sold"

	// Session events
	EventTypeForceLogout EventType = "session:force_logout"
)

// WSMessage is the universal message format
type WSMessage struct {
	Type      EventType              `json:"type"`
	Data      interface{}            `json:"data,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	ID        string                 `json:"id,omitempty"`
}

// Subscription channels that clients can subscribe to
type ChannelType string

const (
	ChannelInventory ChannelType = "inventory"
	ChannelSales     ChannelType = "sales"
	ChannelSystem    ChannelType = "system"
)

// SubscribeRequest sent by client to subscribe to specific channels
type SubscribeRequest struct {
	Channels []ChannelType `json:"channels"`
}

// UnsubscribeRequest sent by client to unsubscribe from channels
type UnsubscribeRequest struct {
	Channels []ChannelType `json:"channels"`
}

// ErrorData for error events
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// VehicleEventData carries the changed record id (and the record itself for
// create/update) so subscribed clients can patch their materialized set
// without a re-fetch.
type VehicleEventData struct {
	VehicleID string      `json:"vehicle_id"`
	Vehicle   interface{} `json:"vehicle,omitempty"`
}

// SessionEventData for session events
type SessionEventData struct {
	SessionID string `json:"session_id"`
	Reason    string `json:"reason"`
	Message   string `json:"message"`
}

// NewMessage builds a timestamped message.
func NewMessage(eventType EventType, data interface{}) *WSMessage {
	return &WSMessage{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// ParseMessage decodes a raw client frame.
func ParseMessage(raw []byte) (*WSMessage, error) {
	var msg WSMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	if msg.Type == "" {
		return nil, fmt.Errorf("message type is required")
	}
	return &msg, nil
}

// ToJSON encodes a message for the wire.
func (m *WSMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
