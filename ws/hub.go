// Package ws pushes refresh events to connected dashboard clients. Every
// mutation broadcasts an event so open views reload their data instead of
// polling.
package ws

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var HubInstance = NewHub()

func init() {
	go HubInstance.Run()
}

// Client is one WebSocket connection.
type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// Event tells clients which view changed and for which tenant.
type Event struct {
	Event      string `json:"event"`
	HospitalID int    `json:"hospital_id"`
}

// Hub tracks connections and fans broadcast messages out to them.
type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// BroadcastEvent serializes and queues an event for every connected client.
func (h *Hub) BroadcastEvent(event string, hospitalID int) {
	payload, err := json.Marshal(Event{Event: event, HospitalID: hospitalID})
	if err != nil {
		logrus.WithError(err).Warn("ws: failed to marshal event")
		return
	}
	h.Broadcast <- payload
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client] = true
			logrus.Debug("ws: client registered")
		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
				logrus.Debug("ws: client unregistered")
			}
		case message := <-h.Broadcast:
			for client := range h.Clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.Clients, client)
				}
			}
		}
	}
}
