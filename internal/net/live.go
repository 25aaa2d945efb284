package net

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"SketchBoard3D/internal/extrude"
	"SketchBoard3D/internal/service"
)

// LiveRequest is one websocket message. Every message is an independent invocation.
type LiveRequest struct {
	ID string `json:"id,omitempty"`
	service.Request
}

// LiveResponse answers the LiveRequest with the same ID.
type LiveResponse struct {
	ID     string         `json:"id"`
	Shapes []extrude.Spec `json:"shapes"`
	Error  string         `json:"error,omitempty"`
}

// Peer is one live websocket connection.
type Peer struct {
	Conn *websocket.Conn
	mu   sync.Mutex
}

// Send writes v as one JSON message.
func (p *Peer) Send(v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Conn.WriteJSON(v)
}

// PeerManager tracks live websocket connections.
type PeerManager struct {
	peers map[string]*Peer
	mu    sync.RWMutex
}

func NewPeerManager() *PeerManager {
	return &PeerManager{
		peers: make(map[string]*Peer),
	}
}

func (pm *PeerManager) Add(peer *Peer) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	addr := peer.Conn.RemoteAddr().String()
	pm.peers[addr] = peer
	log.Printf("[WS] Peer connected from %s", addr)
}

func (pm *PeerManager) Remove(peer *Peer) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	addr := peer.Conn.RemoteAddr().String()
	delete(pm.peers, addr)
	log.Printf("[WS] Peer disconnected: %s", addr)
}

// Len returns the number of connected peers.
func (pm *PeerManager) Len() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers)
}

// CloseAll sends a close frame to every peer and drops the connections.
func (pm *PeerManager) CloseAll() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	for addr, p := range pm.peers {
		p.mu.Lock()
		_ = p.Conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		p.mu.Unlock()
		_ = p.Conn.Close()
		delete(pm.peers, addr)
	}
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade failed: %v", err)
		return
	}
	conn.SetReadLimit(s.maxBody)

	peer := &Peer{Conn: conn}
	s.peers.Add(peer)
	defer func() {
		s.peers.Remove(peer)
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[WS] Read from %s failed: %v", conn.RemoteAddr(), err)
			}
			return
		}

		var msg LiveRequest
		if err := json.Unmarshal(data, &msg); err != nil {
			if err := peer.Send(LiveResponse{Error: "invalid JSON: " + err.Error()}); err != nil {
				return
			}
			continue
		}
		if msg.ID == "" {
			msg.ID = uuid.NewString()
		}

		out := LiveResponse{ID: msg.ID}
		resp, err := s.svc.Vectorize(msg.Request)
		if err != nil {
			_, body := statusFor(err)
			out.Error = body.Error
			log.Printf("[WS] Message %q from %s failed: %v", msg.ID, conn.RemoteAddr(), err)
		} else {
			out.Shapes = resp.Shapes
		}
		if err := peer.Send(out); err != nil {
			log.Printf("[WS] Write to %s failed: %v", conn.RemoteAddr(), err)
			return
		}
	}
}
