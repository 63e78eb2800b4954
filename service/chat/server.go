package chat

import (
	"relaychat/service/storage"
	"relaychat/service/store"
)

type ServerConf struct {
	NodeID        string
	SendQueueSize int
}

func (c *ServerConf) norm() {
	if c.NodeID == "" {
		c.NodeID = "relay_gw-1"
	}
	if c.SendQueueSize <= 0 {
		c.SendQueueSize = 64
	}
}

// Server owns the per-node relay wiring: the session registry, the
// message router and the frame dispatcher, plus the optional Redis
// presence mirror. Everything is injected at startup; there is no
// package-level registry state.
type Server struct {
	conf     ServerConf
	registry *Registry
	router   *Router
	disp     *Dispatcher
	presence *storage.Presence
}

// NewServer wires the relay core around the given store. presence may be
// nil, which disables the mirror.
func NewServer(conf ServerConf, st store.Store, presence *storage.Presence) *Server {
	conf.norm()
	registry := NewRegistry()
	s := &Server{
		conf:     conf,
		registry: registry,
		router:   NewRouter(registry, st),
		disp:     NewDispatcher(),
		presence: presence,
	}
	return s
}

func (s *Server) NodeID() string              { return s.conf.NodeID }
func (s *Server) Registry() *Registry         { return s.registry }
func (s *Server) Router() *Router             { return s.router }
func (s *Server) Disp() *Dispatcher           { return s.disp }
func (s *Server) Presence() *storage.Presence { return s.presence }
