package marstek

import "sync"

// DefaultPort is the UDP port Marstek batteries listen on.
const DefaultPort = 30000

// Target is a read-only copy of the selected device address. An empty
// Host means no device has been selected.
type Target struct {
	Host string `json:"host,omitempty"`
	Port int    `json:"port"`
}

// Store holds the currently selected device. Its lock covers only the
// two-field read/write: consumers copy the target out and release the
// lock before any network exchange, which may block for a full timeout.
type Store struct {
	mu   sync.Mutex
	host string
	port int
}

// Select overwrites the stored target. A non-positive port selects the
// default port 30000.
func (s *Store) Select(host string, port int) {
	if port <= 0 {
		port = DefaultPort
	}
	s.mu.Lock()
	s.host = host
	s.port = port
	s.mu.Unlock()
}

// Current returns a snapshot of the stored target.
func (s *Store) Current() Target {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port == 0 {
		return Target{Host: s.host, Port: DefaultPort}
	}
	return Target{Host: s.host, Port: s.port}
}
