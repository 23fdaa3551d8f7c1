package marstek

import "testing"

func TestStoreSelectAndCurrent(t *testing.T) {
	var s Store

	s.Select("192.168.1.42", 31000)
	target := s.Current()
	if target.Host != "192.168.1.42" || target.Port != 31000 {
		t.Errorf("Expected 192.168.1.42:31000, got %+v", target)
	}

	// Overwrites are atomic and complete
	s.Select("10.0.0.9", 0)
	target = s.Current()
	if target.Host != "10.0.0.9" || target.Port != DefaultPort {
		t.Errorf("Expected default port %d, got %+v", DefaultPort, target)
	}
}

func TestStoreFreshMeansNoDevice(t *testing.T) {
	var s Store
	target := s.Current()
	if target.Host != "" {
		t.Errorf("Expected no selected host, got %q", target.Host)
	}
	if target.Port != DefaultPort {
		t.Errorf("Expected default port %d, got %d", DefaultPort, target.Port)
	}
}
