package debuglog

import (
	"errors"
	"testing"
)

func TestS2BRoundTrip(t *testing.T) {
	s := "hello"
	b := s2b(s)
	if string(b) != s {
		t.Fatalf("s2b(%q) = %q", s, b)
	}
}

func TestS2BEmpty(t *testing.T) {
	if b := s2b(""); b != nil {
		t.Fatalf("s2b(\"\") = %v, want nil", b)
	}
}

func TestErrorAndMessageDoNotPanic(t *testing.T) {
	Error("opsfile", errors.New("malformed line 3"))
	Error("opsfile", nil)
	Message("opsfile", "loaded 1000 elements")
}
