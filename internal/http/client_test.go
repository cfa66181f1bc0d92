package http

import (
	nethttp "net/http"
	"testing"
)

func TestNewClient(t *testing.T) {
	client, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if client.Timeout != requestTimeout {
		t.Errorf("Timeout = %v, want %v", client.Timeout, requestTimeout)
	}

	tr, ok := client.Transport.(*nethttp.Transport)
	if !ok {
		t.Fatalf("Transport is %T, want *http.Transport", client.Transport)
	}
	if tr.Proxy == nil {
		t.Error("Proxy should come from the environment")
	}
	if !tr.ForceAttemptHTTP2 {
		t.Error("HTTP/2 should be enabled")
	}
}
