package api

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
)

func orcidServer(t *testing.T) *httptest.Server {
	t.Helper()

	router := mux.NewRouter()
	router.HandleFunc("/0000-0001", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Write([]byte(`{"name":{"given-names":{"value":"Jane"},"family-name":{"value":"Doe"}}}`))
	})
	router.HandleFunc("/0000-0002", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Write([]byte(`{"name":{"given-names":{"value":"Prince"},"family-name":{"value":""}}}`))
	})
	router.HandleFunc("/0000-0003", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Write([]byte(`{"name":{}}`))
	})
	router.HandleFunc("/0000-0404", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusNotFound)
		w.Write([]byte(`{"message":"no such profile"}`))
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchDisplayName(t *testing.T) {
	srv := orcidServer(t)
	client := newTestClient(t, srv.URL, "")

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"given and family", "/0000-0001", "Jane Doe", false},
		{"given only", "/0000-0002", "Prince", false},
		{"no name at all", "/0000-0003", AnonymousName, false},
		{"lookup failure", "/0000-0404", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := client.FetchDisplayName(context.Background(), srv.URL+tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("FetchDisplayName() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("FetchDisplayName() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FetchDisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveAuthorNamesDegradesGracefully(t *testing.T) {
	srv := orcidServer(t)
	client := newTestClient(t, srv.URL, "")

	patches := []Patch{
		{URL: "p1", CreatedBy: srv.URL + "/0000-0001"},
		{URL: "p2", CreatedBy: srv.URL + "/0000-0404"},
		{URL: "p3", CreatedBy: ""},
		{URL: "p4", CreatedBy: srv.URL + "/0000-0002"},
	}

	names := client.ResolveAuthorNames(context.Background(), patches)
	if len(names) != len(patches) {
		t.Fatalf("len(names) = %d, want %d", len(names), len(patches))
	}

	if names[0] != "Jane Doe" {
		t.Errorf("names[0] = %q, want Jane Doe", names[0])
	}
	// A failed lookup shows the error text for that row only.
	if !strings.Contains(names[1], "no such profile") {
		t.Errorf("names[1] = %q, want the lookup error text", names[1])
	}
	if names[2] != AnonymousName {
		t.Errorf("names[2] = %q, want %q", names[2], AnonymousName)
	}
	if names[3] != "Prince" {
		t.Errorf("names[3] = %q, want Prince", names[3])
	}
}
