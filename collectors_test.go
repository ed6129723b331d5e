package bgpsim

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchCollectorProjects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"collectors":{
			"rrc00": {"project": "ris"},
			"route-views2": {"project": "routeviews"}
		}}}`))
	}))
	defer srv.Close()

	orig := brokerCollectorsURL
	brokerCollectorsURL = srv.URL
	defer func() { brokerCollectorsURL = orig }()

	projects, err := FetchCollectorProjects(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if projects["rrc00"] != "ris" {
		t.Errorf("rrc00: got %q, want %q", projects["rrc00"], "ris")
	}
	if projects["route-views2"] != "routeviews" {
		t.Errorf("route-views2: got %q, want %q", projects["route-views2"], "routeviews")
	}
}

func TestFetchCollectorProjectsRejectsMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	orig := brokerCollectorsURL
	brokerCollectorsURL = srv.URL
	defer func() { brokerCollectorsURL = orig }()

	if _, err := FetchCollectorProjects(context.Background()); err == nil {
		t.Fatal("expected an error for a malformed broker response")
	}
}
