package solver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tour-planning-service/internal/ports"
)

func testProblem() *ports.Problem {
	return &ports.Problem{
		Vehicles: []ports.Vehicle{{ID: "truck-1", TypeID: "moving_truck"}},
		Shipments: []ports.Shipment{{
			ID:   "job-1",
			Size: []int{1},
		}},
	}
}

func TestSolveDecodesSolution(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			t.Fatalf("missing api key, got query %q", r.URL.RawQuery)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("content type = %q", ct)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"solution": {
				"costs": 123.4,
				"distance": 50000,
				"routes": [{
					"vehicle_id": "truck-1",
					"distance": 50000,
					"transport_time": 3600,
					"activities": [
						{"type": "start"},
						{"type": "pickupShipment", "id": "job-1", "arr_time": 100, "end_time": 200},
						{"type": "deliverShipment", "id": "job-1", "arr_time": 300, "end_time": 400},
						{"type": "end"}
					]
				}],
				"unassigned": {"shipments": [], "details": []}
			}
		}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "test-key", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	solution, err := c.Solve(context.Background(), testProblem())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(solution.Routes) != 1 || solution.Routes[0].VehicleID != "truck-1" {
		t.Fatalf("unexpected solution: %+v", solution)
	}
	if solution.Routes[0].Activities[1].ID != "job-1" {
		t.Fatalf("unexpected activities: %+v", solution.Routes[0].Activities)
	}
}

// An HTML body is an authentication failure, never a JSON-parse panic
// escaping to the caller.
func TestSolveHTMLBodyIsAuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<!DOCTYPE html>\n<html><body>Please sign in</body></html>"))
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, "wrong-key", 0)

	_, err := c.Solve(context.Background(), testProblem())

	var auth *ports.AuthError
	if !errors.As(err, &auth) {
		t.Fatalf("err = %v, want AuthError", err)
	}
	if auth.System != ports.SystemSolver {
		t.Fatalf("system = %q, want solver", auth.System)
	}
}

func TestSolveStructured4xxIsValidationFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": "bad problem", "hints": [{"message": "shipment job-1 has no size", "details": "set size"}]}`))
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, "test-key", 0)

	_, err := c.Solve(context.Background(), testProblem())

	var verr *ports.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if verr.Status != http.StatusBadRequest || len(verr.Causes) != 2 {
		t.Fatalf("unexpected validation error: %+v", verr)
	}
	if verr.Causes[1].Message != "shipment job-1 has no size" {
		t.Fatalf("unexpected cause: %+v", verr.Causes[1])
	}
}

func TestSolveNetworkErrorIsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse all connections

	c, _ := NewClient(srv.URL, "test-key", 0)

	_, err := c.Solve(context.Background(), testProblem())

	var terr *ports.TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("err = %v, want TransportError", err)
	}
}

func TestSolve5xxIsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"message": "upstream exploded"}`))
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, "test-key", 0)

	_, err := c.Solve(context.Background(), testProblem())

	var terr *ports.TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("err = %v, want TransportError", err)
	}
}

func TestNewClientRequiresCredentials(t *testing.T) {
	if _, err := NewClient("https://solver.example.com", "", 0); err == nil {
		t.Fatal("expected error for empty api key")
	}
	if _, err := NewClient("", "key", 0); err == nil {
		t.Fatal("expected error for empty base url")
	}
}
