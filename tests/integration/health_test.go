package integration

import (
	"net/http"
	"testing"
	"time"
)

func TestHealthEndpoints(t *testing.T) {
	skipIfNotRunning(t)

	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(baseURL() + "/health/live")
	if err != nil {
		t.Fatalf("liveness request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("liveness: got %d, want 200", resp.StatusCode)
	}

	resp, err = client.Get(baseURL() + "/health/ready")
	if err != nil {
		t.Fatalf("readiness request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("readiness: got %d, want 200 (are postgres and redis up?)", resp.StatusCode)
	}

	resp, err = client.Get(baseURL() + "/metrics")
	if err != nil {
		t.Fatalf("metrics request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("metrics: got %d, want 200", resp.StatusCode)
	}
}
