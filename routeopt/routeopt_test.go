package routeopt

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"kurir-pintar/api/config"
)

func newTestClient(t *testing.T, upstream http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	c, err := NewClient(config.RouteAIConfig{
		GatewayURL:  srv.URL,
		APIKey:      "test-key",
		Model:       "test-model",
		Temperature: 0.3,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c, srv
}

func modelReply(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		})
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(config.RouteAIConfig{GatewayURL: "http://x", Model: "m"})
	if err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestOptimizeCountValidationBeforeCall(t *testing.T) {
	called := false
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := c.Optimize(context.Background(), []string{"only one"})
	if !errors.Is(err, ErrTooFewDestinations) {
		t.Errorf("one destination: error = %v, want ErrTooFewDestinations", err)
	}

	eleven := make([]string, 11)
	for i := range eleven {
		eleven[i] = "addr"
	}
	_, err = c.Optimize(context.Background(), eleven)
	if !errors.Is(err, ErrTooManyDestinations) {
		t.Errorf("eleven destinations: error = %v, want ErrTooManyDestinations", err)
	}

	if called {
		t.Error("count validation must reject before any outbound call")
	}
}

func TestOptimizeReorders(t *testing.T) {
	c, _ := newTestClient(t, modelReply(`{"optimizedRoute":["Jl. Thamrin 5","Jl. Sudirman 1","Jl. Gatot Subroto 10"]}`))

	plan, err := c.Optimize(context.Background(),
		[]string{"Jl. Sudirman 1", "Jl. Thamrin 5", "Jl. Gatot Subroto 10"})
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	want := []string{"Jl. Thamrin 5", "Jl. Sudirman 1", "Jl. Gatot Subroto 10"}
	if !reflect.DeepEqual(plan.Route, want) {
		t.Errorf("route = %v, want %v", plan.Route, want)
	}
	if plan.Degraded {
		t.Error("successful parse should not be degraded")
	}
}

func TestOptimizeSendsPromptAndSettings(t *testing.T) {
	var got chatRequest
	var auth string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&got)
		modelReply(`{"optimizedRoute":["A","B"]}`)(w, r)
	})

	if _, err := c.Optimize(context.Background(), []string{"A", "B"}); err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if auth != "Bearer test-key" {
		t.Errorf("Authorization = %q", auth)
	}
	if got.Model != "test-model" || got.Temperature != 0.3 {
		t.Errorf("model/temperature = %q/%v", got.Model, got.Temperature)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Role != "user" {
		t.Fatalf("want system+user messages, got %+v", got.Messages)
	}
	if !strings.Contains(got.Messages[1].Content, "1. A") || !strings.Contains(got.Messages[1].Content, "2. B") {
		t.Errorf("user prompt should number inputs from 1: %q", got.Messages[1].Content)
	}
}

func TestOptimizeIdentityFallback(t *testing.T) {
	input := []string{"A", "B", "C"}
	replies := []struct {
		name    string
		content string
	}{
		{"no json", "Sorry, I cannot help with that."},
		{"invalid json", "{oops"},
		{"no route field", `{"answer": ["C", "B", "A"]}`},
	}
	for _, tt := range replies {
		c, _ := newTestClient(t, modelReply(tt.content))
		plan, err := c.Optimize(context.Background(), input)
		if err != nil {
			t.Errorf("%s: malformed output must not be an error, got %v", tt.name, err)
			continue
		}
		if !reflect.DeepEqual(plan.Route, input) {
			t.Errorf("%s: route = %v, want input order %v", tt.name, plan.Route, input)
		}
		if !plan.Degraded {
			t.Errorf("%s: fallback plan should be marked degraded", tt.name)
		}
	}
}

func TestOptimizeNoPermutationCheck(t *testing.T) {
	// The model's list is passed through as-is, even when it drops or
	// invents addresses.
	c, _ := newTestClient(t, modelReply(`{"optimizedRoute":["X","Y"]}`))
	plan, err := c.Optimize(context.Background(), []string{"A", "B", "C"})
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	want := []string{"X", "Y"}
	if !reflect.DeepEqual(plan.Route, want) {
		t.Errorf("route = %v, want %v", plan.Route, want)
	}
}

func TestOptimizeUpstreamError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})
	_, err := c.Optimize(context.Background(), []string{"A", "B"})
	if err == nil {
		t.Fatal("expected upstream error")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error should carry the upstream status code: %v", err)
	}
}

func TestOptimizePreservesLengthForParsedReplies(t *testing.T) {
	for n := 2; n <= 10; n++ {
		input := make([]string, n)
		echoed := make([]string, n)
		for i := range input {
			input[i] = strings.Repeat("x", i+1)
			echoed[n-1-i] = input[i]
		}
		body, _ := json.Marshal(map[string][]string{"optimizedRoute": echoed})
		c, _ := newTestClient(t, modelReply(string(body)))

		plan, err := c.Optimize(context.Background(), input)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if len(plan.Route) != n {
			t.Errorf("n=%d: output length %d", n, len(plan.Route))
		}
	}
}
