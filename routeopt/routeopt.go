// Package routeopt orders delivery stops by asking an external
// chat-completion model for an efficient visiting sequence. No
// geocoding or distance math happens here; the model is trusted as a
// black-box permuter and anything it returns that cannot be parsed
// degrades silently to the original input order.
package routeopt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"kurir-pintar/api/config"
)

const (
	MinDestinations = 2
	MaxDestinations = 10
)

var (
	ErrTooFewDestinations  = fmt.Errorf("at least %d destinations required", MinDestinations)
	ErrTooManyDestinations = fmt.Errorf("at most %d destinations allowed", MaxDestinations)
)

const systemPrompt = `You are a delivery route optimization assistant. Your task is to order destination addresses by proximity so the courier drives the most efficient route.

Consider:
1. A logical geographic sequence
2. Minimizing total travel distance
3. Avoiding back-and-forth routes

Respond only with JSON in this structure:
{
  "optimizedRoute": ["address1", "address2", "address3", ...]
}`

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Plan is the outcome of one optimization call. Degraded is set when
// the model's reply could not be parsed and Route is just the input
// echoed back; callers decide whether to surface that.
type Plan struct {
	Route    []string `json:"optimizedRoute"`
	Degraded bool     `json:"-"`
}

type Client struct {
	gatewayURL  string
	apiKey      string
	model       string
	temperature float64
	httpc       *http.Client
}

func NewClient(cfg config.RouteAIConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("route optimizer: API key is not configured")
	}
	return &Client{
		gatewayURL:  cfg.GatewayURL,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		httpc:       &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// Optimize submits the addresses to the model and returns them in the
// order it suggests. Count violations fail before any network call.
// Upstream transport or HTTP failures are returned as errors; a reply
// that merely fails to parse is not an error, the input order comes
// back unchanged with Plan.Degraded set.
func (c *Client) Optimize(ctx context.Context, destinations []string) (*Plan, error) {
	if len(destinations) < MinDestinations {
		return nil, ErrTooFewDestinations
	}
	if len(destinations) > MaxDestinations {
		return nil, ErrTooManyDestinations
	}

	reply, err := c.complete(ctx, destinations)
	if err != nil {
		return nil, err
	}

	route, err := extractRoute(reply)
	if err != nil {
		log.Printf("Route extraction failed (%v), using original order", err)
		return &Plan{Route: destinations, Degraded: true}, nil
	}
	return &Plan{Route: route}, nil
}

func (c *Client) complete(ctx context.Context, destinations []string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt(destinations)},
		},
		Temperature: c.temperature,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("AI gateway request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errText, _ := io.ReadAll(resp.Body)
		log.Printf("AI gateway error: %d %s", resp.StatusCode, errText)
		return "", fmt.Errorf("AI gateway error: %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode AI gateway response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("AI gateway response has no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

func userPrompt(destinations []string) string {
	var b strings.Builder
	b.WriteString("Optimize the delivery route order for the following addresses, sequencing them from nearest to each other:\n\n")
	for i, dest := range destinations {
		fmt.Fprintf(&b, "%d. %s\n", i+1, dest)
	}
	b.WriteString("\nReturn the most efficient order as JSON.")
	return b.String()
}
