// Manual smoke client for a running stack: creates an order, then
// follows it over the tracking websocket. Not part of the test suite.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/websocket"
)

func main() {
	token := os.Getenv("SMOKE_TOKEN")
	if token == "" {
		fmt.Println("SMOKE_TOKEN is required")
		return
	}

	orderID := createTestOrder(token)
	if orderID == "" {
		return
	}

	trackOrder(token, orderID)
}

func createTestOrder(token string) string {
	order := map[string]interface{}{
		"pickup_address": "Jl. Merdeka 1, Jakarta",
		"delivery_type":  "direct",
		"destinations": []map[string]interface{}{
			{"address": "Jl. Sudirman 1", "contact_name": "Budi", "contact_phone": "0812000001"},
			{"address": "Jl. Thamrin 5", "contact_name": "Sari", "contact_phone": "0812000002"},
		},
	}

	jsonData, _ := json.Marshal(order)
	req, _ := http.NewRequest(http.MethodPost,
		"http://localhost:8080/api/v1/orders", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Failed to create order: %v\n", err)
		return ""
	}
	defer resp.Body.Close()

	var created struct {
		ID          string `json:"id"`
		OrderNumber string `json:"order_number"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		fmt.Printf("Failed to decode order response: %v\n", err)
		return ""
	}
	fmt.Printf("Order created: %s (%s), status: %d\n", created.OrderNumber, created.ID, resp.StatusCode)
	return created.ID
}

func trackOrder(token, orderID string) {
	url := fmt.Sprintf("ws://localhost:8080/track?order_id=%s&token=%s", orderID, token)
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		fmt.Printf("Failed to connect to tracking: %v\n", err)
		return
	}
	defer c.Close()

	for {
		var update map[string]interface{}
		if err := c.ReadJSON(&update); err != nil {
			fmt.Printf("Tracking closed: %v\n", err)
			return
		}
		fmt.Printf("Tracking update: %v\n", update)
	}
}
