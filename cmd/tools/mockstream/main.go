// mockstream is a stand-in for the platform's order event feed. It serves
// the same WebSocket path the real backend exposes and walks a synthetic
// order through the delivery lifecycle, so the tracking screen can be
// exercised without the platform running.
//
//	go run ./cmd/tools/mockstream -addr :8001 -interval 5s -cancel
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type orderEvent struct {
	Order map[string]any `json:"order"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

func main() {
	addr := flag.String("addr", ":8001", "listen address")
	interval := flag.Duration("interval", 5*time.Second, "delay between lifecycle events")
	cancel := flag.Bool("cancel", false, "cancel the order instead of delivering it")
	repeatFinal := flag.Int("repeat-final", 1, "times to send the final event (tests dedup)")
	flag.Parse()

	http.HandleFunc("/ws/orders/", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		log.Printf("client connected: %s %s", r.RemoteAddr, r.URL.Path)
		feed(conn, *interval, *cancel, *repeatFinal)
	})

	log.Printf("mock order stream on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, nil))
}

func feed(conn *websocket.Conn, interval time.Duration, cancelOrder bool, repeatFinal int) {
	orderID := uuid.NewString()
	now := time.Now()
	placedAt := now.Format("03:04 PM")
	eta := now.Add(35 * time.Minute).Format("03:04 PM")

	base := map[string]any{
		"order_id":      orderID,
		"placed_at":     placedAt,
		"delivery_time": eta,
		"total_amount":  "420.00", // decimal string, like the real backend
		"items": []map[string]any{
			{"name": "Masala Chai", "quantity": 2, "price": "60.00"},
			{"name": "Butter Biscuits", "quantity": 1, "price": "300.00"},
		},
		"delivery_address": "221B Baker Street",
	}

	statuses := []string{"placed", "assigned", "out_for_delivery"}
	for _, status := range statuses {
		payload := clone(base)
		payload["delivery_status"] = status
		if status != "placed" {
			payload["assigned_to"] = map[string]any{
				"name":         "Ravi Kumar",
				"phone_number": "9876543210",
			}
		}
		if !send(conn, payload) {
			return
		}
		log.Printf("sent %s for %s", status, orderID)
		time.Sleep(interval)
	}

	final := "delivered"
	if cancelOrder {
		final = "cancelled"
	}
	for i := 0; i < repeatFinal; i++ {
		payload := clone(base)
		payload["delivery_status"] = final
		if !send(conn, payload) {
			return
		}
		log.Printf("sent %s for %s (%d/%d)", final, orderID, i+1, repeatFinal)
		time.Sleep(interval / 2)
	}
	fmt.Println("lifecycle complete")
}

func send(conn *websocket.Conn, order map[string]any) bool {
	b, err := json.Marshal(orderEvent{Order: order})
	if err != nil {
		log.Printf("marshal: %v", err)
		return false
	}
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		log.Printf("write: %v", err)
		return false
	}
	return true
}

func clone(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
