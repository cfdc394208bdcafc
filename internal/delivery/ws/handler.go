package ws

import "net/http"

// Handler subscribes a connection to an ingest progress room. Events are
// produced elsewhere (the knowledge ingest) and broadcast through the hub;
// the socket itself only listens until the client goes away.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			http.Error(w, "ws upgrade failed", http.StatusBadRequest)
			return
		}

		roomID := r.URL.Query().Get("room")
		if roomID == "" {
			roomID = "default"
		}

		hub.Register(roomID, conn)
		defer hub.Unregister(roomID, conn)

		hub.SendToRoom(roomID, []byte(`{"status":"subscribed"}`))

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}
