package status

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/goccy/go-json"
)

// StreamHandler serves a websocket that pushes a JSON Snapshot every interval
// Client messages are ignored; the stream ends when the client closes or the request context is done
func StreamHandler(r *Registry, session string, interval time.Duration) http.Handler {
	if interval <= 0 {
		interval = time.Second
	}
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		conn, err := websocket.Accept(w, req, nil)
		if err != nil {
			log.Printf("status: websocket accept: %v", err)
			return
		}
		defer conn.CloseNow()

		ctx := conn.CloseRead(req.Context())
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			if err := writeSnapshot(ctx, conn, r, session); err != nil {
				return
			}
			select {
			case <-ctx.Done():
				conn.Close(websocket.StatusNormalClosure, "")
				return
			case <-ticker.C:
			}
		}
	})
}

func writeSnapshot(ctx context.Context, conn *websocket.Conn, r *Registry, session string) error {
	s := r.Snapshot()
	s.Session = session
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	writeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return conn.Write(writeCtx, websocket.MessageText, data)
}
