package replay

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"voxdemo/logger"

	"github.com/gorilla/websocket"
)

// replayPage 回放页面：连接 WebSocket 并逐条渲染对话气泡
const replayPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>VoxDemo Conversation Replay</title>
<style>
  body { font-family: -apple-system, sans-serif; background: #0f1422; color: #eee;
         max-width: 720px; margin: 40px auto; padding: 0 16px; }
  .turn { margin: 14px 0; padding: 12px 16px; border-radius: 12px; opacity: 0;
          animation: appear .4s ease forwards; }
  @keyframes appear { to { opacity: 1; } }
  .caller { background: #1d2940; }
  .agent { background: #12402f; }
  .speaker { font-size: 12px; opacity: .7; margin-bottom: 4px; letter-spacing: .08em; }
</style>
</head>
<body>
<h2>Live call replay</h2>
<div id="log"></div>
<script>
  const ws = new WebSocket("ws://" + location.host + "/ws");
  ws.onmessage = (ev) => {
    const turn = JSON.parse(ev.data);
    const div = document.createElement("div");
    div.className = "turn " + (turn.speaker === "AVA" ? "agent" : "caller");
    div.innerHTML = '<div class="speaker">' + turn.speaker + '</div>' + turn.text;
    document.getElementById("log").appendChild(div);
    window.scrollTo(0, document.body.scrollHeight);
  };
</script>
</body>
</html>`

// WebSurface serves the replay page on a local port and pushes turns to the
// connected browser over WebSocket. The operator opens the page, starts the
// screen recorder, and the replayer paces turns through ShowTurn.
type WebSurface struct {
	addr     string
	upgrader websocket.Upgrader
	server   *http.Server
	listener net.Listener

	mu        sync.Mutex
	conn      *websocket.Conn
	connReady chan struct{}
	readyOnce sync.Once
}

// NewWebSurface creates a surface listening on addr (e.g. "127.0.0.1:7777").
func NewWebSurface(addr string) *WebSurface {
	return &WebSurface{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		connReady: make(chan struct{}),
	}
}

// URL returns the page address the operator should open.
func (s *WebSurface) URL() string {
	return "http://" + s.addr + "/"
}

// Open starts the local server and blocks until a browser tab connects or
// the context expires.
func (s *WebSurface) Open(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = listener

	router := http.NewServeMux()
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, replayPage)
	})
	router.HandleFunc("/ws", s.handleWS)

	s.server = &http.Server{Handler: router}
	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("replay surface server error", logger.ErrorField(err))
		}
	}()

	logger.Info("replay surface ready, open the page in a browser",
		logger.String("url", s.URL()))

	// 等待浏览器连接
	waitCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()
	select {
	case <-s.connReady:
		return nil
	case <-waitCtx.Done():
		return fmt.Errorf("no browser connected to replay surface: %w", waitCtx.Err())
	}
}

func (s *WebSurface) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("websocket upgrade failed", logger.ErrorField(err))
		return
	}

	s.mu.Lock()
	// 只保留最新的一个连接
	if s.conn != nil {
		s.conn.Close()
	}
	s.conn = conn
	s.mu.Unlock()

	s.readyOnce.Do(func() { close(s.connReady) })
}

// ShowTurn pushes one turn to the connected page.
func (s *WebSurface) ShowTurn(turn Turn) error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()

	if conn == nil {
		return fmt.Errorf("no browser connected")
	}
	if err := conn.WriteJSON(turn); err != nil {
		return fmt.Errorf("failed to push turn: %w", err)
	}
	return nil
}

// Wait sleeps for the pacing delay.
func (s *WebSurface) Wait(d time.Duration) {
	time.Sleep(d)
}

// Close shuts the server and connection down. Best effort; safe to call
// after a failed Open.
func (s *WebSurface) Close() error {
	s.mu.Lock()
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
	s.mu.Unlock()

	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(ctx)
	}
	return nil
}
