package controllers

import (
	"encoding/json"
	"time"

	"github.com/MatheusTerradasDEV/ChapaQuente/internal/board"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/ctx"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/sse"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/ws"
)

// keepaliveInterval bounds how long a proxy sees an idle event stream.
const keepaliveInterval = 25 * time.Second

// FeedController streams board change events to connected admin screens,
// over WebSocket or as server-sent events for clients behind strict proxies.
type FeedController struct {
	hub   *ws.Hub
	board *board.Board
}

func NewFeedController(hub *ws.Hub, b *board.Board) *FeedController {
	return &FeedController{hub: hub, board: b}
}

// Socket handles GET /api/admin/orders/ws.
func (f *FeedController) Socket(c *ctx.Context) {
	ws.Upgrade(c.W, c.R, f.hub)
}

// Events handles GET /api/admin/orders/events. Each board event is pushed
// as an "order" SSE event; comments keep the connection alive in between.
func (f *FeedController) Events(c *ctx.Context) {
	stream := sse.New(c.W, c.R)
	if stream == nil {
		return
	}

	events, cancel := f.board.Subscribe()
	defer cancel()

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	stream.Comment("connected")

	for {
		select {
		case <-c.R.Context().Done():
			return
		case <-keepalive.C:
			stream.Comment("keepalive")
			if stream.IsClosed() {
				return
			}
		case payload := <-events:
			if err := stream.Send("order", json.RawMessage(payload)); err != nil {
				return
			}
			if stream.IsClosed() {
				return
			}
		}
	}
}
