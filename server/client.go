package server

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/weedbox/casinotable"
	"github.com/weedbox/casinotable/model"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 20 * time.Second
	maxMessageSize = 64 * 1024
	sendBufferSize = 64
)

type client struct {
	id     string
	conn   *websocket.Conn
	send   chan []byte
	hub    *Hub
	submit Submitter
	logger *zap.Logger
}

func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
		if err := c.submit.Submit(casinotable.Request{ConnID: c.id, Action: casinotable.RequestAction_Disconnect}); err != nil {
			c.logger.Debug("submit disconnect", zap.String("conn_id", c.id), zap.Error(err))
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Warn("read error", zap.String("conn_id", c.id), zap.Error(err))
			}
			return
		}

		req, err := casinotable.DecodeRequest(c.id, message)
		if err != nil {
			text := "bad request"
			if model.IsRejected(err) {
				text = err.Error()
			}
			c.hub.Send(c.id, casinotable.OutboundMessage{
				Event: casinotable.OutboundEvent_Error,
				Data:  casinotable.ErrorData{Message: text},
			})
			continue
		}

		if err := c.submit.Submit(req); err != nil {
			c.logger.Warn("submit request", zap.String("conn_id", c.id), zap.Error(err))
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
