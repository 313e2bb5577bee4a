package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
)

func decodePayload(message *Message) (*Payload, error) {
	payload := &Payload{}

	if len(message.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(message.Payload, payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return payload, nil
}

func (that *Server) sendResponse(conn *websocket.Conn, action string, payload *Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response := Message{
		Action:  action,
		Payload: body,
	}

	if err = conn.WriteJSON(response); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}

	return nil
}

func (that *Server) sendError(conn *websocket.Conn, action, message string) error {
	return that.sendResponse(conn, action, &Payload{Error: message})
}
