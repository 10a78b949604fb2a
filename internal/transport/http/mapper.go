package http

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/vovakirdan/chatrelay/internal/core"
	"github.com/vovakirdan/chatrelay/internal/proto"
)

var validate = validator.New()

// decodeInbound parses and validates a raw client frame.
func decodeInbound(data []byte) (proto.Inbound, *proto.Error) {
	var inbound proto.Inbound
	if err := json.Unmarshal(data, &inbound); err != nil {
		return inbound, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "malformed frame"}
	}
	if err := validate.Struct(inbound); err != nil {
		if inbound.Type != "" && !isKnownType(inbound.Type) {
			return inbound, &proto.Error{Code: core.ErrCodeInvalidMessage, Msg: "unknown message type"}
		}
		return inbound, &proto.Error{Code: core.ErrCodeBadRequest, Msg: fmt.Sprintf("invalid frame: %v", err)}
	}
	return inbound, nil
}

func isKnownType(t string) bool {
	switch t {
	case proto.InboundTypeSend, proto.InboundTypeSubscribe, proto.InboundTypeUnsubscribe, proto.InboundTypeHeartbeat:
		return true
	default:
		return false
	}
}

// chatMessageFromSend extracts the chat message carried by a send frame.
// Sender and content are taken verbatim; a missing body yields empty strings.
func chatMessageFromSend(inbound proto.Inbound) (core.ChatMessage, *proto.Error) {
	if inbound.Destination != core.DestinationSendMessage {
		return core.ChatMessage{}, &proto.Error{
			Code: core.ErrCodeUnknownDestination,
			Msg:  fmt.Sprintf("unknown destination %q", inbound.Destination),
		}
	}

	var data proto.SendData
	if len(inbound.Body) > 0 {
		if err := json.Unmarshal(inbound.Body, &data); err != nil {
			return core.ChatMessage{}, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "malformed message body"}
		}
	}
	return core.ChatMessage{Sender: data.Sender, Content: data.Content}, nil
}

func outboundFromDelivery(d core.Delivery) proto.Outbound {
	if d.Error != nil {
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: d.Error.Code, Msg: d.Error.Message},
		}
	}

	switch payload := d.Payload.(type) {
	case core.ChatMessage:
		return proto.Outbound{
			Type:        proto.OutboundTypeMessage,
			Destination: d.Topic,
			Body: proto.ChatMessage{
				Sender:    payload.Sender,
				Content:   payload.Content,
				Timestamp: payload.Timestamp,
			},
		}
	default:
		return proto.Outbound{
			Type:        proto.OutboundTypeMessage,
			Destination: d.Topic,
			Body:        payload,
		}
	}
}

func errorDelivery(protoErr *proto.Error) core.Delivery {
	return core.Delivery{Error: &core.CoreError{Code: protoErr.Code, Message: protoErr.Msg}}
}
