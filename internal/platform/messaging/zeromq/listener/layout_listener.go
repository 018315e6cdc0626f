package listener

import (
	"FragFS/internal/platform/messaging/zeromq/message"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-zeromq/zmq4"
	json "github.com/json-iterator/go"
)

type LayoutHandler func(msg message.LayoutMessage)

// ZeromqLayoutListener subscribes to a layout publisher and hands every
// decoded message to a handler.
type ZeromqLayoutListener struct {
	ctx     context.Context
	sub     zmq4.Socket
	handler LayoutHandler
}

func NewZeromqLayoutListener(ctx context.Context, endpoint string, handler LayoutHandler) (*ZeromqLayoutListener, error) {
	reconnectOpt := zmq4.WithAutomaticReconnect(true)
	retryOpt := zmq4.WithDialerRetry(time.Second)
	sub := zmq4.NewSub(ctx, reconnectOpt, retryOpt)
	if err := sub.SetOption(zmq4.OptionSubscribe, message.LayoutTopic); err != nil {
		sub.Close()
		return nil, err
	}
	if err := sub.Dial(endpoint); err != nil {
		sub.Close()
		return nil, fmt.Errorf("dial layout publisher %s: %w", endpoint, err)
	}
	return &ZeromqLayoutListener{
		ctx:     ctx,
		sub:     sub,
		handler: handler,
	}, nil
}

// Listen blocks until the context is done or the socket is closed.
func (z *ZeromqLayoutListener) Listen() {
	log.Println("ZeromqLayoutListener - Started.")
	for {
		msg, err := z.sub.Recv()
		if err != nil {
			if errors.Is(err, zmq4.ErrClosedConn) || z.ctx.Err() != nil {
				log.Println("Layout listener stopped")
				return
			}
			log.Println("Error receiving layout:", err)
			continue
		}
		if len(msg.Frames) < 2 {
			continue
		}
		layout, err := UnmarshalLayoutMessage(msg.Frames[1])
		if err != nil {
			log.Println(err)
			continue
		}
		z.handler(layout)
	}
}

func (z *ZeromqLayoutListener) Close() error {
	return z.sub.Close()
}

func UnmarshalLayoutMessage(data []byte) (message.LayoutMessage, error) {
	var msg message.LayoutMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return message.LayoutMessage{}, fmt.Errorf("error unmarshalling layout message: %w", err)
	}
	return msg, nil
}
