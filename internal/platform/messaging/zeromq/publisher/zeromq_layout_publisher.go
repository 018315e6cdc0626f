package publisher

import (
	"FragFS/internal/domain"
	"FragFS/internal/platform/messaging/zeromq/message"
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/go-zeromq/zmq4"
	json "github.com/json-iterator/go"
)

// ZeroMQLayoutPublisher sends the store layout to every subscriber after a
// mutation. Callers race between changing the store and publishing, so a
// layout older than the last one sent is dropped.
type ZeroMQLayoutPublisher struct {
	mu      sync.Mutex
	pub     zmq4.Socket
	address string
	sent    bool
	version uint64
}

func NewZeroMQLayoutPublisher(port int) (*ZeroMQLayoutPublisher, error) {
	socket := zmq4.NewPub(context.Background())
	address := fmt.Sprintf("tcp://*:%d", port)
	if err := socket.Listen(address); err != nil {
		socket.Close()
		return nil, fmt.Errorf("start layout publisher on %s: %w", address, err)
	}
	log.Println("Started layout publisher on", address)
	return &ZeroMQLayoutPublisher{
		pub:     socket,
		address: address,
	}, nil
}

func (p *ZeroMQLayoutPublisher) PublishLayout(layout domain.Layout) error {
	payload, err := MarshalLayoutMessage(message.LayoutMessageFrom(layout))
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.fresh(layout.Version) {
		return nil
	}
	if err := p.pub.Send(zmqMessage(message.LayoutTopic, payload)); err != nil {
		return err
	}
	p.sent, p.version = true, layout.Version
	return nil
}

// fresh reports whether a layout with this version is newer than the last
// one sent. Equal versions describe the same state and are not sent twice.
func (p *ZeroMQLayoutPublisher) fresh(version uint64) bool {
	return !p.sent || version > p.version
}

func (p *ZeroMQLayoutPublisher) Addr() string {
	return p.pub.Addr().String()
}

func (p *ZeroMQLayoutPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pub.Close()
}

func zmqMessage(topic string, payload []byte) zmq4.Msg {
	return zmq4.NewMsgFrom(
		[][]byte{
			[]byte(topic),
			payload,
		}...,
	)
}

func MarshalLayoutMessage(msg message.LayoutMessage) ([]byte, error) {
	return json.Marshal(msg)
}
