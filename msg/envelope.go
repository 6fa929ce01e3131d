package msg

import "xdao.co/reflector/wire"

// Envelope is the response of a unit entry point, such as Init or Handle.
//
// It can be constructed directly at the end of the call, or created early
// with New and updated incrementally. A fresh envelope carries no messages,
// no attributes, and no data. The message order is significant: the host
// executes outbound messages in the order they were added.
type Envelope[T any] struct {
	Messages   []Msg[T]         `json:"messages"`
	Attributes []wire.Attribute `json:"attributes"`
	Data       *wire.Binary     `json:"data,omitempty"`
}

// New returns an empty envelope.
func New[T any]() *Envelope[T] {
	return &Envelope[T]{}
}

// AddAttribute appends one (key, value) pair. Pairs are never deduplicated
// and their content is not validated; they exist for auditability only.
func (e *Envelope[T]) AddAttribute(key, value string) {
	e.Attributes = append(e.Attributes, wire.Attr(key, value))
}

// AddMessage appends one outbound message, preserving call order.
func (e *Envelope[T]) AddMessage(m Msg[T]) {
	e.Messages = append(e.Messages, m)
}

// SetData replaces the opaque result payload. The last call wins.
func (e *Envelope[T]) SetData(data []byte) {
	b := wire.Binary(data)
	e.Data = &b
}
