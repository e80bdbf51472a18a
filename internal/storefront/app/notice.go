package app

import "sync"

type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notice is a message for the shopper, e.g. a failed checkout
type Notice struct {
	Level   Level
	Message string
}

// notices buffers messages until the presentation layer drains them
type notices struct {
	mu      sync.Mutex
	pending []Notice
}

func (n *notices) push(level Level, message string) {
	n.mu.Lock()
	n.pending = append(n.pending, Notice{Level: level, Message: message})
	n.mu.Unlock()
}

func (n *notices) drain() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.pending
	n.pending = nil
	return out
}
