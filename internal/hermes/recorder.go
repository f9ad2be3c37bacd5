package hermes

import (
	"encoding/json"
	"strings"
	"sync"
)

// Message is one event captured by a Recorder.
type Message struct {
	Subject string
	Data    []byte
}

// Recorder is an in-process Client. It keeps every published message and
// delivers it to matching subscribers synchronously.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
	handlers map[string][]func(string, []byte)
}

func NewRecorder() *Recorder {
	return &Recorder{handlers: make(map[string][]func(string, []byte))}
}

func (r *Recorder) Publish(subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.messages = append(r.messages, Message{Subject: subject, Data: payload})
	var matched []func(string, []byte)
	for pattern, hs := range r.handlers {
		if subjectMatches(pattern, subject) {
			matched = append(matched, hs...)
		}
	}
	r.mu.Unlock()
	for _, h := range matched {
		h(subject, payload)
	}
	return nil
}

func (r *Recorder) Subscribe(subject string, handler func(string, []byte)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[subject] = append(r.handlers[subject], handler)
	return nil
}

func (r *Recorder) Close() {}

// Messages returns the captured messages whose subject matches pattern.
// An empty pattern returns everything.
func (r *Recorder) Messages(pattern string) []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Message
	for _, m := range r.messages {
		if pattern == "" || subjectMatches(pattern, m.Subject) {
			out = append(out, m)
		}
	}
	return out
}

// subjectMatches implements NATS wildcard matching: "*" matches one token,
// a trailing ">" matches one or more.
func subjectMatches(pattern, subject string) bool {
	pt := strings.Split(pattern, ".")
	st := strings.Split(subject, ".")
	for i, p := range pt {
		if p == ">" {
			return i < len(st)
		}
		if i >= len(st) {
			return false
		}
		if p != "*" && p != st[i] {
			return false
		}
	}
	return len(pt) == len(st)
}
