package notify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// captureSender records delivered messages.
type captureSender struct {
	mu   sync.Mutex
	msgs []Message
	err  error
}

func (s *captureSender) Send(ctx context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.msgs = append(s.msgs, msg)
	return nil
}

func (s *captureSender) messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.msgs...)
}

func TestAsyncDispatcher_DeliversInOrder(t *testing.T) {
	sender := &captureSender{}
	d := NewAsyncDispatcher(sender, 10)

	d.Dispatch(Message{To: "+250700000001", Text: "first"})
	d.Dispatch(Message{To: "+250700000001", Text: "second"})
	d.Close()

	msgs := sender.messages()
	if len(msgs) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Text != "first" || msgs[1].Text != "second" {
		t.Errorf("Expected ordered delivery, got %v", msgs)
	}
}

func TestAsyncDispatcher_SenderFailureDoesNotStopWorker(t *testing.T) {
	sender := &captureSender{err: errors.New("gateway down")}
	d := NewAsyncDispatcher(sender, 10)

	d.Dispatch(Message{To: "+250700000001", Text: "lost"})
	sender.mu.Lock()
	sender.err = nil
	sender.mu.Unlock()
	d.Dispatch(Message{To: "+250700000001", Text: "delivered"})
	d.Close()

	msgs := sender.messages()
	if len(msgs) != 1 || msgs[0].Text != "delivered" {
		t.Errorf("Expected worker to survive a failed send, got %v", msgs)
	}
}

func TestAsyncDispatcher_DropsWhenQueueFull(t *testing.T) {
	block := make(chan struct{})
	sender := &blockingSender{started: make(chan struct{}), release: block}
	d := NewAsyncDispatcher(sender, 1)

	// First message occupies the worker, second fills the queue, third must
	// be dropped without blocking.
	d.Dispatch(Message{Text: "working"})
	<-sender.started
	d.Dispatch(Message{Text: "queued"})
	d.Dispatch(Message{Text: "dropped"})

	close(block)
	d.Close()

	if got := sender.count(); got != 2 {
		t.Errorf("Expected 2 deliveries with 1 drop, got %d", got)
	}
}

type blockingSender struct {
	mu      sync.Mutex
	n       int
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *blockingSender) Send(ctx context.Context, msg Message) error {
	s.once.Do(func() {
		close(s.started)
		<-s.release
	})
	s.mu.Lock()
	s.n++
	s.mu.Unlock()
	return nil
}

func (s *blockingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}

func TestSMSSender_PostsForm(t *testing.T) {
	var gotForm map[string]string
	var gotAPIKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		gotForm = map[string]string{
			"username": r.PostFormValue("username"),
			"to":       r.PostFormValue("to"),
			"message":  r.PostFormValue("message"),
		}
		gotAPIKey = r.Header.Get("apiKey")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	sender := NewSMSSender("sandbox", "secret", srv.URL)
	err := sender.Send(context.Background(), Message{To: "+250700000001", Text: "hello"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if gotForm["username"] != "sandbox" || gotForm["to"] != "+250700000001" || gotForm["message"] != "hello" {
		t.Errorf("Expected form fields, got %v", gotForm)
	}
	if gotAPIKey != "secret" {
		t.Errorf("Expected apiKey header, got %q", gotAPIKey)
	}
}

func TestSMSSender_GatewayErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	sender := NewSMSSender("sandbox", "bad-key", srv.URL)
	err := sender.Send(context.Background(), Message{To: "+250700000001", Text: "hello"})
	if err == nil {
		t.Error("Expected error for 401 response, got nil")
	}
}
