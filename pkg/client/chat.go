package client

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"
)

// ChatRole tells the renderer which side of the conversation a
// message belongs to.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatReply is the server's answer to one chat turn.
type ChatReply struct {
	Query    string    `json:"query"`
	Reply    string    `json:"reply"`
	Products []Product `json:"products"`
}

// ChatMessage is one entry in the panel. Assistant messages start out
// pending and are filled in when their reply lands; replies attach by
// message ID, so turns resolve independently and out of order.
type ChatMessage struct {
	ID       uint64
	Role     ChatRole
	Text     string
	Pending  bool
	Products []Product
}

func (c *Client) SendChatMessage(ctx context.Context, text string) (*ChatReply, error) {
	var reply ChatReply
	body := map[string]string{"message": text}
	if err := c.do(ctx, http.MethodPost, "/api/chat", body, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

var chatNonWordRE = regexp.MustCompile(`[^a-z0-9\s]+`)

// DeriveQuery mirrors the server normalization: lowercase, strip
// punctuation, keep words longer than two characters.
func DeriveQuery(text string) string {
	text = chatNonWordRE.ReplaceAllString(strings.ToLower(text), " ")

	var words []string
	for _, w := range strings.Fields(text) {
		if len(w) > 2 {
			words = append(words, w)
		}
	}
	return strings.Join(words, " ")
}

// ChatPanel holds a chat transcript and resolves assistant replies in
// the background. Messages whose derived query is empty are answered
// locally after a flat delay instead of hitting the server.
type ChatPanel struct {
	client    *Client
	helpDelay time.Duration
	onChange  func()

	mu       sync.Mutex
	nextID   uint64
	messages []ChatMessage

	wg sync.WaitGroup
}

type ChatOption func(*ChatPanel)

// WithHelpDelay sets the pause before the canned help reply appears.
func WithHelpDelay(d time.Duration) ChatOption {
	return func(p *ChatPanel) { p.helpDelay = d }
}

func WithChatChangeHandler(fn func()) ChatOption {
	return func(p *ChatPanel) { p.onChange = fn }
}

func NewChatPanel(client *Client, opts ...ChatOption) *ChatPanel {
	p := &ChatPanel{client: client, helpDelay: 400 * time.Millisecond}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Messages returns a snapshot of the transcript.
func (p *ChatPanel) Messages() []ChatMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]ChatMessage, len(p.messages))
	copy(out, p.messages)
	return out
}

// SendMessage appends the user's text and a pending assistant
// placeholder, then resolves the placeholder in the background. The
// returned ID is the placeholder's, for callers that track turns.
func (p *ChatPanel) SendMessage(text string) uint64 {
	p.mu.Lock()
	p.nextID++
	p.messages = append(p.messages, ChatMessage{ID: p.nextID, Role: RoleUser, Text: text})
	p.nextID++
	placeholderID := p.nextID
	p.messages = append(p.messages, ChatMessage{ID: placeholderID, Role: RoleAssistant, Pending: true})
	p.mu.Unlock()
	p.notifyChange()

	if DeriveQuery(text) == "" {
		p.wg.Add(1)
		time.AfterFunc(p.helpDelay, func() {
			defer p.wg.Done()
			p.resolve(placeholderID, helpReply, nil)
		})
		return placeholderID
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		reply, err := p.client.SendChatMessage(context.Background(), text)
		if err != nil {
			p.resolve(placeholderID, "Something went wrong, please try again.", nil)
			return
		}
		p.resolve(placeholderID, reply.Reply, reply.Products)
	}()
	return placeholderID
}

const helpReply = "I can help you find products. Try asking for something like \"blue shirts\" or \"running shoes\"."

// resolve fills in the placeholder with the matching ID; a placeholder
// that was cleared away in the meantime is simply skipped.
func (p *ChatPanel) resolve(id uint64, text string, products []Product) {
	p.mu.Lock()
	for i := range p.messages {
		if p.messages[i].ID == id {
			p.messages[i].Pending = false
			p.messages[i].Text = text
			p.messages[i].Products = products
			break
		}
	}
	p.mu.Unlock()
	p.notifyChange()
}

// Wait blocks until every in-flight reply has resolved.
func (p *ChatPanel) Wait() {
	p.wg.Wait()
}

// ClearHistory drops the transcript. In-flight replies resolve into
// nothing.
func (p *ChatPanel) ClearHistory() {
	p.mu.Lock()
	p.messages = nil
	p.mu.Unlock()
	p.notifyChange()
}

func (p *ChatPanel) notifyChange() {
	if p.onChange != nil {
		p.onChange()
	}
}
