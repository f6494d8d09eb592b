package sync

import (
	"context"
	stdsync "sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/xenn00/room-chat/sdk"
)

// DeliveryState tracks a locally-originated message through its send.
type DeliveryState int

const (
	// Confirmed: the server owns this message.
	Confirmed DeliveryState = iota
	// Pending: optimistic echo, write still in flight.
	Pending
	// Failed: the write errored; the echo stays visible so the user
	// can retry or discard instead of watching the message vanish.
	Failed
)

// Item is one renderable entry: a message plus its delivery state and,
// for local echoes, the temporary id used before the server assigns one.
type Item struct {
	sdk.Message
	State   DeliveryState
	LocalID string
	Err     error
}

// MessagesAPI is the slice of the REST client the controller needs.
// *sdk.Client satisfies it.
type MessagesAPI interface {
	Messages(ctx context.Context, roomID string) ([]sdk.Message, error)
	SendMessage(ctx context.Context, roomID string, req sdk.SendMessageRequest) (*sdk.Message, error)
	ToggleLike(ctx context.Context, roomID, messageID string) (*sdk.Message, error)
}

// RenderFunc receives every decision that requires (or skips) a render,
// together with the full visible list. Called outside the controller's
// lock, but never concurrently with itself.
type RenderFunc func(decision RenderDecision, items []Item)

// Controller owns all view state for one room: the last snapshot, the
// viewport, the scroll lock, and the in-flight optimistic echoes. One
// controller per room view; construct on entry, drop on navigation.
type Controller struct {
	api      MessagesAPI
	roomID   string
	onRender RenderFunc

	mu           stdsync.Mutex
	snapshot     Snapshot
	locals       []Item
	view         Viewport
	scrollLocked bool

	renderMu   stdsync.Mutex
	refreshing atomic.Bool
}

func NewController(api MessagesAPI, roomID string, onRender RenderFunc) *Controller {
	if onRender == nil {
		onRender = func(RenderDecision, []Item) {}
	}
	return &Controller{api: api, roomID: roomID, onRender: onRender}
}

// SetViewport records the latest scroll measurements from the UI.
func (c *Controller) SetViewport(v Viewport) {
	c.mu.Lock()
	c.view = v
	c.mu.Unlock()
}

// ToggleScrollLock flips the pin-to-bottom mode and returns the new
// state. Locking snaps the view to the tail immediately.
func (c *Controller) ToggleScrollLock() bool {
	c.mu.Lock()
	c.scrollLocked = !c.scrollLocked
	locked := c.scrollLocked
	items := c.visibleLocked()
	c.mu.Unlock()

	if locked {
		c.render(RenderDecision{Kind: Replace, AutoScroll: true}, items)
	}
	return locked
}

// Visible returns the current renderable list: the server snapshot
// followed by local echoes not yet present in it.
func (c *Controller) Visible() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visibleLocked()
}

func (c *Controller) visibleLocked() []Item {
	items := make([]Item, 0, len(c.snapshot)+len(c.locals))
	for _, m := range c.snapshot {
		items = append(items, Item{Message: m, State: Confirmed})
	}
	items = append(items, c.locals...)
	return items
}

// Refresh fetches the room's messages and reconciles them into the
// view. Overlapping calls collapse: if a refresh is already in flight,
// this one returns immediately rather than stacking requests behind a
// slow network.
func (c *Controller) Refresh(ctx context.Context) error {
	if !c.refreshing.CompareAndSwap(false, true) {
		return nil
	}
	defer c.refreshing.Store(false)

	messages, err := c.api.Messages(ctx, c.roomID)
	if err != nil {
		return err
	}
	next := Snapshot(messages)

	c.mu.Lock()
	prev := c.snapshot
	decision := Reconcile(prev, next, c.view, c.scrollLocked)
	c.snapshot = next
	c.pruneLocalsLocked()
	items := c.visibleLocked()
	c.mu.Unlock()

	if decision.Kind != NoChange {
		c.render(decision, items)
	}
	return nil
}

// pruneLocalsLocked drops confirmed echoes the snapshot now covers.
// Pending and Failed echoes stay: their authoritative copy either
// hasn't landed or never will.
func (c *Controller) pruneLocalsLocked() {
	kept := c.locals[:0]
	for _, it := range c.locals {
		if it.State == Confirmed && c.snapshot.IndexOf(it.ID) >= 0 {
			continue
		}
		kept = append(kept, it)
	}
	c.locals = kept
}

// Send appends an optimistic echo and issues the authoritative write.
// Sending is a bottom-anchored action: the echo renders with an
// unconditional auto-scroll regardless of where the reader was. On
// success the echo is swapped in place for the server's copy; on
// failure it flips to Failed and stays visible for Retry or Discard.
// Returns the echo's local id.
func (c *Controller) Send(ctx context.Context, req sdk.SendMessageRequest, username string) string {
	localID := "temp-" + uuid.New().String()

	echo := Item{
		Message: sdk.Message{
			ID:          localID,
			ChatRoomID:  c.roomID,
			Username:    username,
			Content:     req.Content,
			Timestamp:   time.Now(),
			MessageType: req.MessageType,
			ImageData:   req.ImageData,
		},
		State:   Pending,
		LocalID: localID,
	}
	if echo.MessageType == "" {
		echo.MessageType = "text"
	}

	c.mu.Lock()
	c.locals = append(c.locals, echo)
	items := c.visibleLocked()
	c.mu.Unlock()

	c.render(RenderDecision{Kind: Replace, AutoScroll: true}, items)

	go c.commit(ctx, localID, req)
	return localID
}

func (c *Controller) commit(ctx context.Context, localID string, req sdk.SendMessageRequest) {
	confirmed, err := c.api.SendMessage(ctx, c.roomID, req)

	c.mu.Lock()
	idx := c.localIndexLocked(localID)
	if idx < 0 {
		// discarded while in flight
		c.mu.Unlock()
		return
	}
	if err != nil {
		c.locals[idx].State = Failed
		c.locals[idx].Err = err
	} else if c.snapshot.IndexOf(confirmed.ID) >= 0 {
		// a poll outran the send response and already delivered the
		// authoritative copy; keeping the echo would render it twice
		c.locals = append(c.locals[:idx], c.locals[idx+1:]...)
	} else {
		// in-place swap: the echo becomes the authoritative message at
		// the same position, no transient disappearance
		c.locals[idx].Message = *confirmed
		c.locals[idx].State = Confirmed
		c.locals[idx].Err = nil
	}
	items := c.visibleLocked()
	c.mu.Unlock()

	c.render(RenderDecision{Kind: Replace, AutoScroll: err == nil}, items)
}

// Retry re-issues the write behind a Failed echo.
func (c *Controller) Retry(ctx context.Context, localID string, req sdk.SendMessageRequest) bool {
	c.mu.Lock()
	idx := c.localIndexLocked(localID)
	if idx < 0 || c.locals[idx].State != Failed {
		c.mu.Unlock()
		return false
	}
	c.locals[idx].State = Pending
	c.locals[idx].Err = nil
	items := c.visibleLocked()
	c.mu.Unlock()

	c.render(RenderDecision{Kind: Replace, AutoScroll: true}, items)
	go c.commit(ctx, localID, req)
	return true
}

// Discard removes a Failed echo the user gave up on.
func (c *Controller) Discard(localID string) bool {
	c.mu.Lock()
	idx := c.localIndexLocked(localID)
	if idx < 0 {
		c.mu.Unlock()
		return false
	}
	c.locals = append(c.locals[:idx], c.locals[idx+1:]...)
	items := c.visibleLocked()
	c.mu.Unlock()

	c.render(RenderDecision{Kind: Replace}, items)
	return true
}

// ToggleLike flips the caller's reaction and folds the updated message
// straight into the snapshot so the heart doesn't wait for the next
// poll.
func (c *Controller) ToggleLike(ctx context.Context, messageID string) error {
	updated, err := c.api.ToggleLike(ctx, c.roomID, messageID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if idx := c.snapshot.IndexOf(messageID); idx >= 0 {
		c.snapshot[idx] = *updated
	}
	items := c.visibleLocked()
	c.mu.Unlock()

	c.render(RenderDecision{Kind: Replace}, items)
	return nil
}

func (c *Controller) localIndexLocked(localID string) int {
	for i := range c.locals {
		if c.locals[i].LocalID == localID {
			return i
		}
	}
	return -1
}

// render serializes onRender calls so the UI never sees two overlapping
// render passes.
func (c *Controller) render(decision RenderDecision, items []Item) {
	c.renderMu.Lock()
	defer c.renderMu.Unlock()
	c.onRender(decision, items)
}
