package events

import (
	"testing"
	"time"

	"github.com/Lixing-Zhang/menu-builder/internal/models"
	"github.com/Lixing-Zhang/menu-builder/internal/repository"
	"github.com/Lixing-Zhang/menu-builder/pkg/logger"
)

func dish(name string) models.NewItem {
	return models.NewItem{Name: name, Description: "d", Course: models.CourseMains, Price: "100"}
}

func receive(t *testing.T, c *Client) repository.Event {
	t.Helper()
	select {
	case ev, ok := <-c.Events():
		if !ok {
			t.Fatal("client channel closed unexpectedly")
		}
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
	return repository.Event{}
}

func TestBroadcaster_FanOut(t *testing.T) {
	store := repository.NewInMemoryMenuStore()
	b := NewBroadcaster(store, 4, logger.New("error"))
	defer b.Close()

	c1 := b.Subscribe()
	c2 := b.Subscribe()
	if b.ClientCount() != 2 {
		t.Fatalf("ClientCount() = %d, want 2", b.ClientCount())
	}

	item := store.AddItem(dish("Ocean Pasta"))

	for _, c := range []*Client{c1, c2} {
		ev := receive(t, c)
		if ev.Type != repository.EventItemAdded || ev.Item.ID != item.ID || ev.Total != 1 {
			t.Errorf("unexpected event %+v", ev)
		}
	}
}

func TestBroadcaster_Unsubscribe(t *testing.T) {
	store := repository.NewInMemoryMenuStore()
	b := NewBroadcaster(store, 4, logger.New("error"))
	defer b.Close()

	c := b.Subscribe()
	b.Unsubscribe(c)
	b.Unsubscribe(c)
	b.Unsubscribe(nil)

	if _, ok := <-c.Events(); ok {
		t.Error("expected closed channel after Unsubscribe")
	}
	if b.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d, want 0", b.ClientCount())
	}

	// publishing with no clients must not block
	store.AddItem(dish("Ocean Pasta"))
}

func TestBroadcaster_DropsSlowClient(t *testing.T) {
	store := repository.NewInMemoryMenuStore()
	b := NewBroadcaster(store, 1, logger.New("error"))
	defer b.Close()

	slow := b.Subscribe()
	fast := b.Subscribe()

	store.AddItem(dish("one"))
	receive(t, fast)
	store.AddItem(dish("two"))
	receive(t, fast)

	if b.ClientCount() != 1 {
		t.Fatalf("ClientCount() = %d, want 1", b.ClientCount())
	}

	// the buffered event is still delivered before the close
	ev := receive(t, slow)
	if ev.Item.Name != "one" {
		t.Errorf("slow client first event = %s, want one", ev.Item.Name)
	}
	if _, ok := <-slow.Events(); ok {
		t.Error("expected slow client channel to be closed")
	}
}

func TestBroadcaster_Close(t *testing.T) {
	store := repository.NewInMemoryMenuStore()
	b := NewBroadcaster(store, 4, logger.New("error"))

	c := b.Subscribe()
	b.Close()

	if _, ok := <-c.Events(); ok {
		t.Error("expected closed channel after Close")
	}
	if b.Subscribe() != nil {
		t.Error("Subscribe() after Close returned a client")
	}

	// the store no longer delivers to the broadcaster
	store.AddItem(dish("after close"))
}
