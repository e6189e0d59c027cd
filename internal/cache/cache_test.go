package cache

import (
	"context"
	"testing"
	"time"
)

func TestNilClientIsNoop(t *testing.T) {
	c := New(nil, time.Minute)

	c.Set(context.Background(), "k", "v")
	if _, ok := c.Get(context.Background(), "k"); ok {
		t.Fatal("nil-client cache must always miss")
	}
}

func TestNilReceiverIsNoop(t *testing.T) {
	var c *ResponseCache
	c.Set(context.Background(), "k", "v")
	if _, ok := c.Get(context.Background(), "k"); ok {
		t.Fatal("nil cache must always miss")
	}
}
