package ringbuffer

import "testing"

func TestPush(t *testing.T) {
	buf := New(10)
	buf.Push("hello")
	if buf.Content() != "hello" {
		t.Errorf("got %q", buf.Content())
	}
	if buf.Len() != 5 {
		t.Errorf("got len %d", buf.Len())
	}
}

func TestOverflow(t *testing.T) {
	buf := New(5)
	buf.Push("hello world")
	if buf.Content() != "world" {
		t.Errorf("got %q", buf.Content())
	}
	if buf.Len() != 5 {
		t.Errorf("got len %d", buf.Len())
	}
}

func TestLastN(t *testing.T) {
	buf := New(100)
	buf.Push("hello world")
	if buf.LastN(5) != "world" {
		t.Errorf("got %q", buf.LastN(5))
	}
	if buf.LastN(100) != "hello world" {
		t.Errorf("got %q", buf.LastN(100))
	}
}

func TestClear(t *testing.T) {
	buf := New(100)
	buf.Push("hello")
	if buf.IsEmpty() {
		t.Error("expected non-empty")
	}
	buf.Clear()
	if !buf.IsEmpty() {
		t.Error("expected empty after clear")
	}
	if buf.Len() != 0 {
		t.Errorf("got len %d", buf.Len())
	}
}

func TestUnicode(t *testing.T) {
	buf := New(10)
	buf.Push("héllo")
	if buf.Len() != 5 {
		t.Errorf("got len %d", buf.Len())
	}
	if buf.Content() != "héllo" {
		t.Errorf("got %q", buf.Content())
	}
}

func TestEmoji(t *testing.T) {
	buf := New(5)
	buf.Push("a❯b")
	if buf.Len() != 3 {
		t.Errorf("got len %d", buf.Len())
	}
	if buf.Content() != "a❯b" {
		t.Errorf("got %q", buf.Content())
	}
}

func TestIncrementalPush(t *testing.T) {
	buf := New(10)
	buf.Push("hello")
	buf.Push(" ")
	buf.Push("world")
	// "hello " (6) + "world" (5) = 11 chars, capacity 10
	// after overflow: removes first char -> "ello world"
	if buf.Content() != "ello world" {
		t.Errorf("got %q", buf.Content())
	}
	if buf.Len() != 10 {
		t.Errorf("got len %d", buf.Len())
	}
}

func TestCapacity(t *testing.T) {
	buf := New(42)
	if buf.Capacity() != 42 {
		t.Errorf("got %d", buf.Capacity())
	}
}
