package hub

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"kisan/entities"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func msg(content string) Event {
	return Event{Type: EventMessage, Message: &entities.PopulatedMessage{Content: content}}
}

func TestPublishReachesEverySubscriberOfUser(t *testing.T) {
	h := New()
	a1, a2, b := h.Subscribe("a"), h.Subscribe("a"), h.Subscribe("b")
	defer a1.Close()
	defer a2.Close()
	defer b.Close()

	h.Publish("a", msg("hi"))
	assert.Equal(t, "hi", (<-a1.C).Message.Content)
	assert.Equal(t, "hi", (<-a2.C).Message.Content)
	assert.Empty(t, b.C)
}

func TestFullSubscriberDropsInsteadOfBlocking(t *testing.T) {
	h := New()
	drops := 0
	h.OnDrop(func() { drops++ })
	s := h.Subscribe("a")
	defer s.Close()

	for i := 0; i < Buffer+3; i++ {
		h.Publish("a", msg("x"))
	}
	assert.Len(t, s.C, Buffer)
	assert.Equal(t, int64(3), h.Dropped())
	assert.Equal(t, 3, drops)
}

func TestCloseIsIdempotentAndUnsubscribes(t *testing.T) {
	h := New()
	s := h.Subscribe("a")
	require.True(t, h.Connected("a"))

	s.Close()
	s.Close()
	assert.False(t, h.Connected("a"))
	_, open := <-s.C
	assert.False(t, open)

	h.Publish("a", msg("after close"))
	assert.Zero(t, h.Dropped())
}

func TestConcurrentPublishAndClose(t *testing.T) {
	h := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		s := h.Subscribe("a")
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range s.C {
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				h.Publish("a", msg("m"))
			}
			s.Close()
		}()
	}
	wg.Wait()
	assert.False(t, h.Connected("a"))
}
