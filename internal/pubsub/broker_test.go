package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func receive[T any](t *testing.T, ch <-chan Event[T]) Event[T] {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		require.FailNow(t, "timeout waiting for event")
	}
	return Event[T]{}
}

func TestBroker_PublishReachesEverySubscriber(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx := context.Background()
	a := broker.Subscribe(ctx)
	b := broker.Subscribe(ctx)
	require.Equal(t, 2, broker.SubscriberCount())

	broker.Publish(ChangedEvent, "main.py")

	for _, ch := range []<-chan Event[string]{a, b} {
		ev := receive(t, ch)
		require.Equal(t, ChangedEvent, ev.Type)
		require.Equal(t, "main.py", ev.Payload)
		require.False(t, ev.Timestamp.IsZero())
	}
}

func TestBroker_CancelClosesSubscription(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := broker.Subscribe(ctx)
	cancel()

	require.Eventually(t, func() bool {
		return broker.SubscriberCount() == 0
	}, time.Second, 5*time.Millisecond)

	_, ok := <-ch
	require.False(t, ok)
}

func TestBroker_FullSubscriberDropsInsteadOfBlocking(t *testing.T) {
	broker := NewBrokerWithBuffer[int](1)
	defer broker.Close()

	ch := broker.Subscribe(context.Background())
	broker.Publish(CreatedEvent, 1)
	broker.Publish(CreatedEvent, 2)

	require.Equal(t, 1, receive(t, ch).Payload)
	select {
	case ev := <-ch:
		require.Failf(t, "unexpected event", "%v", ev)
	default:
	}
}

func TestBroker_CloseIsIdempotentAndRejectsNewSubscribers(t *testing.T) {
	broker := NewBroker[string]()
	ch := broker.Subscribe(context.Background())

	broker.Close()
	broker.Close()

	_, ok := <-ch
	require.False(t, ok)

	late := broker.Subscribe(context.Background())
	_, ok = <-late
	require.False(t, ok)

	require.NotPanics(t, func() { broker.Publish(CreatedEvent, "ignored") })
}

func TestListenCmd_DeliversEvent(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewContinuousListener(ctx, broker)
	broker.Publish(RemovedEvent, "gone.txt")

	msg := listener.Listen()()
	ev, ok := msg.(Event[string])
	require.True(t, ok)
	require.Equal(t, RemovedEvent, ev.Type)
	require.Equal(t, "gone.txt", ev.Payload)
}

func TestListenCmd_NilAfterCancel(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := broker.Subscribe(ctx)
	cancel()

	require.Nil(t, ListenCmd(ctx, ch)())
}
