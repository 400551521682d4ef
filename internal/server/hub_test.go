package server

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"scythe/internal/engine"
	"scythe/internal/engine/modules"
	"scythe/internal/metrics"
	"scythe/internal/protocol"
	"scythe/internal/table"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	gen := engine.NewGenerator(engine.MustDefaultCatalog(), modules.Default(), engine.NewSeededSource(11))
	h := NewHub(table.NewTable("t1"), gen, metrics.NewNop(), zap.NewNop(), time.Minute)
	go h.Run()
	t.Cleanup(h.Stop)
	return h
}

func newTestClient(h *Hub, id string) *Client {
	return &Client{hub: h, send: make(chan []byte, 16), ID: id, logger: zap.NewNop()}
}

func next(t *testing.T, c *Client, wantType string) protocol.Envelope {
	t.Helper()
	select {
	case data, ok := <-c.send:
		require.True(t, ok, "send channel closed")
		var env protocol.Envelope
		require.NoError(t, json.Unmarshal(data, &env))
		require.Equal(t, wantType, env.Type, "payload: %s", env.Payload)
		return env
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", wantType)
		return protocol.Envelope{}
	}
}

func deliver(t *testing.T, h *Hub, c *Client, typ string, payload any) {
	t.Helper()
	require.True(t, h.Deliver(IncomingMessage{Client: c, Envelope: protocol.MustEnvelope(typ, payload)}))
}

func TestHubGenerateBroadcasts(t *testing.T) {
	h := newTestHub(t)
	a, b := newTestClient(h, "a"), newTestClient(h, "b")

	require.True(t, h.Register(a))
	next(t, a, protocol.MsgTableUpdate)
	require.True(t, h.Register(b))
	next(t, a, protocol.MsgTableUpdate)
	next(t, b, protocol.MsgTableUpdate)

	deliver(t, h, a, protocol.MsgJoin, protocol.JoinMsg{Name: "Ann"})
	env := next(t, a, protocol.MsgTableUpdate)
	next(t, b, protocol.MsgTableUpdate)
	var update protocol.TableUpdate
	require.NoError(t, env.Decode(&update))
	assert.Equal(t, []protocol.TableMember{{ID: "a", Name: "Ann", Host: true}}, update.Members)

	deliver(t, h, a, protocol.MsgGenerate, protocol.GenerateMsg{Options: engine.Options{PlayerCount: 3, WithProximity: true}})
	for _, c := range []*Client{a, b} {
		var msg protocol.SetupMsg
		require.NoError(t, next(t, c, protocol.MsgSetup).Decode(&msg))
		assert.Equal(t, "Ann", msg.GeneratedBy)
		require.Len(t, msg.Setup.Seats, 3)
		for _, s := range msg.Setup.Seats {
			assert.NotNil(t, s.Proximity)
		}
	}
	assert.NotNil(t, h.table.LastSetup())
	assert.Equal(t, 2, h.registered())
}

func TestHubRejects(t *testing.T) {
	h := newTestHub(t)
	a := newTestClient(h, "a")
	require.True(t, h.Register(a))
	next(t, a, protocol.MsgTableUpdate)

	// not seated yet
	deliver(t, h, a, protocol.MsgGenerate, protocol.GenerateMsg{Options: engine.Options{PlayerCount: 2}})
	next(t, a, protocol.MsgError)

	deliver(t, h, a, protocol.MsgJoin, protocol.JoinMsg{Name: "Ann"})
	next(t, a, protocol.MsgTableUpdate)

	deliver(t, h, a, protocol.MsgGenerate, protocol.GenerateMsg{Options: engine.Options{PlayerCount: 6}})
	var msg protocol.ErrorMsg
	require.NoError(t, next(t, a, protocol.MsgError).Decode(&msg))
	assert.Contains(t, msg.Message, "insufficient catalog entries")
	assert.Nil(t, h.table.LastSetup())

	deliver(t, h, a, "dance", protocol.ErrorMsg{})
	next(t, a, protocol.MsgError)
}

func TestHubLateJoinerGetsLastSetup(t *testing.T) {
	h := newTestHub(t)
	a := newTestClient(h, "a")
	require.True(t, h.Register(a))
	next(t, a, protocol.MsgTableUpdate)
	deliver(t, h, a, protocol.MsgJoin, protocol.JoinMsg{Name: "Ann"})
	next(t, a, protocol.MsgTableUpdate)
	deliver(t, h, a, protocol.MsgGenerate, protocol.GenerateMsg{Options: engine.Options{PlayerCount: 1}})
	next(t, a, protocol.MsgSetup)

	b := newTestClient(h, "b")
	require.True(t, h.Register(b))
	next(t, a, protocol.MsgTableUpdate)
	next(t, b, protocol.MsgTableUpdate)
	var msg protocol.SetupMsg
	require.NoError(t, next(t, b, protocol.MsgSetup).Decode(&msg))
	require.Len(t, msg.Setup.Seats, 2)
	assert.True(t, msg.Setup.Seats[1].IsAutoma)

	h.Unregister(a)
	env := next(t, b, protocol.MsgTableUpdate)
	var update protocol.TableUpdate
	require.NoError(t, env.Decode(&update))
	assert.Empty(t, update.Members)
	_, open := <-a.send
	assert.False(t, open)
}

func TestHubStopReleasesGoroutine(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	gen := engine.NewGenerator(engine.MustDefaultCatalog(), nil, nil)
	h := NewHub(table.NewTable("t2"), gen, metrics.NewNop(), zap.NewNop(), 0)
	go h.Run()

	c := newTestClient(h, "a")
	require.True(t, h.Register(c))
	h.Stop()
	h.Stop()

	assert.False(t, h.Register(newTestClient(h, "b")))
	assert.False(t, h.Deliver(IncomingMessage{Client: c}))
	h.Unregister(c)

	// the table update is still buffered, then the channel is closed
	_, ok := <-c.send
	assert.True(t, ok)
	_, ok = <-c.send
	assert.False(t, ok)
}

func TestHubDropsMessagesFromDepartedClient(t *testing.T) {
	h := newTestHub(t)
	a, b := newTestClient(h, "a"), newTestClient(h, "b")
	require.True(t, h.Register(a))
	next(t, a, protocol.MsgTableUpdate)
	require.True(t, h.Register(b))
	next(t, a, protocol.MsgTableUpdate)
	next(t, b, protocol.MsgTableUpdate)

	h.Unregister(a)
	next(t, b, protocol.MsgTableUpdate)

	// still queued when a's send channel closed
	deliver(t, h, a, "bogus", protocol.ErrorMsg{})
	deliver(t, h, a, protocol.MsgJoin, protocol.JoinMsg{Name: "Ghost"})
	deliver(t, h, b, protocol.MsgJoin, protocol.JoinMsg{Name: "Bea"})

	var update protocol.TableUpdate
	require.NoError(t, next(t, b, protocol.MsgTableUpdate).Decode(&update))
	assert.Equal(t, []protocol.TableMember{{ID: "b", Name: "Bea", Host: true}}, update.Members)
	_, open := <-a.send
	assert.False(t, open)
}

func TestHubClosesWhenIdle(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	gen := engine.NewGenerator(engine.MustDefaultCatalog(), nil, nil)
	h := NewHub(table.NewTable("t3"), gen, metrics.NewNop(), zap.NewNop(), 100*time.Millisecond)
	closed := make(chan struct{})
	h.OnClose(func() { close(closed) })
	go h.Run()

	c := newTestClient(h, "a")
	require.True(t, h.Register(c))
	next(t, c, protocol.MsgTableUpdate)

	time.Sleep(250 * time.Millisecond)
	select {
	case <-closed:
		t.Fatal("hub closed with a client connected")
	default:
	}

	h.Unregister(c)
	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not close after its last client left")
	}
	assert.False(t, h.Register(newTestClient(h, "b")))
	h.Stop()
}

func TestHubClosesWithoutClients(t *testing.T) {
	gen := engine.NewGenerator(engine.MustDefaultCatalog(), nil, nil)
	h := NewHub(table.NewTable("t4"), gen, metrics.NewNop(), zap.NewNop(), 10*time.Millisecond)
	closed := make(chan struct{})
	h.OnClose(func() { close(closed) })
	go h.Run()

	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("unused hub did not close")
	}
	assert.False(t, h.Deliver(IncomingMessage{Client: newTestClient(h, "a")}))
}
