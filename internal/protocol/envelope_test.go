package protocol_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scythe/internal/engine"
	"scythe/internal/protocol"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	want := protocol.GenerateMsg{Options: engine.Options{PlayerCount: 3, WithProximity: true}}
	env := protocol.MustEnvelope(protocol.MsgGenerate, want)

	data, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"generate","payload":{"options":{"player_count":3,"include_invaders":false,"include_wind_gambit":false,"with_proximity":true}}}`, string(data))

	var got protocol.GenerateMsg
	require.NoError(t, env.Decode(&got))
	assert.Equal(t, want, got)
}

func TestEnvelopeDecodeErrors(t *testing.T) {
	var v protocol.JoinMsg
	require.Error(t, protocol.Envelope{Type: protocol.MsgJoin}.Decode(&v))
	require.Error(t, protocol.Envelope{Type: protocol.MsgJoin, Payload: []byte(`[1]`)}.Decode(&v))
}

func TestMustEnvelopePanics(t *testing.T) {
	require.Panics(t, func() { protocol.MustEnvelope("bad", make(chan int)) })
}
