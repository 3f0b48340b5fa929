package server

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaxLezano/bang-online-sub000/internal/game"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	env, err := NewEnvelope(MsgJoin, JoinMsg{PlayerID: "ann", Name: "Ann"})
	require.NoError(t, err)

	data, err := json.Marshal(env)
	require.NoError(t, err)

	var decoded Envelope
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, MsgJoin, decoded.Type)

	var join JoinMsg
	require.NoError(t, json.Unmarshal(decoded.Payload, &join))
	assert.Equal(t, "ann", join.PlayerID)
}

func TestActionPayloadDecodes(t *testing.T) {
	raw := []byte(`{"type":"PLAY_CARD","card_id":"bang-3","target_id":"bob"}`)

	var action game.Action
	require.NoError(t, json.Unmarshal(raw, &action))
	assert.Equal(t, game.ActionPlayCard, action.Type)
	assert.Equal(t, "bang-3", action.CardID)
	assert.Equal(t, "bob", action.TargetID)
}

func TestWonWithCoversFactions(t *testing.T) {
	assert.True(t, wonWith(game.RoleSheriff, game.WinnerSheriff))
	assert.True(t, wonWith(game.RoleDeputy, game.WinnerSheriff))
	assert.False(t, wonWith(game.RoleOutlaw, game.WinnerSheriff))
	assert.True(t, wonWith(game.RoleOutlaw, game.WinnerOutlaws))
	assert.True(t, wonWith(game.RoleRenegade, game.WinnerRenegade))
	assert.False(t, wonWith(game.RoleRenegade, game.WinnerOutlaws))
}
