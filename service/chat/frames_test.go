package chat

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFrameJSON(t *testing.T) {
	req := require.New(t)

	f, err := ParseFrameJSON([]byte(`{"type":"join","userId":"u1"}`))
	req.NoError(err)
	req.Equal(FrameJoin, f.Type)
	req.Equal("u1", f.UserID)

	f, err = ParseFrameJSON([]byte(`{"type":"send-message","from":"a","to":"b","text":"hi"}`))
	req.NoError(err)
	req.Equal(FrameSendMessage, f.Type)
	req.Equal("a", f.From)
	req.Equal("b", f.To)
	req.Equal("hi", f.Text)

	_, err = ParseFrameJSON([]byte(`{not json`))
	req.Error(err)

	_, err = ParseFrameJSON([]byte(`{"text":"missing type"}`))
	req.Error(err)
}

func TestBuildReceiveMessage(t *testing.T) {
	req := require.New(t)

	var f Frame
	req.NoError(json.Unmarshal(BuildReceiveMessage("alice", "hello"), &f))
	req.Equal(FrameReceiveMessage, f.Type)
	req.Equal("alice", f.From)
	req.Equal("hello", f.Text)
	req.NotZero(f.Ts)
}
