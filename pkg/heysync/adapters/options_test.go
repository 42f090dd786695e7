package adapters

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fotap/heysync/pkg/heysync"
	"github.com/fotap/heysync/pkg/heysync/codec"
)

func TestApply_Defaults(t *testing.T) {
	o := Apply("test")
	assert.Equal(t, codec.JSON, o.Codec)
	assert.NotNil(t, o.OnError)
	assert.Empty(t, o.Headers)
}

func TestApply_Options(t *testing.T) {
	var seen []string
	o := Apply("test",
		WithCodec(codec.MsgPack),
		WithErrorHandler(func(target string, err error) { seen = append(seen, target) }),
		WithHeaders(map[string]string{"source": "mice"}),
		WithCodec(nil),
		WithErrorHandler(nil),
	)

	assert.Equal(t, codec.MsgPack, o.Codec)
	o.OnError("topic", errors.New("boom"))
	assert.Equal(t, []string{"topic"}, seen)
	assert.Equal(t, "mice", o.Headers["source"])
}

func TestOptions_Encode(t *testing.T) {
	o := Apply("test", WithHeaders(map[string]string{"source": "mice"}))

	body, headers, err := o.Encode("cheddar")
	require.NoError(t, err)
	assert.Equal(t, `"cheddar"`, string(body))
	assert.Equal(t, "application/json", headers["content-type"])
	assert.Equal(t, "mice", headers["source"])
	assert.NotContains(t, o.Headers, "content-type", "static headers are not mutated")

	_, _, err = o.Encode(func() {})
	assert.Error(t, err)
}

func TestLogErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	LogErrors("nats", logger)("mice.cheese", errors.New("no connection"))

	out := buf.String()
	assert.Contains(t, out, `"channel":"nats"`)
	assert.Contains(t, out, `"target":"mice.cheese"`)
	assert.Contains(t, out, "no connection")
}

func TestTargets(t *testing.T) {
	class, err := heysync.NewRegistry().Define(heysync.ClassSpec{
		Interface: heysync.InterfaceOf[mouse](),
		Name:      "adapters.mousePublisher",
		Methods: []heysync.MethodInfo{
			{Name: "EatCheese", Params: []string{"string"}},
			{Name: "ProvokeCats", Params: []string{"int"}},
		},
		Construct: func([]heysync.Channel) any { return nil },
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"mice.EatCheese", "mice.ProvokeCats"}, Targets("mice", class))
	assert.Equal(t, []string{"EatCheese", "ProvokeCats"}, Targets("", class))
}

type mouse interface {
	EatCheese(kind string)
	ProvokeCats(count int)
}
