package rabbitmq

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fotap/heysync/pkg/heysync"
	"github.com/fotap/heysync/pkg/heysync/adapters"
)

type fakePublisher struct {
	msgs      []Message
	deadlines []time.Duration
	err       error
}

func (f *fakePublisher) Publish(ctx context.Context, m Message) error {
	if dl, ok := ctx.Deadline(); ok {
		f.deadlines = append(f.deadlines, time.Until(dl))
	}
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, m)
	return nil
}

func TestChannel_Publish(t *testing.T) {
	fp := &fakePublisher{}
	ch := New(fp, "events", "mice.EatCheese")

	ch.Publish("cheddar")

	require.Len(t, fp.msgs, 1)
	m := fp.msgs[0]
	assert.Equal(t, "events", m.Exchange)
	assert.Equal(t, "mice.EatCheese", m.RoutingKey)
	assert.Equal(t, "application/json", m.ContentType)
	assert.Equal(t, `"cheddar"`, string(m.Body))

	require.Len(t, fp.deadlines, 1)
	assert.LessOrEqual(t, fp.deadlines[0], DefaultPublishTimeout)
}

func TestChannel_WithTimeout(t *testing.T) {
	fp := &fakePublisher{}
	New(fp, "events", "k").WithTimeout(50 * time.Millisecond).Publish(1)

	require.Len(t, fp.deadlines, 1)
	assert.LessOrEqual(t, fp.deadlines[0], 50*time.Millisecond)
}

func TestChannel_Errors(t *testing.T) {
	var targets []string
	var errs []error
	onErr := adapters.WithErrorHandler(func(target string, err error) {
		targets = append(targets, target)
		errs = append(errs, err)
	})

	New(&fakePublisher{err: errors.New("channel/connection is not open")}, "events", "k", onErr).Publish(1)
	New(&fakePublisher{}, "events", "k", onErr).Publish(func() {})
	New(nil, "events", "k", onErr).Publish(1)

	assert.Equal(t, []string{"events/k", "events/k", "events/k"}, targets)
	for _, err := range errs {
		assert.ErrorIs(t, err, ErrPublishFailed)
	}
}

type mouse interface {
	EatCheese(kind string)
	ProvokeCats(count int)
}

type mousePublisher struct{ eat, provoke heysync.Channel }

func (m *mousePublisher) EatCheese(kind string)  { m.eat.Publish(kind) }
func (m *mousePublisher) ProvokeCats(count int) { m.provoke.Publish(count) }

func TestChannelsFor(t *testing.T) {
	class, err := heysync.NewRegistry().Define(heysync.ClassSpec{
		Interface: heysync.InterfaceOf[mouse](),
		Name:      "rabbitmq.mousePublisher",
		Methods: []heysync.MethodInfo{
			{Name: "EatCheese", Params: []string{"string"}},
			{Name: "ProvokeCats", Params: []string{"int"}},
		},
		Construct: func(ch []heysync.Channel) any { return &mousePublisher{eat: ch[0], provoke: ch[1]} },
	})
	require.NoError(t, err)

	fp := &fakePublisher{}
	inst, err := class.Instantiate(ChannelsFor(fp, "events", "mice", class)...)
	require.NoError(t, err)

	inst.(mouse).ProvokeCats(4)

	require.Len(t, fp.msgs, 1)
	assert.Equal(t, "mice.ProvokeCats", fp.msgs[0].RoutingKey)
	assert.Equal(t, "4", string(fp.msgs[0].Body))
}

func TestDial_RequiresURL(t *testing.T) {
	_, _, err := Dial(Config{})
	assert.ErrorIs(t, err, ErrPublishFailed)
	assert.Equal(t, "topic", Config{}.exchangeType())
	assert.Equal(t, "fanout", Config{ExchangeType: "fanout"}.exchangeType())
}
