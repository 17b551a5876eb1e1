package tele_test

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/paystation/helpers"
	"github.com/temoto/paystation/internal/state"
	state_new "github.com/temoto/paystation/internal/state/new"
	"github.com/temoto/paystation/internal/tele"
	"github.com/temoto/paystation/log2"
	tele_api "github.com/temoto/paystation/tele"
	tele_config "github.com/temoto/paystation/tele/config"
	"github.com/temoto/spq"
)

const testTimeout = 5 * time.Second

type responseMsg struct {
	suffix  string
	payload []byte
}

type mockTransport struct {
	onCommand tele.CommandCallback
	tele      chan []byte
	response  chan responseMsg
	inited    bool
}

func newMockTransport() *mockTransport {
	return &mockTransport{
		tele:     make(chan []byte, 32),
		response: make(chan responseMsg, 32),
	}
}

func (self *mockTransport) Init(ctx context.Context, log *log2.Log, teleConfig tele_config.Config, onCommand tele.CommandCallback) error {
	self.onCommand = onCommand
	self.inited = true
	return nil
}
func (self *mockTransport) Close() {}
func (self *mockTransport) SendTelemetry(payload []byte) bool {
	self.tele <- payload
	return true
}
func (self *mockTransport) SendCommandResponse(topicSuffix string, payload []byte) bool {
	self.response <- responseMsg{topicSuffix, payload}
	return true
}

type tenv struct {
	version string
	vmid    int32
	ctx     context.Context
	g       *state.Global
	trans   *mockTransport
	tele    tele_api.Teler
}

func testSetup(t testing.TB, config string, enabled bool) *tenv {
	rnd := helpers.RandUnix()
	env := &tenv{
		version: fmt.Sprintf("test-%d", rnd.Uint32()),
		vmid:    rnd.Int31n(1000) + 1,
		trans:   newMockTransport(),
	}
	env.ctx, env.g = state_new.NewTestContext(t, env.version, config)
	env.tele = tele.NewWithTransporter(env.trans)
	env.g.Tele = env.tele
	cfg := env.g.Config.Tele
	cfg.Enabled = enabled
	cfg.LogDebug = true
	cfg.PersistPath = spq.OnlyForTesting
	cfg.VmId = int(env.vmid)
	cfg.BuildVersion = env.version
	require.NoError(t, env.tele.Init(env.ctx, env.g.Log, cfg))
	return env
}

func (env *tenv) nextTelemetry(t testing.TB) *tele_api.Telemetry {
	select {
	case b := <-env.trans.tele:
		var tm tele_api.Telemetry
		require.NoError(t, proto.Unmarshal(b, &tm))
		assert.Equal(t, env.vmid, tm.VmId)
		assert.Equal(t, env.version, tm.BuildVersion)
		assert.InDelta(t, time.Now().Unix(), tm.Time/1e9, 10)
		return &tm
	case <-time.After(testTimeout):
		t.Fatal("telemetry timeout")
		return nil
	}
}

func (env *tenv) nextResponse(t testing.TB, suffix string) *tele_api.Response {
	select {
	case m := <-env.trans.response:
		assert.Equal(t, suffix, m.suffix)
		var r tele_api.Response
		require.NoError(t, proto.Unmarshal(m.payload, &r))
		assert.Equal(t, "", r.INTERNALTopic)
		return &r
	case <-time.After(testTimeout):
		t.Fatal("response timeout")
		return nil
	}
}

func TestApi(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		check func(testing.TB, *tenv)
	}{
		{"error", func(t testing.TB, env *tenv) {
			e := fmt.Errorf("ohi")
			env.tele.Error(e)
			tm := env.nextTelemetry(t)
			require.NotNil(t, tm.Error)
			assert.Equal(t, e.Error(), tm.Error.Message)
		}},
		{"error-via-log", func(t testing.TB, env *tenv) {
			env.g.Log.SetErrorFunc(env.tele.Error)
			env.g.Log.Errorf("coin mech jam")
			tm := env.nextTelemetry(t)
			require.NotNil(t, tm.Error)
			assert.Equal(t, "coin mech jam", tm.Error.Message)
		}},
		{"transaction", func(t testing.TB, env *tenv) {
			require.NoError(t, env.g.AddPayment(25))
			require.NoError(t, env.g.AddPayment(25))
			require.Error(t, env.g.AddPayment(1))
			r := env.g.Buy()
			tm := env.nextTelemetry(t)
			require.NotNil(t, tm.Transaction)
			assert.Equal(t, r.ID().String(), tm.Transaction.ReceiptId)
			assert.Equal(t, uint32(20), tm.Transaction.Minutes)
			assert.Equal(t, uint32(50), tm.Transaction.Paid)
			assert.Equal(t, map[uint32]uint32{25: 2}, tm.Transaction.Coins)
			require.NotNil(t, tm.Stat)
			assert.Equal(t, map[uint32]uint32{1: 1}, tm.Stat.CoinRejected)
		}},
		{"stat-reset-after-send", func(t testing.TB, env *tenv) {
			env.tele.StatModify(func(s *tele_api.Stat) { s.CoinRejected[3] += 2 })
			env.g.Buy()
			tm := env.nextTelemetry(t)
			assert.Equal(t, map[uint32]uint32{3: 2}, tm.Stat.CoinRejected)
			env.g.Buy()
			tm = env.nextTelemetry(t)
			if tm.Stat != nil {
				assert.Len(t, tm.Stat.CoinRejected, 0)
			}
		}},
		{"cancel", func(t testing.TB, env *tenv) {
			require.NoError(t, env.g.AddPayment(10))
			require.NoError(t, env.g.AddPayment(5))
			env.g.Cancel()
			tm := env.nextTelemetry(t)
			require.NotNil(t, tm.Cancel)
			assert.Equal(t, map[uint32]uint32{5: 1, 10: 1}, tm.Cancel.Returned)
			assert.Equal(t, uint32(15), tm.Cancel.Amount)
			assert.False(t, tm.Cancel.Idle)
		}},
		{"collect", func(t testing.TB, env *tenv) {
			require.NoError(t, env.g.AddPayment(25))
			env.g.Buy()
			_ = env.nextTelemetry(t)
			env.g.Empty()
			tm := env.nextTelemetry(t)
			require.NotNil(t, tm.Collect)
			assert.Equal(t, uint32(25), tm.Collect.Amount)
		}},
		{"report", func(t testing.TB, env *tenv) {
			require.NoError(t, env.g.AddPayment(10))
			require.NoError(t, env.tele.Report(env.ctx))
			tm := env.nextTelemetry(t)
			require.NotNil(t, tm.Station)
			assert.Nil(t, tm.Error)
			assert.Equal(t, uint32(10), tm.Station.Inserted)
			assert.Equal(t, uint32(4), tm.Station.Display)
			assert.Equal(t, uint32(0), tm.Station.Collected)
		}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			env := testSetup(t, "", true)
			defer env.tele.Close()
			c.check(t, env)
		})
	}
}

func TestDisabled(t *testing.T) {
	t.Parallel()
	env := testSetup(t, "", false)
	defer env.tele.Close()

	assert.False(t, env.trans.inited)
	env.tele.Error(fmt.Errorf("ignored"))
	env.tele.StatModify(func(*tele_api.Stat) { t.Fatal("StatModify must not call func when disabled") })
	require.NoError(t, env.g.AddPayment(25))
	env.g.Buy()
	assert.NoError(t, env.tele.Report(env.ctx))
	assert.Len(t, env.trans.tele, 0)
}

func TestInitInvalid(t *testing.T) {
	t.Parallel()
	log := log2.NewTest(t, log2.LDebug)
	tl := tele.NewWithTransporter(newMockTransport())
	err := tl.Init(context.Background(), log, tele_config.Config{Enabled: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persist_path")
}

func TestCommand(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		cmd    tele_api.Command
		suffix string
		before func(testing.TB, *tenv)
		check  func(testing.TB, *tenv, *tele_api.Response)
	}{
		{name: "report",
			cmd:    tele_api.Command{Kind: tele_api.Command_REPORT, ReplyTopic: "t"},
			suffix: "t",
			before: func(t testing.TB, env *tenv) {
				require.NoError(t, env.g.AddPayment(25))
			},
			check: func(t testing.TB, env *tenv, r *tele_api.Response) {
				assert.Equal(t, "", r.Error)
				tm := env.nextTelemetry(t)
				require.NotNil(t, tm.Station)
				assert.Equal(t, uint32(25), tm.Station.Inserted)
				assert.Equal(t, uint32(10), tm.Station.Display)
			}},
		{name: "empty",
			cmd:    tele_api.Command{Kind: tele_api.Command_EMPTY},
			suffix: "cr",
			before: func(t testing.TB, env *tenv) {
				require.NoError(t, env.g.AddPayment(25))
				require.NoError(t, env.g.AddPayment(10))
				env.g.Buy()
				_ = env.nextTelemetry(t)
			},
			check: func(t testing.TB, env *tenv, r *tele_api.Response) {
				assert.Equal(t, "", r.Error)
				assert.Equal(t, uint32(35), r.Amount)
				assert.Equal(t, 0, int(env.g.Station.Collected()))
			}},
		{name: "cancel",
			cmd:    tele_api.Command{Kind: tele_api.Command_CANCEL, ReplyTopic: "t"},
			suffix: "t",
			before: func(t testing.TB, env *tenv) {
				require.NoError(t, env.g.AddPayment(25))
				require.NoError(t, env.g.AddPayment(5))
				require.NoError(t, env.g.AddPayment(5))
			},
			check: func(t testing.TB, env *tenv, r *tele_api.Response) {
				assert.Equal(t, "", r.Error)
				assert.Equal(t, map[uint32]uint32{5: 2, 25: 1}, r.Returned)
				assert.Equal(t, uint32(35), r.Amount)
				assert.Equal(t, 0, env.g.Station.ReadDisplay())
			}},
		{name: "deadline",
			cmd:    tele_api.Command{Kind: tele_api.Command_EMPTY, ReplyTopic: "t", Deadline: time.Now().Add(-time.Minute).UnixNano()},
			suffix: "t",
			before: func(t testing.TB, env *tenv) {
				require.NoError(t, env.g.AddPayment(25))
				env.g.Buy()
				_ = env.nextTelemetry(t)
			},
			check: func(t testing.TB, env *tenv, r *tele_api.Response) {
				assert.Equal(t, "deadline", r.Error)
				assert.Equal(t, 25, int(env.g.Station.Collected()), "expired command must not execute")
			}},
		{name: "invalid-kind",
			cmd:    tele_api.Command{Kind: tele_api.Command_INVALID, ReplyTopic: "t"},
			suffix: "t",
			check: func(t testing.TB, env *tenv, r *tele_api.Response) {
				assert.Contains(t, r.Error, "command kind=INVALID")
			}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			env := testSetup(t, "", true)
			defer env.tele.Close()
			if c.before != nil {
				c.before(t, env)
			}

			c.cmd.Id = rand.Uint32()
			b, err := proto.Marshal(&c.cmd)
			require.NoError(t, err)
			require.NotNil(t, env.trans.onCommand)
			assert.True(t, env.trans.onCommand(env.ctx, b))

			r := env.nextResponse(t, c.suffix)
			assert.Equal(t, c.cmd.Id, r.CommandId)
			c.check(t, env, r)
		})
	}
}

func TestCommandGarbage(t *testing.T) {
	t.Parallel()
	env := testSetup(t, "", true)
	defer env.tele.Close()

	assert.True(t, env.trans.onCommand(env.ctx, []byte{0xff, 0xff, 0xff}))
	assert.Len(t, env.trans.response, 0)
}

func TestTopics(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "ps7/r/c", tele.TopicCommand(7))
	assert.Equal(t, "ps7/w/1t", tele.TopicTelemetry(7))
	assert.Equal(t, "ps7/c", tele.TopicConnect(7))
	assert.Equal(t, "ps7/cr", tele.TopicResponse(7, "cr"))
}
