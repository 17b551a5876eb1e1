package state

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/temoto/paystation/log2"
	tele_api "github.com/temoto/paystation/tele"
)

func TestReadConfig(t *testing.T) {
	t.Parallel()

	type Case struct {
		name      string
		input     string
		check     func(testing.TB, context.Context)
		expectErr string
	}
	cases := []Case{
		{"empty", "", func(t testing.TB, ctx context.Context) {
			g := GetGlobal(ctx)
			assert.Equal(t, time.Duration(0), g.Config.CancelIdle())
			assert.False(t, g.Config.Tele.Enabled)
		}, ""},

		{"paystation",
			`paystation { cancel_idle_sec = 90 metrics_listen = ":9105" }`,
			func(t testing.TB, ctx context.Context) {
				g := GetGlobal(ctx)
				assert.Equal(t, 90*time.Second, g.Config.CancelIdle())
				assert.Equal(t, ":9105", g.Config.Paystation.MetricsListen)
			},
			"",
		},

		{"tele",
			`tele { vm_id = 7 mqtt_broker = "tcp://localhost:1883" keepalive_sec = 9 }`,
			func(t testing.TB, ctx context.Context) {
				g := GetGlobal(ctx)
				assert.Equal(t, 7, g.Config.Tele.VmId)
				assert.Equal(t, "tcp://localhost:1883", g.Config.Tele.MqttBroker)
				assert.Equal(t, 9, g.Config.Tele.KeepaliveSec)
				assert.Equal(t, "test-version", g.Config.Tele.BuildVersion)
			},
			"",
		},

		{"log-debug", `log { debug = true }`,
			func(t testing.TB, ctx context.Context) {
				g := GetGlobal(ctx)
				assert.True(t, g.Log.Enabled(log2.LDebug))
			}, ""},

		{"include-normalize", `
paystation { cancel_idle_sec = 1 }
include "./empty" {}`,
			nil, ""},

		{"include-optional", `
include "idle-7" {}
include "non-exist" { optional = true }`,
			func(t testing.TB, ctx context.Context) {
				g := GetGlobal(ctx)
				assert.Equal(t, 7, g.Config.Paystation.CancelIdleSec)
			}, ""},

		{"include-overwrites", `
paystation { cancel_idle_sec = 1 }
include "idle-7" {}`,
			func(t testing.TB, ctx context.Context) {
				g := GetGlobal(ctx)
				assert.Equal(t, 7, g.Config.Paystation.CancelIdleSec)
			}, ""},

		{"error-include-required", `include "non-exist" {}`, nil, "config required name=non-exist"},
		{"error-syntax", `hello`, nil, "key 'hello' expected start of object"},
		{"error-include-loop", `include "include-loop" {}`, nil, "config include loop: from=include-loop include=include-loop"},
		{"error-negative-idle", `paystation { cancel_idle_sec = -1 }`, nil, "cancel_idle_sec < 0"},
	}
	mkCheck := func(c Case) func(*testing.T) {
		return func(t *testing.T) {
			log := log2.NewTest(t, log2.LInfo)
			ctx, g := NewContext(log, tele_api.Noop{})
			g.BuildVersion = "test-version"

			fs := NewMockFullReader(map[string]string{
				"test-inline":  c.input,
				"empty":        "",
				"idle-7":       "paystation{cancel_idle_sec=7}",
				"include-loop": `include "include-loop" {}`,
			})
			cfg, err := ReadConfig(log, fs, "test-inline")
			if err == nil {
				err = g.Init(ctx, cfg)
			}
			if c.expectErr == "" {
				if err != nil {
					t.Fatalf("error expected=nil actual='%v'", errors.ErrorStack(err))
				}
				if c.check != nil {
					c.check(t, ctx)
				}
			} else {
				if err == nil || !strings.Contains(err.Error(), c.expectErr) {
					t.Fatalf("error expected='%s' actual='%v'", c.expectErr, err)
				}
			}
		}
	}
	for _, c := range cases {
		t.Run(c.name, mkCheck(c))
	}
}

func TestFunctionalBundled(t *testing.T) {
	// not Parallel
	t.Logf("this test needs OS open|read|stat access to file `../../paystation.hcl`")

	log := log2.NewTest(t, log2.LDebug)
	cfg := MustReadConfig(log, NewOsFullReader(), "../../paystation.hcl")
	assert.True(t, cfg.Paystation.CancelIdleSec > 0)
}
