// Test environment shared by packages built on top of state.
package state_new

import (
	"context"
	"os"
	"testing"

	"github.com/temoto/paystation/internal/state"
	"github.com/temoto/paystation/log2"
	tele_api "github.com/temoto/paystation/tele"
)

func NewTestContext(t testing.TB, buildVersion string, confString string) (context.Context, *state.Global) {
	fs := state.NewMockFullReader(map[string]string{
		"test-inline": confString,
	})

	var log *log2.Log
	if os.Getenv("paystation_test_log_stderr") == "1" {
		log = log2.NewStderr(log2.LDebug) // useful with panics
	} else {
		log = log2.NewTest(t, log2.LDebug)
	}
	log.SetFlags(log2.LTestFlags)
	ctx, g := state.NewContext(log, tele_api.Noop{})
	g.BuildVersion = buildVersion
	g.MustInit(ctx, state.MustReadConfig(log, fs, "test-inline"))
	return ctx, g
}
