// Interactive operator console, station driven by typed commands.
package console

import (
	"context"
	"os"

	"github.com/juju/errors"
	"github.com/temoto/paystation/cmd/paystation/subcmd"
	"github.com/temoto/paystation/helpers/cli"
	"github.com/temoto/paystation/internal/console"
	"github.com/temoto/paystation/internal/state"
)

const modName = "console"

var Mod = subcmd.Mod{Name: modName, Help: "interactive operator prompt", Main: Main}

func Main(ctx context.Context, config *state.Config) error {
	g := state.GetGlobal(ctx)
	if err := g.Init(ctx, config); err != nil {
		return errors.Annotate(err, "init")
	}
	defer g.Tele.Close()
	g.Log.Debugf("config=%+v", g.Config)

	con := console.New(ctx, os.Stdout)
	os.Stdout.WriteString(console.Usage)
	cli.MainLoop("paystation", con.Executor(), con.Completer())

	g.Stop()
	return nil
}
