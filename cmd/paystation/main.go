package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/juju/errors"
	"github.com/temoto/paystation/cmd/paystation/console"
	"github.com/temoto/paystation/cmd/paystation/service"
	"github.com/temoto/paystation/cmd/paystation/subcmd"
	cmd_tele "github.com/temoto/paystation/cmd/paystation/tele"
	"github.com/temoto/paystation/internal/state"
	"github.com/temoto/paystation/internal/tele"
	"github.com/temoto/paystation/log2"
)

var BuildVersion string = "unknown" // set by ldflags -X

var modules = []subcmd.Mod{
	console.Mod,
	service.Mod,
	cmd_tele.Mod,
}

func main() {
	flagset := flag.NewFlagSet("paystation", flag.ContinueOnError)
	configPath := flagset.String("config", "paystation.hcl", "")
	flagset.Usage = func() {
		fmt.Fprintf(flagset.Output(), "usage: paystation [-config path] command\n%s", subcmd.Usage(modules))
		flagset.PrintDefaults()
	}
	if err := flagset.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	mod, err := subcmd.Parse(flagset.Arg(0), modules)
	if err != nil {
		fmt.Fprint(os.Stderr, commandError(err))
		os.Exit(1)
	}

	log := log2.NewStderr(log2.LInfo)
	if mod.Name == service.Mod.Name && subcmd.SdNotify("start") {
		// under systemd, journal adds timestamp
		log.SetFlags(log2.LServiceFlags)
	} else {
		log.SetFlags(log2.LInteractiveFlags)
	}

	ctx, g := state.NewContext(log, tele.New())
	g.BuildVersion = BuildVersion
	config := state.MustReadConfig(log, state.NewOsFullReader(), *configPath)
	if err := mod.Main(ctx, config); err != nil {
		g.Fatal(err, mod.Name)
	}
}

func commandError(err error) string {
	return fmt.Sprintf("%s\n%s", errors.ErrorStack(err), subcmd.Usage(modules))
}
