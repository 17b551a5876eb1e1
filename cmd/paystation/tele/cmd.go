// Decode hex telemetry payloads, as printed by `mosquitto_sub -F %x`.
package tele

import (
	"context"
	"encoding/hex"

	"github.com/c-bata/go-prompt"
	"github.com/golang/protobuf/proto"
	"github.com/juju/errors"
	"github.com/temoto/paystation/cmd/paystation/subcmd"
	"github.com/temoto/paystation/helpers/cli"
	"github.com/temoto/paystation/internal/state"
	"github.com/temoto/paystation/log2"
	tele_api "github.com/temoto/paystation/tele"
)

const modName = "tele-decode"

var Mod = subcmd.Mod{Name: modName, Help: "decode hex telemetry from stdin", Main: Main}

func Main(ctx context.Context, config *state.Config) error {
	g := state.GetGlobal(ctx)
	synthConfig := &state.Config{}
	synthConfig.Log = config.Log
	if err := g.Init(ctx, synthConfig); err != nil {
		return errors.Annotate(err, "init")
	}

	cli.MainLoop(modName, newExecutor(ctx), func(prompt.Document) []prompt.Suggest { return nil })
	return nil
}

func newExecutor(ctx context.Context) func(string) {
	log := log2.ContextValueLogger(ctx)
	return func(line string) {
		if line == "" {
			return
		}
		s, err := Decode(line)
		if err != nil {
			log.Error(err)
			return
		}
		log.Info(s)
	}
}

func Decode(line string) (string, error) {
	// mosquitto_sub wrongly strips leading zero in hex format
	if len(line)%2 == 1 {
		line = "0" + line
	}
	b, err := hex.DecodeString(line)
	if err != nil {
		return "", errors.Annotate(err, "hex decode")
	}
	var tm tele_api.Telemetry
	if err := proto.Unmarshal(b, &tm); err != nil {
		return "", errors.Annotate(err, "telemetry decode")
	}
	return proto.MarshalTextString(&tm), nil
}
