package tele

import (
	"context"

	"github.com/temoto/paystation/log2"
	tele_config "github.com/temoto/paystation/tele/config"
)

// Teler is telemetry client, pay station side.
// Contract:
// - Init fails only with invalid config, network issues ignored
// - Transaction/Cancel/Collect/Error block at most for disk write,
//   messages are delivered in background
type Teler interface {
	Init(context.Context, *log2.Log, tele_config.Config) error
	Close()
	Error(error)
	StatModify(func(*Stat))
	Transaction(*Telemetry_Transaction)
	Cancel(*Telemetry_Cancel)
	Collect(*Telemetry_Collect)
	Report(ctx context.Context) error
}

type Noop struct{}

var _ Teler = Noop{} // compile-time interface test

func (Noop) Init(context.Context, *log2.Log, tele_config.Config) error { return nil }
func (Noop) Close()                                                    {}
func (Noop) Error(error)                                               {}
func (Noop) StatModify(func(*Stat))                                    {}
func (Noop) Transaction(*Telemetry_Transaction)                        {}
func (Noop) Cancel(*Telemetry_Cancel)                                  {}
func (Noop) Collect(*Telemetry_Collect)                                {}
func (Noop) Report(context.Context) error                              { return nil }
