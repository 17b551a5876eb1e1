package tele

import (
	"context"

	"github.com/temoto/paystation/log2"
	tele_config "github.com/temoto/paystation/tele/config"
)

// Tele transport contract:
// - Init fails only with invalid config, ignores network errors
// - Send* return false when message must be retried later
// - application may start without network available
type Transporter interface {
	Init(ctx context.Context, log *log2.Log, teleConfig tele_config.Config, onCommand CommandCallback) error
	Close()
	SendTelemetry(payload []byte) bool
	SendCommandResponse(topicSuffix string, payload []byte) bool
}

// CommandCallback returns true when command message is consumed.
type CommandCallback func(context.Context, []byte) bool
