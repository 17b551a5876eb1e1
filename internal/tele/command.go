package tele

import (
	"context"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/juju/errors"
	"github.com/temoto/paystation/internal/state"
	tele_api "github.com/temoto/paystation/tele"
)

const defaultReplyTopic = "cr"

var errDeadline = errors.New("deadline")

func (self *tele) onCommandMessage(ctx context.Context, payload []byte) bool {
	cmd := new(tele_api.Command)
	err := proto.Unmarshal(payload, cmd)
	if err != nil {
		self.log.Errorf("tele command parse raw=%x err=%v", payload, err)
		return true
	}
	self.log.Debugf("tele command raw=%x task=%s", payload, cmd.String())

	r := &tele_api.Response{CommandId: cmd.Id}
	now := time.Now().UnixNano()
	if cmd.Deadline != 0 && now > cmd.Deadline {
		err = errDeadline
	} else {
		err = self.dispatchCommand(ctx, cmd, r)
	}
	if err != nil {
		r.Error = err.Error()
	}
	self.commandReply(cmd, r)
	return true
}

func (self *tele) commandReply(c *tele_api.Command, r *tele_api.Response) {
	if !self.config.Enabled {
		self.log.Infof(logMsgDisabled)
		return
	}
	if err := self.qpushCommandResponse(c, r); err != nil {
		self.log.Error(errors.Annotatef(err, "CRITICAL command=%#v response=%#v", c, r))
	}
}

func (self *tele) dispatchCommand(ctx context.Context, cmd *tele_api.Command, r *tele_api.Response) error {
	switch cmd.Kind {
	case tele_api.Command_REPORT:
		return errors.Annotate(self.Report(ctx), "cmdReport")

	case tele_api.Command_EMPTY:
		g := state.GetGlobal(ctx)
		r.Amount = uint32(g.Empty())
		return nil

	case tele_api.Command_CANCEL:
		g := state.GetGlobal(ctx)
		returned := g.Cancel()
		r.Returned = make(map[uint32]uint32, len(returned))
		for n, c := range returned {
			r.Returned[uint32(n)] = uint32(c)
			r.Amount += uint32(n) * uint32(c)
		}
		return nil

	default:
		err := errors.NotValidf("command kind=%s", cmd.Kind)
		self.log.Error(err)
		return err
	}
}
