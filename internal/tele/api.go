package tele

import (
	"context"

	"github.com/juju/errors"
	"github.com/temoto/paystation/internal/state"
	tele_api "github.com/temoto/paystation/tele"
)

const logMsgDisabled = "tele disabled"

func (self *tele) Error(e error) {
	if !self.config.Enabled {
		self.log.Debugf(logMsgDisabled)
		return
	}

	self.log.Debugf("tele.Error: " + errors.ErrorStack(e))
	tm := &tele_api.Telemetry{
		Error: &tele_api.Telemetry_Error{Message: e.Error()},
	}
	if err := self.qpushTelemetry(tm); err != nil {
		self.log.Errorf("CRITICAL qpushTelemetry telemetry_error=%#v err=%v", tm.Error, err)
	}
}

// Report sends station snapshot together with accumulated Stat.
func (self *tele) Report(ctx context.Context) error {
	if !self.config.Enabled {
		self.log.Infof(logMsgDisabled)
		return nil
	}

	g := state.GetGlobal(ctx)
	tm := &tele_api.Telemetry{
		Station: &tele_api.Telemetry_Station{
			Inserted:  uint32(g.Station.Inserted()),
			Display:   uint32(g.Station.ReadDisplay()),
			Collected: uint32(g.Station.Collected()),
		},
	}
	err := self.qpushTelemetry(tm)
	if err != nil {
		self.log.Errorf("CRITICAL qpushTelemetry tm=%#v err=%v", tm, err)
	}
	return err
}

func (self *tele) StatModify(fun func(s *tele_api.Stat)) {
	if !self.config.Enabled {
		self.log.Debugf(logMsgDisabled)
		return
	}

	self.stat.Lock()
	fun(&self.stat)
	self.stat.Unlock()
}

func (self *tele) Transaction(tx *tele_api.Telemetry_Transaction) {
	if !self.config.Enabled {
		self.log.Debugf(logMsgDisabled)
		return
	}
	err := self.qpushTelemetry(&tele_api.Telemetry{Transaction: tx})
	if err != nil {
		self.log.Errorf("CRITICAL transaction=%#v err=%v", tx, err)
	}
}

func (self *tele) Cancel(c *tele_api.Telemetry_Cancel) {
	if !self.config.Enabled {
		self.log.Debugf(logMsgDisabled)
		return
	}
	err := self.qpushTelemetry(&tele_api.Telemetry{Cancel: c})
	if err != nil {
		self.log.Errorf("CRITICAL cancel=%#v err=%v", c, err)
	}
}

func (self *tele) Collect(c *tele_api.Telemetry_Collect) {
	if !self.config.Enabled {
		self.log.Debugf(logMsgDisabled)
		return
	}
	err := self.qpushTelemetry(&tele_api.Telemetry{Collect: c})
	if err != nil {
		self.log.Errorf("CRITICAL collect=%#v err=%v", c, err)
	}
}
