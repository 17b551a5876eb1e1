package state

import (
	"github.com/juju/errors"
	"github.com/temoto/paystation/currency"
	"github.com/temoto/paystation/internal/paystation"
	tele_api "github.com/temoto/paystation/tele"
)

// Station operations with telemetry side effects.
// Mutations go through Global, read-only queries may use g.Station directly.

func (g *Global) AddPayment(coin currency.Nominal) error {
	err := g.Station.AddPayment(coin)
	if errors.Cause(err) == paystation.ErrCoinInvalid {
		g.Tele.StatModify(func(s *tele_api.Stat) {
			s.CoinRejected[uint32(coin)] += 1
		})
	}
	return err
}

func (g *Global) Buy() paystation.Receipt {
	r := g.Station.Buy()
	tm := &tele_api.Telemetry_Transaction{
		ReceiptId: r.ID().String(),
		Minutes:   uint32(r.Value()),
		Paid:      uint32(r.Paid()),
		Coins:     make(map[uint32]uint32),
		Issued:    r.Issued().UnixNano(),
	}
	r.CoinGroup().ToMapUint32(tm.Coins)
	g.Tele.Transaction(tm)
	return r
}

func (g *Global) Cancel() map[currency.Nominal]uint {
	returned := g.Station.Cancel()
	g.Tele.Cancel(g.newTeleCancel(returned, false))
	return returned
}

// CancelIdle returns ok=false when disabled in config or transaction is still active.
func (g *Global) CancelIdle() (map[currency.Nominal]uint, bool) {
	timeout := g.Config.CancelIdle()
	if timeout == 0 {
		return nil, false
	}
	returned, ok := g.Station.CancelIfIdle(timeout)
	if ok {
		g.Tele.Cancel(g.newTeleCancel(returned, true))
	}
	return returned, ok
}

func (g *Global) Empty() currency.Amount {
	amount := g.Station.Empty()
	g.Tele.Collect(&tele_api.Telemetry_Collect{Amount: uint32(amount)})
	return amount
}

func (g *Global) newTeleCancel(returned map[currency.Nominal]uint, idle bool) *tele_api.Telemetry_Cancel {
	tm := &tele_api.Telemetry_Cancel{
		Returned: make(map[uint32]uint32),
		Idle:     idle,
	}
	ng, err := paystation.CoinGroup(returned)
	if err != nil {
		g.Error(err, "cancel telemetry")
		return tm
	}
	ng.ToMapUint32(tm.Returned)
	tm.Amount = uint32(ng.Total())
	return tm
}
