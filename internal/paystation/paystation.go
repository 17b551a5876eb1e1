// Package paystation is coin operated parking pay station.
// Overview:
// - AddPayment: coin inserted, display shows parking minutes bought so far
// - Buy: inserted money goes to cashbox, receipt issued
// - Cancel: inserted coins returned as is
// - Empty: operator takes cashbox contents
//
// One transaction at a time. All methods are safe for concurrent use,
// every operation runs under single station lock.
package paystation

import (
	"sync"
	"time"

	"github.com/juju/errors"
	"github.com/temoto/atomic_clock"
	"github.com/temoto/paystation/currency"
	"github.com/temoto/paystation/log2"
)

const (
	Nickel  currency.Nominal = 5
	Dime    currency.Nominal = 10
	Quarter currency.Nominal = 25
)

// Price: every full rateAmount inserted buys rateMinutes.
// Rate applies to transaction total, not per coin.
const (
	rateAmount  currency.Amount = 5
	rateMinutes                 = 2
)

var ErrCoinInvalid = errors.New("invalid coin")

// Nominals returns accepted coins in ascending order.
func Nominals() []currency.Nominal { return []currency.Nominal{Nickel, Dime, Quarter} }

// Minutes is parking time bought by amount, partial rateAmount is lost.
func Minutes(a currency.Amount) int { return int(a/rateAmount) * rateMinutes }

// CoinGroup counts coins over accepted nominals.
func CoinGroup(coins map[currency.Nominal]uint) (*currency.NominalGroup, error) {
	ng := currency.NewNominalGroup(Nominals()...)
	for n, c := range coins {
		if err := ng.Add(n, c); err != nil {
			return nil, errors.Annotatef(ErrCoinInvalid, "coin=%d", n)
		}
	}
	return ng, nil
}

type PayStation struct { //nolint:maligned
	Log *log2.Log

	lk        sync.Mutex
	inserted  currency.Amount // current transaction
	minutes   int
	coins     currency.NominalGroup
	cashbox   currency.NominalGroup // only Empty resets

	// last activity of current transaction, zero when idle
	activity atomic_clock.Clock
	metrics  *Metrics
	now      func() time.Time
}

func New(log *log2.Log) *PayStation {
	self := &PayStation{
		Log: log,
		now: time.Now,
	}
	self.coins.SetValid(Nominals())
	self.cashbox.SetValid(Nominals())
	return self
}

// SetMetrics must be called before station is shared.
func (self *PayStation) SetMetrics(m *Metrics) { self.metrics = m }

// SetClock replaces time source for receipts and idle accounting.
func (self *PayStation) SetClock(now func() time.Time) {
	self.lk.Lock()
	self.now = now
	self.lk.Unlock()
}

func (self *PayStation) AddPayment(coin currency.Nominal) error {
	const tag = "paystation.add-payment"

	self.lk.Lock()
	defer self.lk.Unlock()

	if err := self.coins.Add(coin, 1); err != nil {
		self.metrics.onReject()
		self.Log.Debugf("%s rejected coin=%d", tag, coin)
		return errors.Annotatef(ErrCoinInvalid, "coin=%d", coin)
	}
	self.inserted += currency.Amount(coin)
	self.minutes = Minutes(self.inserted)
	self.activity.Set(self.now().UnixNano())
	self.metrics.onCoin(coin)
	self.Log.Debugf("%s coin=%s inserted=%s minutes=%d",
		tag, currency.Amount(coin).Format100I(), self.inserted.Format100I(), self.minutes)
	return nil
}

func (self *PayStation) ReadDisplay() int {
	self.lk.Lock()
	defer self.lk.Unlock()
	return self.minutes
}

// Inserted is money in current transaction.
func (self *PayStation) Inserted() currency.Amount {
	self.lk.Lock()
	defer self.lk.Unlock()
	return self.inserted
}

// Collected is cashbox contents, unlike Empty it does not take money out.
func (self *PayStation) Collected() currency.Amount {
	self.lk.Lock()
	defer self.lk.Unlock()
	return self.cashbox.Total()
}

// Buy is valid on idle station and issues zero receipt.
func (self *PayStation) Buy() Receipt {
	const tag = "paystation.buy"

	self.lk.Lock()
	defer self.lk.Unlock()

	r := NewReceipt(self.minutes, self.inserted, self.coins.Copy(), self.now())
	self.cashbox.AddFrom(&self.coins)
	collected := self.cashbox.Total()
	self.metrics.onBuy(r, collected)
	self.Log.Infof("%s receipt=%s minutes=%d paid=%s coins=%s collected=%s",
		tag, r.ID(), r.Value(), r.Paid().Format100I(), self.coins.String(), collected.Format100I())
	self.locked_reset()
	return r
}

// Cancel returns coins inserted in current transaction, only nominals with count>0.
// Result is never nil.
func (self *PayStation) Cancel() map[currency.Nominal]uint {
	self.lk.Lock()
	defer self.lk.Unlock()
	return self.locked_cancel("paystation.cancel")
}

// CancelIfIdle cancels transaction without activity for longer than timeout.
// ok=false means nothing was cancelled.
func (self *PayStation) CancelIfIdle(timeout time.Duration) (map[currency.Nominal]uint, bool) {
	self.lk.Lock()
	defer self.lk.Unlock()
	if self.locked_idleFor() <= timeout {
		return nil, false
	}
	return self.locked_cancel("paystation.cancel-idle"), true
}

// IdleFor is time since last activity of current transaction, 0 when no transaction.
func (self *PayStation) IdleFor() time.Duration {
	self.lk.Lock()
	defer self.lk.Unlock()
	return self.locked_idleFor()
}

func (self *PayStation) Empty() currency.Amount {
	const tag = "paystation.empty"

	self.lk.Lock()
	defer self.lk.Unlock()

	amount := self.cashbox.Total()
	self.Log.Debugf("%s cashbox=%s", tag, self.cashbox.String())
	self.cashbox.Clear()
	self.metrics.onEmpty(amount)
	self.Log.Infof("%s amount=%s", tag, amount.Format100I())
	return amount
}

func (self *PayStation) locked_cancel(tag string) map[currency.Nominal]uint {
	returned := self.coins.ToMap()
	self.metrics.onCancel()
	self.Log.Infof("%s returned=%s", tag, self.coins.String())
	self.locked_reset()
	return returned
}

func (self *PayStation) locked_idleFor() time.Duration {
	if self.activity.IsZero() {
		return 0
	}
	cur := atomic_clock.New()
	cur.Set(self.now().UnixNano())
	return cur.Sub(&self.activity)
}

func (self *PayStation) locked_reset() {
	self.inserted = 0
	self.minutes = 0
	self.coins.Clear()
	self.activity.Set(0)
}
