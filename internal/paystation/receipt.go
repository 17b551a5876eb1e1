package paystation

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/juju/errors"
	"github.com/skip2/go-qrcode"
	"github.com/temoto/paystation/currency"
)

// Receipt is proof of parking time bought. Value type, never changes after Buy.
type Receipt struct {
	id      uuid.UUID
	minutes int
	paid    currency.Amount
	coins   *currency.NominalGroup
	issued  time.Time
}

// NewReceipt takes ownership of coins, nil means none.
func NewReceipt(minutes int, paid currency.Amount, coins *currency.NominalGroup, issued time.Time) Receipt {
	if coins == nil {
		coins = currency.NewNominalGroup(Nominals()...)
	}
	return Receipt{
		id:      uuid.New(),
		minutes: minutes,
		paid:    paid,
		coins:   coins,
		issued:  issued,
	}
}

// Value is parking minutes.
func (r Receipt) Value() int              { return r.minutes }
func (r Receipt) ID() uuid.UUID           { return r.id }
func (r Receipt) Paid() currency.Amount   { return r.paid }
func (r Receipt) Issued() time.Time       { return r.issued }
func (r Receipt) ValidUntil() time.Time   { return r.issued.Add(time.Duration(r.minutes) * time.Minute) }
func (r Receipt) Duration() time.Duration { return time.Duration(r.minutes) * time.Minute }

// Coins returns new map on each call, receipt stays immutable.
func (r Receipt) Coins() map[currency.Nominal]uint { return r.coins.ToMap() }

func (r Receipt) CoinGroup() *currency.NominalGroup { return r.coins.Copy() }

func (r Receipt) String() string {
	return fmt.Sprintf("receipt=%s minutes=%d paid=%s issued=%s",
		r.id, r.minutes, r.paid.Format100I(), r.issued.Format(time.RFC3339))
}

// payload encoded in QR, parking enforcement scans it
func (r Receipt) qrPayload() string {
	return fmt.Sprintf("ps:%s:%d:%d", r.id, r.issued.Unix(), r.minutes)
}

func (r Receipt) QR() ([][]bool, error) {
	qr, err := qrcode.New(r.qrPayload(), qrcode.Medium)
	if err != nil {
		return nil, errors.Annotatef(err, "receipt=%s qr", r.id)
	}
	return qr.Bitmap(), nil
}

// QRText renders QR with unicode half blocks, two bitmap rows per line.
func (r Receipt) QRText() (string, error) {
	bitmap, err := r.QR()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for y := 0; y < len(bitmap); y += 2 {
		for x := range bitmap[y] {
			top := bitmap[y][x]
			bottom := y+1 < len(bitmap) && bitmap[y+1][x]
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}
