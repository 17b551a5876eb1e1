// Package console implements operator command language for pay station.
// Commands are separated by whitespace and executed in order:
//   25 25 buy
//   coin 10 display cancel
package console

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/c-bata/go-prompt"
	"github.com/juju/errors"
	"github.com/temoto/paystation/currency"
	"github.com/temoto/paystation/helpers"
	"github.com/temoto/paystation/internal/paystation"
	"github.com/temoto/paystation/internal/state"
	"github.com/temoto/paystation/log2"
)

const Usage = `syntax: commands separated by whitespace
- coin N   insert coin N cents (alias: N)
- display  show minutes bought so far
- buy      issue receipt, print QR
- cancel   return inserted coins
- empty    collect money from coin box
- status   show transaction and coin box
- help     this text
- exit     leave console
`

type Console struct {
	g      *state.Global
	log    *log2.Log
	w      io.Writer
	ShowQR bool
}

type action struct {
	name string
	f    func() error
}

func New(ctx context.Context, w io.Writer) *Console {
	return &Console{
		g:      state.GetGlobal(ctx),
		log:    log2.ContextValueLogger(ctx),
		w:      w,
		ShowQR: true,
	}
}

// Exec parses whole line first, nothing is executed on syntax error.
// Execution stops at first failed command.
func (self *Console) Exec(line string) error {
	actions, err := self.parse(line)
	if err != nil {
		return err
	}
	for _, a := range actions {
		if err := a.f(); err != nil {
			return errors.Annotate(err, a.name)
		}
	}
	return nil
}

func (self *Console) parse(line string) ([]action, error) {
	words := strings.Fields(line)
	actions := make([]action, 0, len(words))
	errs := make([]error, 0)
	for i := 0; i < len(words); i++ {
		word := strings.ToLower(words[i])
		switch word {
		case "coin":
			if i+1 >= len(words) {
				errs = append(errs, errors.Errorf("coin: expected value"))
				continue
			}
			i++
			a, err := self.parseCoin(words[i])
			if err != nil {
				errs = append(errs, err)
				continue
			}
			actions = append(actions, a)
		case "display":
			actions = append(actions, action{word, self.display})
		case "buy":
			actions = append(actions, action{word, self.buy})
		case "cancel":
			actions = append(actions, action{word, self.cancel})
		case "empty":
			actions = append(actions, action{word, self.empty})
		case "status":
			actions = append(actions, action{word, self.status})
		case "help", "/help":
			actions = append(actions, action{word, self.help})
		default:
			a, err := self.parseCoin(word)
			if err != nil {
				errs = append(errs, errors.Errorf("unknown command=%s", words[i]))
				continue
			}
			actions = append(actions, a)
		}
	}
	if len(errs) != 0 {
		return nil, helpers.FoldErrors(errs)
	}
	return actions, nil
}

func (self *Console) parseCoin(word string) (action, error) {
	n, err := strconv.ParseUint(word, 10, 32)
	if err != nil {
		return action{}, errors.Annotatef(err, "coin=%s", word)
	}
	coin := currency.Nominal(n)
	return action{"coin " + word, func() error { return self.coin(coin) }}, nil
}

func (self *Console) coin(n currency.Nominal) error {
	if err := self.g.AddPayment(n); err != nil {
		return err
	}
	return self.display()
}

func (self *Console) display() error {
	_, err := fmt.Fprintf(self.w, "display=%d\n", self.g.Station.ReadDisplay())
	return err
}

func (self *Console) buy() error {
	r := self.g.Buy()
	if _, err := fmt.Fprintln(self.w, r.String()); err != nil {
		return err
	}
	if !self.ShowQR {
		return nil
	}
	qr, err := r.QRText()
	if err != nil {
		return errors.Annotate(err, "qr")
	}
	_, err = io.WriteString(self.w, qr)
	return err
}

func (self *Console) cancel() error {
	ng, err := paystation.CoinGroup(self.g.Cancel())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(self.w, "returned=%s\n", formatCoins(ng))
	return err
}

func (self *Console) empty() error {
	amount := self.g.Empty()
	_, err := fmt.Fprintf(self.w, "emptied=%s\n", amount.Format100I())
	return err
}

func (self *Console) status() error {
	ps := self.g.Station
	_, err := fmt.Fprintf(self.w, "inserted=%s display=%d collected=%s idle=%v\n",
		ps.Inserted().Format100I(), ps.ReadDisplay(), ps.Collected().Format100I(), ps.IdleFor().Truncate(time.Second))
	return err
}

func (self *Console) help() error {
	_, err := io.WriteString(self.w, Usage)
	return err
}

// formatCoins renders coins ascending by nominal: "0.05x2,0.25x1".
func formatCoins(ng *currency.NominalGroup) string {
	parts := make([]string, 0)
	_ = ng.Iter(func(n currency.Nominal, c uint) error {
		if c != 0 {
			parts = append(parts, fmt.Sprintf("%sx%d", currency.Amount(n).Format100I(), c))
		}
		return nil
	})
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}

func (self *Console) Executor() func(string) {
	return func(line string) {
		if err := self.Exec(line); err != nil {
			self.log.Errorf("%s", errors.ErrorStack(err))
		}
	}
}

func (self *Console) Completer() func(d prompt.Document) []prompt.Suggest {
	suggests := []prompt.Suggest{
		{Text: "coin", Description: "insert coin: 5 10 25"},
		{Text: "display", Description: "minutes bought so far"},
		{Text: "buy", Description: "issue receipt"},
		{Text: "cancel", Description: "return inserted coins"},
		{Text: "empty", Description: "collect coin box"},
		{Text: "status", Description: "transaction and coin box"},
		{Text: "help"},
		{Text: "exit"},
	}
	return func(d prompt.Document) []prompt.Suggest {
		word := d.GetWordBeforeCursor()
		if word == "" {
			return nil
		}
		return prompt.FilterHasPrefix(suggests, word, true)
	}
}
