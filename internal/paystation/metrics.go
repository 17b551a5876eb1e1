package paystation

import (
	"strconv"

	"github.com/juju/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/temoto/paystation/currency"
)

// Metrics methods are nil-safe, station without metrics just skips them.
type Metrics struct {
	coins     *prometheus.CounterVec
	rejected  prometheus.Counter
	receipts  prometheus.Counter
	minutes   prometheus.Counter
	cancels   prometheus.Counter
	collected prometheus.Gauge
	emptied   prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	const ns = "paystation"
	m := &Metrics{
		coins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Name: "coins_total", Help: "Accepted coins by nominal.",
		}, []string{"nominal"}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Name: "coins_rejected_total", Help: "Rejected invalid coins.",
		}),
		receipts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Name: "receipts_total", Help: "Issued receipts.",
		}),
		minutes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Name: "minutes_sold_total", Help: "Parking minutes on issued receipts.",
		}),
		cancels: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Name: "cancels_total", Help: "Cancelled transactions.",
		}),
		collected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns, Name: "collected_amount", Help: "Money in cashbox, lowest currency unit.",
		}),
		emptied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Name: "emptied_amount_total", Help: "Money taken out of cashbox, lowest currency unit.",
		}),
	}
	for _, c := range []prometheus.Collector{m.coins, m.rejected, m.receipts, m.minutes, m.cancels, m.collected, m.emptied} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Annotate(err, "paystation metrics")
		}
	}
	return m, nil
}

func (m *Metrics) onCoin(n currency.Nominal) {
	if m == nil {
		return
	}
	m.coins.WithLabelValues(strconv.FormatUint(uint64(n), 10)).Inc()
}

func (m *Metrics) onReject() {
	if m == nil {
		return
	}
	m.rejected.Inc()
}

func (m *Metrics) onBuy(r Receipt, collected currency.Amount) {
	if m == nil {
		return
	}
	m.receipts.Inc()
	m.minutes.Add(float64(r.Value()))
	m.collected.Set(float64(collected))
}

func (m *Metrics) onCancel() {
	if m == nil {
		return
	}
	m.cancels.Inc()
}

func (m *Metrics) onEmpty(amount currency.Amount) {
	if m == nil {
		return
	}
	m.emptied.Add(float64(amount))
	m.collected.Set(0)
}
