package currency

import (
	"fmt"
	"sort"
	"strings"

	"github.com/juju/errors"
)

// Amount is integer counting lowest currency unit, e.g. $1.20 = 120
type Amount uint32

func (self Amount) Format100I() string { return fmt.Sprint(float32(self) / 100) }

// Nominal is value of one coin
type Nominal Amount

var ErrNominalInvalid = errors.New("Nominal is not valid for this group")

// NominalGroup counts coins of a fixed set of nominals.
// coin5 : 3
// coin10: 1
// coin25: 4
// total : 125
type NominalGroup struct {
	values map[Nominal]uint
}

func NewNominalGroup(valid ...Nominal) *NominalGroup {
	ng := &NominalGroup{}
	ng.SetValid(valid)
	return ng
}

func (self *NominalGroup) Copy() *NominalGroup {
	ng2 := &NominalGroup{
		values: make(map[Nominal]uint, len(self.values)),
	}
	for k, v := range self.values {
		ng2.values[k] = v
	}
	return ng2
}

func (self *NominalGroup) SetValid(valid []Nominal) {
	self.values = make(map[Nominal]uint, len(valid))
	for _, n := range valid {
		if n != 0 {
			self.values[n] = 0
		}
	}
}

func (self *NominalGroup) Valid(n Nominal) bool {
	_, ok := self.values[n]
	return ok
}

// Add does not modify group when n is not valid.
func (self *NominalGroup) Add(n Nominal, count uint) error {
	if !self.Valid(n) {
		return errors.Annotatef(ErrNominalInvalid, "Add(n=%s, c=%d)", Amount(n).Format100I(), count)
	}
	self.values[n] += count
	return nil
}

func (self *NominalGroup) AddFrom(source *NominalGroup) {
	if self.values == nil {
		self.values = make(map[Nominal]uint, len(source.values))
	}
	for k, v := range source.values {
		self.values[k] += v
	}
}

func (self *NominalGroup) Clear() {
	for n := range self.values {
		self.values[n] = 0
	}
}

func (self *NominalGroup) Iter(f func(nominal Nominal, count uint) error) error {
	for _, nominal := range self.Nominals() {
		if err := f(nominal, self.values[nominal]); err != nil {
			return err
		}
	}
	return nil
}

// Nominals returns valid nominals in ascending order.
func (self *NominalGroup) Nominals() []Nominal {
	ns := make([]Nominal, 0, len(self.values))
	for n := range self.values {
		ns = append(ns, n)
	}
	sort.Slice(ns, func(i, j int) bool { return ns[i] < ns[j] })
	return ns
}

func (self *NominalGroup) Total() Amount {
	sum := Amount(0)
	for nominal, count := range self.values {
		sum += Amount(nominal) * Amount(count)
	}
	return sum
}

// ToMap returns only nominals with count > 0. Result is never nil.
func (self *NominalGroup) ToMap() map[Nominal]uint {
	m := make(map[Nominal]uint, len(self.values))
	for nominal, count := range self.values {
		if count > 0 {
			m[nominal] = count
		}
	}
	return m
}

func (self *NominalGroup) ToMapUint32(m map[uint32]uint32) {
	for nominal, count := range self.values {
		if count > 0 {
			m[uint32(nominal)] += uint32(count)
		}
	}
}

func (self *NominalGroup) String() string {
	parts := make([]string, 0, len(self.values)+1)
	sum := Amount(0)
	for nominal, count := range self.values {
		if count > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", Amount(nominal).Format100I(), count))
			sum += Amount(nominal) * Amount(count)
		}
	}
	sort.Strings(parts)
	parts = append(parts, fmt.Sprintf("total:%s", sum.Format100I()))
	return strings.Join(parts, ",")
}
