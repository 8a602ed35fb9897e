package ganzhi

import "fmt"

// TenGod classifies a target Stem relative to a reference Stem by their
// elements and polarities.
type TenGod int

const (
	Companion        TenGod = iota // 比肩: same element, same polarity
	RobWealth                      // 劫財: same element, opposite polarity
	EatingGod                      // 食神: reference generates target, same polarity
	HurtingOfficer                 // 傷官: reference generates target, opposite polarity
	IndirectWealth                 // 偏財: reference controls target, same polarity
	DirectWealth                   // 正財: reference controls target, opposite polarity
	SevenKillings                  // 七殺: target controls reference, same polarity
	DirectOfficer                  // 正官: target controls reference, opposite polarity
	IndirectResource               // 偏印: target generates reference, same polarity
	DirectResource                 // 正印: target generates reference, opposite polarity
)

var tenGodNames = [10]string{"比肩", "劫財", "食神", "傷官", "偏財", "正財", "七殺", "正官", "偏印", "正印"}

var tenGodShort = [10]string{"比", "劫", "食", "傷", "才", "財", "殺", "官", "梟", "印"}

func (g TenGod) String() string {
	if g < Companion || g > DirectResource {
		return fmt.Sprintf("TenGod(%d)", int(g))
	}
	return tenGodNames[g]
}

// Short returns the one-character label used on charts.
func (g TenGod) Short() string {
	if g < Companion || g > DirectResource {
		return "?"
	}
	return tenGodShort[g]
}

// MarshalText renders the full two-character name.
func (g TenGod) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// FindTenGod returns the relation of target to reference. It is total over
// all pairs of valid stems.
//
// The element distance d = (target - reference) mod 5 selects the pair of
// relations and matching polarity selects the first of the pair:
//
//	d=0 比肩/劫財  d=1 食神/傷官  d=2 偏財/正財  d=3 七殺/正官  d=4 偏印/正印
func FindTenGod(reference, target Stem) TenGod {
	d := mod(int(target.Element())-int(reference.Element()), 5)
	g := TenGod(2 * d)
	if reference.Polarity() != target.Polarity() {
		g++
	}
	return g
}
