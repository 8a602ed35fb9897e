// Package ganzhi provides the Heavenly Stems, Earthly Branches and the
// sexagenary (Stem+Branch) cycle built from them.
package ganzhi

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Element is one of the Five Elements, ordered along the generation cycle:
// each element generates the next one and controls the one after that.
type Element int

const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

var elementNames = [5]string{"木", "火", "土", "金", "水"}

func (e Element) String() string {
	if e < Wood || e > Water {
		return fmt.Sprintf("Element(%d)", int(e))
	}
	return elementNames[e]
}

// Generates reports whether e produces o (Wood → Fire → Earth → Metal → Water → Wood).
func (e Element) Generates(o Element) bool {
	return (e+1)%5 == o
}

// Controls reports whether e overcomes o (Wood → Earth → Water → Fire → Metal → Wood).
func (e Element) Controls(o Element) bool {
	return (e+2)%5 == o
}

// Polarity is the Yin/Yang assignment of a Stem or Branch.
type Polarity int

const (
	Yang Polarity = iota
	Yin
)

func (p Polarity) String() string {
	if p == Yin {
		return "陰"
	}
	return "陽"
}

// Stem is one of the ten Heavenly Stems.
type Stem int

const (
	StemJia Stem = iota
	StemYi
	StemBing
	StemDing
	StemWu
	StemJi
	StemGeng
	StemXin
	StemRen
	StemGui
)

var stemNames = [10]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

func (s Stem) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Stem(%d)", int(s))
	}
	return stemNames[s]
}

// Valid reports whether s is one of the ten stems.
func (s Stem) Valid() bool {
	return s >= StemJia && s <= StemGui
}

// Element returns the stem's element; stems come in Yang/Yin pairs per element.
func (s Stem) Element() Element {
	return Element(s / 2)
}

// Polarity returns Yang for even stems and Yin for odd ones.
func (s Stem) Polarity() Polarity {
	return Polarity(s % 2)
}

// ParseStem parses a single stem character.
func ParseStem(v string) (Stem, error) {
	for i, name := range stemNames {
		if v == name {
			return Stem(i), nil
		}
	}
	return 0, fmt.Errorf("unknown stem %q", v)
}

// Branch is one of the twelve Earthly Branches.
type Branch int

const (
	BranchZi Branch = iota
	BranchChou
	BranchYin
	BranchMao
	BranchChen
	BranchSi
	BranchWu
	BranchWei
	BranchShen
	BranchYou
	BranchXu
	BranchHai
)

var branchNames = [12]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

var branchElements = [12]Element{
	Water, Earth, Wood, Wood, Earth, Fire,
	Fire, Earth, Metal, Metal, Earth, Water,
}

func (b Branch) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Branch(%d)", int(b))
	}
	return branchNames[b]
}

// Valid reports whether b is one of the twelve branches.
func (b Branch) Valid() bool {
	return b >= BranchZi && b <= BranchHai
}

// Element returns the branch's element.
func (b Branch) Element() Element {
	return branchElements[b]
}

// Polarity returns Yang for even branches and Yin for odd ones.
func (b Branch) Polarity() Polarity {
	return Polarity(b % 2)
}

// Hours returns the two-hour bracket governed by b as [start, end) on a
// 24-hour clock. The 子 bracket wraps midnight and is reported as [23, 1).
func (b Branch) Hours() (start, end int) {
	start = (2*int(b) + 23) % 24
	return start, (start + 2) % 24
}

// BranchForHour returns the branch whose bracket contains hour h.
// Both 0 and 23 (and 24, as an alias of midnight) fall in the 子 bracket.
func BranchForHour(h int) Branch {
	return Branch(((h + 1) / 2) % 12)
}

// ParseBranch parses a single branch character.
func ParseBranch(v string) (Branch, error) {
	for i, name := range branchNames {
		if v == name {
			return Branch(i), nil
		}
	}
	return 0, fmt.Errorf("unknown branch %q", v)
}

// CycleLength is the period of the sexagenary cycle.
const CycleLength = 60

// Pillar is a Stem+Branch pair denoting one calendrical unit.
type Pillar struct {
	Stem   Stem
	Branch Branch
}

// PillarAt returns the pillar at position i of the sexagenary cycle, where
// 甲子 is 0. Any integer is accepted and reduced modulo 60.
func PillarAt(i int) Pillar {
	i = mod(i, CycleLength)
	return Pillar{Stem: Stem(i % 10), Branch: Branch(i % 12)}
}

// Index returns the pillar's position in the sexagenary cycle.
// It is only meaningful for valid pillars.
func (p Pillar) Index() int {
	return mod(6*int(p.Stem)-5*int(p.Branch), CycleLength)
}

// Valid reports whether p occurs in the sexagenary cycle: stem and branch
// must both be in range and share the same polarity.
func (p Pillar) Valid() bool {
	return p.Stem.Valid() && p.Branch.Valid() && p.Stem.Polarity() == p.Branch.Polarity()
}

// Add returns the pillar n steps further along the cycle.
func (p Pillar) Add(n int) Pillar {
	return PillarAt(p.Index() + n)
}

func (p Pillar) String() string {
	return p.Stem.String() + p.Branch.String()
}

// MarshalText renders the pillar as its two characters.
func (p Pillar) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid pillar %s", p)
	}
	return []byte(p.String()), nil
}

// UnmarshalText parses a two-character pillar.
func (p *Pillar) UnmarshalText(text []byte) error {
	parsed, err := ParsePillar(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePillar parses a two-character Stem+Branch string such as "壬子".
func ParsePillar(v string) (Pillar, error) {
	v = strings.TrimSpace(v)
	if utf8.RuneCountInString(v) != 2 {
		return Pillar{}, fmt.Errorf("pillar %q must be exactly two characters", v)
	}

	r, size := utf8.DecodeRuneInString(v)
	stem, err := ParseStem(string(r))
	if err != nil {
		return Pillar{}, err
	}
	branch, err := ParseBranch(v[size:])
	if err != nil {
		return Pillar{}, err
	}

	p := Pillar{Stem: stem, Branch: branch}
	if !p.Valid() {
		return Pillar{}, fmt.Errorf("pillar %q does not occur in the sexagenary cycle", v)
	}
	return p, nil
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
