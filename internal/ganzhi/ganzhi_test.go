package ganzhi

import (
	"encoding/json"
	"testing"
)

func TestPillarAt(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "甲子"},
		{1, "乙丑"},
		{10, "甲戌"},
		{35, "己亥"},
		{54, "戊午"},
		{59, "癸亥"},
		{60, "甲子"},
		{-1, "癸亥"},
		{-60, "甲子"},
	}

	for _, tt := range tests {
		got := PillarAt(tt.index).String()
		if got != tt.want {
			t.Errorf("PillarAt(%d) = %s, want %s", tt.index, got, tt.want)
		}
	}
}

func TestPillarIndexRoundTrip(t *testing.T) {
	for i := 0; i < CycleLength; i++ {
		p := PillarAt(i)
		if !p.Valid() {
			t.Errorf("PillarAt(%d) = %s is not valid", i, p)
		}
		if got := p.Index(); got != i {
			t.Errorf("PillarAt(%d).Index() = %d", i, got)
		}
	}
}

func TestPillarAdd(t *testing.T) {
	p := PillarAt(58)
	if got := p.Add(3).String(); got != "乙丑" {
		t.Errorf("壬戌.Add(3) = %s, want 乙丑", got)
	}
	if got := p.Add(-58).String(); got != "甲子" {
		t.Errorf("壬戌.Add(-58) = %s, want 甲子", got)
	}
}

func TestParsePillar(t *testing.T) {
	tests := []struct {
		input   string
		want    Pillar
		wantErr bool
	}{
		{"壬子", Pillar{StemRen, BranchZi}, false},
		{" 甲子 ", Pillar{StemJia, BranchZi}, false},
		{"癸亥", Pillar{StemGui, BranchHai}, false},
		{"甲丑", Pillar{}, true}, // mixed polarity never occurs
		{"壬", Pillar{}, true},
		{"壬子年", Pillar{}, true},
		{"子壬", Pillar{}, true},
		{"", Pillar{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePillar(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePillar(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParsePillar(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPillarJSON(t *testing.T) {
	data, err := json.Marshal(map[string]Pillar{"year": {StemJi, BranchHai}})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"year":"己亥"}` {
		t.Errorf("Marshal() = %s", data)
	}

	var decoded map[string]Pillar
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded["year"] != (Pillar{StemJi, BranchHai}) {
		t.Errorf("Unmarshal() = %v", decoded["year"])
	}
}

func TestStemAttributes(t *testing.T) {
	tests := []struct {
		stem     Stem
		element  Element
		polarity Polarity
	}{
		{StemJia, Wood, Yang},
		{StemYi, Wood, Yin},
		{StemDing, Fire, Yin},
		{StemWu, Earth, Yang},
		{StemXin, Metal, Yin},
		{StemRen, Water, Yang},
		{StemGui, Water, Yin},
	}

	for _, tt := range tests {
		if got := tt.stem.Element(); got != tt.element {
			t.Errorf("%s.Element() = %s, want %s", tt.stem, got, tt.element)
		}
		if got := tt.stem.Polarity(); got != tt.polarity {
			t.Errorf("%s.Polarity() = %s, want %s", tt.stem, got, tt.polarity)
		}
	}
}

func TestBranchForHour(t *testing.T) {
	tests := []struct {
		hour int
		want Branch
	}{
		{0, BranchZi},
		{23, BranchZi},
		{24, BranchZi},
		{1, BranchChou},
		{2, BranchChou},
		{3, BranchYin},
		{9, BranchSi},
		{10, BranchSi},
		{11, BranchWu},
		{12, BranchWu},
		{19, BranchXu},
		{20, BranchXu},
		{21, BranchHai},
		{22, BranchHai},
	}

	for _, tt := range tests {
		if got := BranchForHour(tt.hour); got != tt.want {
			t.Errorf("BranchForHour(%d) = %s, want %s", tt.hour, got, tt.want)
		}
	}
}

func TestBranchHoursMatchesBranchForHour(t *testing.T) {
	for b := BranchZi; b <= BranchHai; b++ {
		start, end := b.Hours()
		if got := BranchForHour(start); got != b {
			t.Errorf("BranchForHour(start of %s = %d) = %s", b, start, got)
		}
		last := (end + 23) % 24
		if got := BranchForHour(last); got != b {
			t.Errorf("BranchForHour(last hour of %s = %d) = %s", b, last, got)
		}
	}
}

func TestElementCycles(t *testing.T) {
	if !Wood.Generates(Fire) || !Water.Generates(Wood) {
		t.Error("generation cycle broken")
	}
	if !Wood.Controls(Earth) || !Metal.Controls(Wood) || !Water.Controls(Fire) {
		t.Error("control cycle broken")
	}
	if Fire.Generates(Wood) {
		t.Error("Fire.Generates(Wood) = true")
	}
}
