package shared

import (
	"fmt"
	"strings"
)

// TableType enumerates every kind of export the pipeline produces.
type TableType int

const (
	AmpChan TableType = iota
	AmpTime
	AmpUVDist
	AmpPhase
	PhaseChan
	PhaseTime
	PhaseUVDist
	AmpResidUVWave

	BandpassAmp
	BandpassPhase
	Delay
	BPInitialGainPhase
	PhaseShortGainPhase
	AmpGainTime
	AmpGainFreq
	PhaseGainTime
)

// Grouping says how the exports of one table type are split into files.
type Grouping int

const (
	ByField Grouping = iota
	ByAntenna
	BySPW
)

func (g Grouping) String() string {
	switch g {
	case ByAntenna:
		return "antenna"
	case BySPW:
		return "spw"
	}
	return "field"
}

// Selector is the filename token before the id: "ant" or "spw".
func (g Grouping) Selector() string {
	switch g {
	case ByAntenna:
		return "ant"
	case BySPW:
		return "spw"
	}
	return ""
}

type tableTypeDesc struct {
	tag      string
	grouping Grouping
	// calibration exports: <prefix>_<calPrefix>_<axis>_<quantity>_<selector><id>.txt
	calPrefix string
	axis      string
	quantity  string
}

var tableTypes = [...]tableTypeDesc{
	AmpChan:        {tag: "amp_chan"},
	AmpTime:        {tag: "amp_time"},
	AmpUVDist:      {tag: "amp_uvdist"},
	AmpPhase:       {tag: "amp_phase"},
	PhaseChan:      {tag: "phase_chan"},
	PhaseTime:      {tag: "phase_time"},
	PhaseUVDist:    {tag: "phase_uvdist"},
	AmpResidUVWave: {tag: "ampresid_uvwave"},

	BandpassAmp:         {"bp_amp", BySPW, "BPcal", "freq", "amp"},
	BandpassPhase:       {"bp_phase", BySPW, "BPcal", "freq", "phase"},
	Delay:               {"delay", ByAntenna, "delaycal", "freq", "delay"},
	BPInitialGainPhase:  {"bpinit_phase", ByAntenna, "BPinitialgain", "time", "phase"},
	PhaseShortGainPhase: {"phaseshort_phase", ByAntenna, "phaseshortgaincal", "time", "phase"},
	AmpGainTime:         {"ampgain_time", ByAntenna, "ampgaincal", "time", "amp"},
	AmpGainFreq:         {"ampgain_freq", ByAntenna, "ampgaincal", "freq", "amp"},
	PhaseGainTime:       {"phasegain_time", ByAntenna, "phasegaincal", "time", "phase"},
}

// FieldTableTypes are the per-field exports, in plot panel order.
var FieldTableTypes = []TableType{
	AmpChan, AmpTime, AmpUVDist, AmpPhase,
	PhaseChan, PhaseTime, PhaseUVDist, AmpResidUVWave,
}

func (t TableType) valid() bool {
	return t >= 0 && int(t) < len(tableTypes)
}

func (t TableType) String() string {
	if !t.valid() {
		return fmt.Sprintf("TableType(%d)", int(t))
	}
	return tableTypes[t].tag
}

func (t TableType) Grouping() Grouping {
	return tableTypes[t].grouping
}

// Quantity is the plotted quantity of a calibration export (amp, phase, delay).
func (t TableType) Quantity() string {
	return tableTypes[t].quantity
}

func (t TableType) MarshalText() ([]byte, error) {
	if !t.valid() {
		return nil, fmt.Errorf("invalid table type %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *TableType) UnmarshalText(text []byte) error {
	tt, err := ParseTableType(string(text))
	if err != nil {
		return err
	}
	*t = tt
	return nil
}

func ParseTableType(tag string) (TableType, error) {
	for i, desc := range tableTypes {
		if desc.tag == tag {
			return TableType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown table type %q", tag)
}

// FileName is the unpartitioned export name of a per-field table.
func (t TableType) FileName(field string) string {
	return fmt.Sprintf("field_%s_%s.txt", field, t)
}

// ScanPattern globs the per-scan partitions of a per-field table.
func (t TableType) ScanPattern(field string) string {
	return fmt.Sprintf("field_%s_%s.scan_*.txt", globEscape(field), t)
}

// CalPattern globs every antenna or SPW file of a calibration table type.
func (t TableType) CalPattern() string {
	desc := tableTypes[t]
	return fmt.Sprintf("*_%s_%s_%s_%s*.txt", desc.calPrefix, desc.axis, desc.quantity, desc.grouping.Selector())
}

func (t TableType) matchesCal(name CalFileName) bool {
	desc := tableTypes[t]
	return desc.grouping != ByField && desc.calPrefix == name.CalPrefix && desc.axis == name.Axis &&
		desc.quantity == name.Quantity && desc.grouping == name.Grouping
}

func globEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CalKind is one calibration table of the pipeline, exported as one or two
// table types.
type CalKind int

const (
	Bandpass CalKind = iota
	DelayCal
	BPInitialGain
	PhaseShortGainCal
	AmpGainCalTime
	AmpGainCalFreq
	PhaseGainCal
)

var CalKinds = []CalKind{
	Bandpass, DelayCal, BPInitialGain, PhaseShortGainCal,
	AmpGainCalTime, AmpGainCalFreq, PhaseGainCal,
}

var calKinds = [...]struct {
	name  string
	types []TableType
}{
	Bandpass:          {"bandpass", []TableType{BandpassAmp, BandpassPhase}},
	DelayCal:          {"delay", []TableType{Delay}},
	BPInitialGain:     {"bpinitialgain", []TableType{BPInitialGainPhase}},
	PhaseShortGainCal: {"phaseshortgaincal", []TableType{PhaseShortGainPhase}},
	AmpGainCalTime:    {"ampgaincal_time", []TableType{AmpGainTime}},
	AmpGainCalFreq:    {"ampgaincal_freq", []TableType{AmpGainFreq}},
	PhaseGainCal:      {"phasegaincal", []TableType{PhaseGainTime}},
}

func (k CalKind) String() string {
	if k < 0 || int(k) >= len(calKinds) {
		return fmt.Sprintf("CalKind(%d)", int(k))
	}
	return calKinds[k].name
}

func (k CalKind) TableTypes() []TableType {
	return calKinds[k].types
}

// Paired returns the amplitude and phase table types of kinds exported as a pair.
func (k CalKind) Paired() (amp TableType, phase TableType, ok bool) {
	types := calKinds[k].types
	if len(types) != 2 {
		return 0, 0, false
	}
	return types[0], types[1], true
}

func ParseCalKind(name string) (CalKind, error) {
	for i, desc := range calKinds {
		if desc.name == name {
			return CalKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown calibration table %q", name)
}
