package analysis

import (
	"fmt"
	"strings"
)

// Field is one raw box-score statistic.
type Field int

// Supported raw fields. The set is closed: anything not listed here is
// rejected by ParseStat.
const (
	Points Field = iota + 1
	Rebounds
	DefensiveRebounds
	OffensiveRebounds
	Assists
	Blocks
	Steals
	Turnovers
	ThreesMade
	ThreesAttempted
	FieldGoalsAttempted
	FreeThrowsMade
)

// MaxStatFields is the largest number of fields a compound stat may sum.
const MaxStatFields = 3

type fieldInfo struct {
	token string
	label string
	short string
}

var fieldTable = map[Field]fieldInfo{
	Points:              {"pts", "Points", "Pts"},
	Rebounds:            {"reb", "Rebounds", "Rebs"},
	DefensiveRebounds:   {"dreb", "Defensive Rebounds", "DRebs"},
	OffensiveRebounds:   {"oreb", "Offensive Rebounds", "ORebs"},
	Assists:             {"ast", "Assists", "Asts"},
	Blocks:              {"blk", "Blocked Shots", "Blks"},
	Steals:              {"stl", "Steals", "Stls"},
	Turnovers:           {"tov", "Turnovers", "TOs"},
	ThreesMade:          {"fg3m", "3-PT Made", "3PM"},
	ThreesAttempted:     {"fg3a", "3-PT Attempted", "3PA"},
	FieldGoalsAttempted: {"fga", "FG Attempted", "FGA"},
	FreeThrowsMade:      {"ftm", "Free Throws Made", "FTM"},
}

var tokenTable = func() map[string]Field {
	m := make(map[string]Field, len(fieldTable))
	for f, info := range fieldTable {
		m[info.token] = f
	}
	return m
}()

// AllFields returns every supported field in declaration order.
func AllFields() []Field {
	fields := make([]Field, 0, len(fieldTable))
	for f := Points; f <= FreeThrowsMade; f++ {
		fields = append(fields, f)
	}
	return fields
}

// Token returns the abbreviation used in stat tokens, e.g. "pts".
func (f Field) Token() string {
	return fieldTable[f].token
}

// Label returns the long display name, e.g. "Points".
func (f Field) Label() string {
	return fieldTable[f].label
}

// Valid reports whether f is one of the supported fields.
func (f Field) Valid() bool {
	_, ok := fieldTable[f]
	return ok
}

func (f Field) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return f.Token()
}

// FieldFromToken maps an abbreviation to its field.
func FieldFromToken(token string) (Field, bool) {
	f, ok := tokenTable[token]
	return f, ok
}

// StatSpec is a parsed stat category: one field, or a sum of up to
// MaxStatFields distinct fields.
type StatSpec struct {
	Fields []Field `json:"-"`
	Token  string  `json:"token"`
	Label  string  `json:"label"`
}

// ParseStat parses a "+"-joined token such as "pts+reb+ast".
// Field order follows the input and only affects Token and Label.
func ParseStat(token string) (StatSpec, error) {
	token = strings.ToLower(strings.TrimSpace(token))
	if strings.Trim(token, "+ ") == "" {
		return StatSpec{}, ErrEmptyStatSpec
	}

	parts := strings.Split(token, "+")
	fields := make([]Field, 0, len(parts))
	seen := make(map[Field]bool, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		f, ok := FieldFromToken(part)
		if !ok {
			return StatSpec{}, fmt.Errorf("%w: %q", ErrUnknownStatToken, part)
		}
		if seen[f] {
			return StatSpec{}, fmt.Errorf("%w: %q appears more than once", ErrInvalidStatCombination, part)
		}
		seen[f] = true
		fields = append(fields, f)
	}

	if len(fields) == 0 {
		return StatSpec{}, ErrEmptyStatSpec
	}
	if len(fields) > MaxStatFields {
		return StatSpec{}, fmt.Errorf("%w: %d fields, at most %d allowed", ErrInvalidStatCombination, len(fields), MaxStatFields)
	}

	return newStatSpec(fields), nil
}

// MustParseStat is ParseStat for package-level presets; it panics on error.
func MustParseStat(token string) StatSpec {
	spec, err := ParseStat(token)
	if err != nil {
		panic(err)
	}
	return spec
}

func newStatSpec(fields []Field) StatSpec {
	tokens := make([]string, len(fields))
	for i, f := range fields {
		tokens[i] = f.Token()
	}

	label := fields[0].Label()
	if len(fields) > 1 {
		shorts := make([]string, len(fields))
		for i, f := range fields {
			shorts[i] = fieldTable[f].short
		}
		label = strings.Join(shorts, "+")
	}

	return StatSpec{
		Fields: fields,
		Token:  strings.Join(tokens, "+"),
		Label:  label,
	}
}

// Compound reports whether the spec sums more than one field.
func (s StatSpec) Compound() bool {
	return len(s.Fields) > 1
}

// presetTokens are the categories offered by the stat picker, in picker order.
var presetTokens = []string{
	"pts", "reb", "dreb", "oreb", "ast", "blk", "stl", "tov",
	"fg3m", "fg3a", "fga", "ftm",
	"pts+ast", "reb+ast", "pts+reb", "blk+stl", "pts+reb+ast",
}

var presets = func() []StatSpec {
	specs := make([]StatSpec, len(presetTokens))
	for i, t := range presetTokens {
		specs[i] = MustParseStat(t)
	}
	return specs
}()

// Presets returns the stat categories offered to users by default.
func Presets() []StatSpec {
	out := make([]StatSpec, len(presets))
	copy(out, presets)
	return out
}
