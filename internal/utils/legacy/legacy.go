// Package legacy decodes the flat files exported by the property-management
// system: a single-byte Central European codepage, '#' separated fields,
// DD/MM/YYYY dates and comma decimals.
package legacy

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// FieldDelimiter separates fields inside a record line. The format has no escaping.
const FieldDelimiter = "#"

// DateLayout is the Go layout of DD/MM/YYYY.
const DateLayout = "02/01/2006"

// DefaultCodepage is the codepage used by the exports unless configured otherwise.
const DefaultCodepage = "windows-1250"

var codepages = map[string]*charmap.Charmap{
	"windows-1250": charmap.Windows1250,
	"cp1250":       charmap.Windows1250,
	"iso-8859-2":   charmap.ISO8859_2,
	"latin2":       charmap.ISO8859_2,
	"cp852":        charmap.CodePage852,
}

// Decoder turns raw export bytes into text.
type Decoder struct {
	name string
	enc  encoding.Encoding
}

// NewDecoder returns a decoder for the named codepage. An empty name selects DefaultCodepage.
func NewDecoder(name string) (*Decoder, error) {
	if name == "" {
		name = DefaultCodepage
	}
	cm, ok := codepages[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unsupported legacy codepage %q", name)
	}
	return &Decoder{name: strings.ToLower(name), enc: cm}, nil
}

// Name returns the codepage name.
func (d *Decoder) Name() string {
	return d.name
}

// DecodeBuffer converts bytes in the decoder's codepage to a UTF-8 string.
// Carriage returns are dropped so callers can split on '\n' only.
func (d *Decoder) DecodeBuffer(b []byte) (string, error) {
	out, err := d.enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", d.name, err)
	}
	return strings.ReplaceAll(string(out), "\r", ""), nil
}

// DecodeBuffer decodes b with the default codepage.
func DecodeBuffer(b []byte) (string, error) {
	d, _ := NewDecoder(DefaultCodepage)
	return d.DecodeBuffer(b)
}

// ParseDate parses DD/MM/YYYY into local midnight of that calendar day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders t back as DD/MM/YYYY.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDecimal parses a number written with a comma as the fractional separator,
// e.g. "245,00".
func ParseDecimal(s string) (decimal.Decimal, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return decimal.Zero, fmt.Errorf("invalid decimal %q: empty value", s)
	}
	if strings.Count(v, ",") > 1 {
		return decimal.Zero, fmt.Errorf("invalid decimal %q: more than one separator", s)
	}
	d, err := decimal.NewFromString(strings.Replace(v, ",", ".", 1))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	return d, nil
}

// FormatDecimal renders d with the given number of fractional digits and a comma separator.
func FormatDecimal(d decimal.Decimal, places int32) string {
	return strings.Replace(d.StringFixed(places), ".", ",", 1)
}

// SameDay reports whether a and b fall on the same calendar day, ignoring their locations.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Fields splits a record line on the field delimiter.
func Fields(line string) []string {
	return strings.Split(line, FieldDelimiter)
}

// IsSeparatorLine reports whether line consists only of delimiter characters.
func IsSeparatorLine(line string) bool {
	l := strings.TrimSpace(line)
	return l != "" && strings.Trim(l, FieldDelimiter) == ""
}
