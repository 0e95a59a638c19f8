// Package sexagenary maps calendar dates onto the sexagenary cycle and the
// five-element grouping derived from it. The precise solar-to-lunar
// conversion is delegated to an external library; an approximate fallback
// keeps the mapping available offline.
package sexagenary

import (
	"fmt"
	"time"
)

// Element is one of the five categorical labels derived from a pillar's
// heavenly stem.
type Element string

const (
	Wood  Element = "木"
	Fire  Element = "火"
	Earth Element = "土"
	Metal Element = "金"
	Water Element = "水"
)

// Elements lists the five labels in canonical order.
var Elements = []Element{Wood, Fire, Earth, Metal, Water}

var stems = []rune("甲乙丙丁戊己庚辛壬癸")

var branches = []rune("子丑寅卯辰巳午未申酉戌亥")

var stemElements = map[rune]Element{
	'甲': Wood, '乙': Wood,
	'丙': Fire, '丁': Fire,
	'戊': Earth, '己': Earth,
	'庚': Metal, '辛': Metal,
	'壬': Water, '癸': Water,
}

var branchElements = map[rune]Element{
	'子': Water, '丑': Earth,
	'寅': Wood, '卯': Wood,
	'辰': Earth, '巳': Fire,
	'午': Fire, '未': Earth,
	'申': Metal, '酉': Metal,
	'戌': Earth, '亥': Water,
}

var elementColors = map[Element]string{
	Wood:  "#22c55e",
	Fire:  "#ef4444",
	Earth: "#eab308",
	Metal: "#94a3b8",
	Water: "#3b82f6",
}

// fallbackColor is used for characters outside the stem/branch tables.
const fallbackColor = "#64748b"

// ElementOfStem maps a heavenly-stem character to its element.
func ElementOfStem(stem rune) (Element, bool) {
	e, ok := stemElements[stem]
	return e, ok
}

// ElementOfBranch maps an earthly-branch character to its element.
func ElementOfBranch(branch rune) (Element, bool) {
	e, ok := branchElements[branch]
	return e, ok
}

// ElementOf resolves either a stem or a branch character, stems first.
func ElementOf(char rune) (Element, bool) {
	if e, ok := stemElements[char]; ok {
		return e, true
	}
	e, ok := branchElements[char]
	return e, ok
}

// ElementColor returns the display color for an element, a neutral gray
// for anything unknown.
func ElementColor(e Element) string {
	if c, ok := elementColors[e]; ok {
		return c
	}
	return fallbackColor
}

// CharColor returns the element color for a stem or branch character.
func CharColor(char rune) string {
	e, ok := ElementOf(char)
	if !ok {
		return fallbackColor
	}
	return ElementColor(e)
}

// Pillar is one stem/branch pair of a sexagenary label.
type Pillar struct {
	Stem   rune `json:"-"`
	Branch rune `json:"-"`
}

func (p Pillar) String() string {
	return string(p.Stem) + string(p.Branch)
}

// Element returns the pillar's element, derived from its stem.
func (p Pillar) Element() (Element, bool) {
	return ElementOfStem(p.Stem)
}

// Pillars is a full sexagenary label for a date: year, month and day pillar.
type Pillars struct {
	Year  Pillar
	Month Pillar
	Day   Pillar
}

func (p Pillars) String() string {
	return fmt.Sprintf("%s %s %s", p.Year, p.Month, p.Day)
}

// Resolver converts a solar calendar date to its sexagenary pillars.
type Resolver interface {
	Pillars(date time.Time) (Pillars, error)
}

// DayElement resolves the element of a date's day pillar.
func DayElement(r Resolver, date time.Time) (Element, error) {
	p, err := r.Pillars(date)
	if err != nil {
		return "", err
	}
	e, ok := p.Day.Element()
	if !ok {
		return "", fmt.Errorf("no element for day stem %q", string(p.Day.Stem))
	}
	return e, nil
}

func pillarAt(index int) Pillar {
	index = ((index % 60) + 60) % 60
	return Pillar{Stem: stems[index%10], Branch: branches[index%12]}
}
