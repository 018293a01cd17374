package order

// PluralForm is a grammatical number class for counted nouns.
type PluralForm int

const (
	PluralOne PluralForm = iota
	PluralFew
	PluralMany
)

// Plural picks the form for n using the East Slavic counting rule:
// 1, 21, 101 take "one"; 2-4, 22-24 take "few"; 11-14 and the rest take "many".
func Plural(n int) PluralForm {
	n %= 100
	if n < 0 {
		n = -n
	}
	if n >= 11 && n <= 14 {
		return PluralMany
	}
	switch d := n % 10; {
	case d == 1:
		return PluralOne
	case d >= 2 && d <= 4:
		return PluralFew
	default:
		return PluralMany
	}
}

// Forms holds the three spellings of one noun.
type Forms struct {
	One  string
	Few  string
	Many string
}

func (f Forms) For(n int) string {
	switch Plural(n) {
	case PluralOne:
		return f.One
	case PluralFew:
		return f.Few
	default:
		return f.Many
	}
}

// CoilForms is the unit rattan is sold in.
var CoilForms = Forms{One: "бухта", Few: "бухти", Many: "бухт"}

func CoilLabel(n int) string {
	return CoilForms.For(n)
}
