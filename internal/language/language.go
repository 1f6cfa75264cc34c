// Package language classifies dialogue text by script and register.
//
// The corpus mixes three registers: Tamil script, Tanglish (Tamil written
// phonetically in Latin script), and English. Classification is a cheap
// code-point scan rather than a locale-aware library: the only question
// answered is which of the three buckets a span belongs to.
package language

// Register is the script/register tag stored alongside each segment.
type Register string

const (
	// Tamil marks text containing at least one Tamil-script character.
	Tamil Register = "tamil"
	// Tanglish marks Tamil written phonetically in Latin script.
	Tanglish Register = "tanglish"
	// English marks predominantly-English text.
	English Register = "english"
)

// Tamil Unicode block.
const (
	tamilBlockLo = 0x0B80
	tamilBlockHi = 0x0BFF
)

// latinRatioThreshold is the fraction of Latin letters above which
// Latin-only text is treated as English rather than Tanglish.
// The ratio must exceed the threshold, not meet it.
const latinRatioThreshold = 0.7

// Valid reports whether r is one of the known registers.
func (r Register) Valid() bool {
	switch r {
	case Tamil, Tanglish, English:
		return true
	}
	return false
}

// Detect classifies a span of dialogue text.
//
// A single Tamil-script character is enough to classify the whole span as
// Tamil, so mixed-script lines stay in the Tamil bucket. Otherwise the
// Latin-letter ratio over all characters decides between English and
// Tanglish. Empty and whitespace-only spans classify as Tanglish by
// convention; that is the common register for transliterated dialogue and
// it avoids a 0/0 ratio.
//
// Detect is pure and total. The Tamil check must run before the ratio
// check: order is part of the contract.
func Detect(text string) Register {
	total := 0
	latin := 0
	for _, r := range text {
		if r >= tamilBlockLo && r <= tamilBlockHi {
			return Tamil
		}
		total++
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			latin++
		}
	}

	if total == 0 {
		return Tanglish
	}
	if float64(latin)/float64(total) > latinRatioThreshold {
		return English
	}
	return Tanglish
}
