package scan

import "bytes"

// Kind classifies one input line.
type Kind uint8

const (
	// KindOther is any line that is neither an author nor a place line.
	KindOther Kind = iota
	// KindAuthor is `"author_id": "<digits>",`.
	KindAuthor
	// KindPlace is `"full_name": "<text>",`.
	KindPlace
)

func (k Kind) String() string {
	switch k {
	case KindAuthor:
		return "author"
	case KindPlace:
		return "place"
	default:
		return "other"
	}
}

var (
	authorPrefix = []byte(`"author_id": "`)
	placePrefix  = []byte(`"full_name": "`)
	valueSuffix  = []byte(`",`)
)

// Classify recognizes the two line shapes of the input stream after
// trimming surrounding whitespace, and returns the quoted value. The
// returned slice aliases line.
func Classify(line []byte) (Kind, []byte) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 || line[0] != '"' || !bytes.HasSuffix(line, valueSuffix) {
		return KindOther, nil
	}

	if v, ok := value(line, authorPrefix); ok && isDigits(v) {
		return KindAuthor, v
	}

	if v, ok := value(line, placePrefix); ok {
		return KindPlace, v
	}

	return KindOther, nil
}

// value extracts the non-empty text between prefix and the trailing `",`.
func value(line, prefix []byte) ([]byte, bool) {
	if !bytes.HasPrefix(line, prefix) {
		return nil, false
	}
	end := len(line) - len(valueSuffix)
	if end <= len(prefix) {
		return nil, false
	}
	return line[len(prefix):end], true
}

func isDigits(b []byte) bool {
	for _, c := range b {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(b) > 0
}
