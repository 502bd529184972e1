package chunking

// Splitter cuts reply text into ordered segments of at most Limit characters.
// Segments cover the input exactly once; no word or sentence boundaries are
// respected.
type Splitter struct {
	Limit int
}

func NewSplitter(limit int) *Splitter {
	if limit <= 0 {
		limit = 4000
	}
	return &Splitter{Limit: limit}
}

func (s *Splitter) Split(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	out := make([]string, 0, len(runes)/s.Limit+1)
	for start := 0; start < len(runes); start += s.Limit {
		end := start + s.Limit
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
	}
	return out
}
