package syntax

// Span is a styled byte range of one line. It is only meaningful for the
// exact line text it was computed from.
type Span struct {
	Start  int
	Length int
	Style  Style
}

// End returns the exclusive end offset.
func (s Span) End() int { return s.Start + s.Length }

// StyleSetter is the host hook that receives highlight results.
type StyleSetter interface {
	SetStyle(start, length int, style Style)
}

// StyleSetterFunc adapts a function to StyleSetter.
type StyleSetterFunc func(start, length int, style Style)

// SetStyle calls f.
func (f StyleSetterFunc) SetStyle(start, length int, style Style) { f(start, length, style) }

// Highlight scans text once per rule, in table order, and returns a span
// for every non-overlapping match of that rule. Each rule sees the
// original text regardless of what earlier rules matched, so spans from
// different rules may overlap; the order of the returned slice is the
// order in which they must be applied. Zero-length matches are dropped.
func Highlight(text string, table Table) []Span {
	if text == "" || table.IsEmpty() {
		return nil
	}

	var spans []Span
	for _, rule := range table.rules {
		for _, loc := range rule.Pattern.FindAllStringIndex(text, -1) {
			if loc[1] <= loc[0] {
				continue
			}
			spans = append(spans, Span{Start: loc[0], Length: loc[1] - loc[0], Style: rule.Style})
		}
	}
	return spans
}

// Apply writes spans through setter in order, so a later span masks any
// earlier span over the bytes they share.
func Apply(spans []Span, setter StyleSetter) {
	for _, s := range spans {
		setter.SetStyle(s.Start, s.Length, s.Style)
	}
}

// Resolve flattens spans (in application order) over a line of lineLen
// bytes into sorted, non-overlapping runs. Each byte takes the style of
// the last span covering it and adjacent bytes with equal style merge.
// Unstyled gaps are omitted.
func Resolve(lineLen int, spans []Span) []Span {
	if lineLen <= 0 || len(spans) == 0 {
		return nil
	}

	cells := make([]Style, lineLen)
	Apply(spans, StyleSetterFunc(func(start, length int, style Style) {
		end := min(start+length, lineLen)
		for i := max(start, 0); i < end; i++ {
			cells[i] = style
		}
	}))

	var runs []Span
	for i := 0; i < lineLen; {
		style := cells[i]
		j := i + 1
		for j < lineLen && cells[j] == style {
			j++
		}
		if style != StyleNone {
			runs = append(runs, Span{Start: i, Length: j - i, Style: style})
		}
		i = j
	}
	return runs
}
