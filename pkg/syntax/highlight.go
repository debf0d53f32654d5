package syntax

// separators are the bytes after which a digit may start a number.
const separators = " ,.()+-/*=~%<>[];"

func isSeparator(b byte) bool {
	for i := 0; i < len(separators); i++ {
		if separators[i] == b {
			return true
		}
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// HighlightRow classifies every byte of render and returns the classes,
// reusing hl's storage when it is large enough. It may open or close a
// string in st. With no active syntax every byte is Normal and st is not
// touched.
func HighlightRow(render []byte, hl []Class, st *State) []Class {
	if cap(hl) >= len(render) {
		hl = hl[:len(render)]
	} else {
		hl = make([]Class, len(render))
	}
	for i := range hl {
		hl[i] = Normal
	}

	if !st.Active() {
		return hl
	}

	flags := st.Syntax.Flags
	quote := st.Syntax.quote()
	prevSep := true

	for idx := 0; idx < len(render); {
		b := render[idx]
		prevClass := Normal
		if idx > 0 {
			prevClass = hl[idx-1]
		}

		if flags.Strings {
			if st.InString != 0 {
				hl[idx] = String
				if b == '\\' && idx+1 < len(render) {
					hl[idx+1] = String
					idx += 2
					continue
				}
				if b == st.InString {
					st.InString = 0
				}
				idx++
				prevSep = true
				continue
			}
			if b == '"' || b == quote {
				st.InString = b
				hl[idx] = String
				idx++
				continue
			}
		}

		if flags.Numbers && isDigit(b) && (prevClass == Number || prevSep) {
			hl[idx] = Number
			idx++
			prevSep = false
			continue
		}

		prevSep = isSeparator(b)
		idx++
	}

	return hl
}

// Line is a row whose highlight can be recomputed in place.
type Line interface {
	Rendered() []byte
	Highlight() []Class
	SetHighlight(hl []Class)
}

// HighlightDocument rescans lines in order, starting with no open string and
// threading st from each line into the next.
func HighlightDocument[L Line](lines []L, st *State) {
	if st == nil {
		return
	}
	st.InString = 0
	for _, line := range lines {
		line.SetHighlight(HighlightRow(line.Rendered(), line.Highlight(), st))
	}
}
