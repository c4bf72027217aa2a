package source

// LineCol is a human-readable 1-based line/column position.
type LineCol struct {
	Line uint32
	Col  uint32
}

// File is an immutable source file: path, byte content and a precomputed
// newline index for span-to-line/column resolution. Once registered, a File
// is shared by reference from every diagnostic that cites it and outlives
// all of them for the lifetime of the compilation.
type File struct {
	ID      FileID
	Path    string
	Text    string
	lineIdx []uint32 // byte offset of each '\n', ascending
}

func newFile(id FileID, path, text string) *File {
	return &File{
		ID:      id,
		Path:    path,
		Text:    text,
		lineIdx: buildLineIndex(text),
	}
}

func buildLineIndex(text string) []uint32 {
	idx := make([]uint32, 0, 16)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			idx = append(idx, uint32(i))
		}
	}
	return idx
}

// ToLineCol converts a byte offset into a 1-based line/column position.
func (f *File) ToLineCol(offset uint32) LineCol {
	line := uint32(1)
	lineStart := uint32(0)
	for _, nl := range f.lineIdx {
		if nl >= offset {
			break
		}
		line++
		lineStart = nl + 1
	}
	return LineCol{Line: line, Col: offset - lineStart + 1}
}

// Line returns the text of the given 1-based line number, without its
// trailing newline. Returns "" for an out-of-range line.
func (f *File) Line(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	var start uint32
	if lineNum > 1 {
		if int(lineNum-2) >= len(f.lineIdx) {
			return ""
		}
		start = f.lineIdx[lineNum-2] + 1
	}
	var end uint32
	if int(lineNum-1) < len(f.lineIdx) {
		end = f.lineIdx[lineNum-1]
	} else {
		end = uint32(len(f.Text))
	}
	if start > uint32(len(f.Text)) {
		return ""
	}
	if end > uint32(len(f.Text)) {
		end = uint32(len(f.Text))
	}
	return f.Text[start:end]
}

// Slice returns the text covered by span. Callers must ensure span.File
// matches this file.
func (f *File) Slice(span Span) string {
	if int(span.End) > len(f.Text) || span.Start > span.End {
		return ""
	}
	return f.Text[span.Start:span.End]
}
