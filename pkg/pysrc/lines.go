package pysrc

// LineOf returns the 1-based line number containing byte offset off.
func LineOf(src string, off int) int {
	return lineAt(src, off)
}

// LineTextOf returns the text of the line containing byte offset off,
// without the trailing newline.
func LineTextOf(src string, off int) string {
	return lineText(src, off)
}
