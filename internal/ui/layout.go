package ui

// Fixed chrome around the results list, in terminal rows.
const (
	headerHeight = 1
	// Input box is one line plus a rounded border.
	inputHeight  = 3
	footerHeight = 1
)

// Column sizing for result rows.
const (
	// LayoutCompactWidth is the width below which year and rating are hidden
	// even when details are enabled.
	LayoutCompactWidth = 60

	// detailsWidth fits "  1999   8.7".
	detailsWidth = 12

	// helpModalWidth is the fixed width of the help overlay.
	helpModalWidth = 44
)

func resultsHeight(total int) int {
	h := total - headerHeight - inputHeight - footerHeight
	if h < 1 {
		return 1
	}
	return h
}
