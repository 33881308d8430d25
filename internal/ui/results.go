package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/five82/marquee/internal/catalog"
	"github.com/five82/marquee/internal/tmdb"
)

// ResultsView is everything the results area depends on.
type ResultsView struct {
	Width       int
	Loading     bool
	Spinner     string // current spinner frame
	ErrorMsg    string
	Movies      []tmdb.Movie
	ShowDetails bool
}

// RenderResults draws the results area. Loading wins over an error, and an
// error wins over the list. An empty list renders as an empty string.
func RenderResults(st Styles, v ResultsView) string {
	switch {
	case v.Loading:
		return renderLoading(st, v.Spinner)
	case v.ErrorMsg != "":
		return st.DangerText.Render(fitWidth(v.ErrorMsg, v.Width))
	}

	if len(v.Movies) == 0 {
		return ""
	}

	details := v.ShowDetails && v.Width >= LayoutCompactWidth
	lines := make([]string, 0, len(v.Movies))
	for _, m := range v.Movies {
		lines = append(lines, renderMovieRow(st, m, v.Width, details))
	}
	return strings.Join(lines, "\n")
}

func renderLoading(st Styles, frame string) string {
	if frame == "" {
		return st.MutedText.Render("Loading...")
	}
	return st.AccentText.Render(strings.TrimRight(frame, " ")) + " " + st.MutedText.Render("Loading...")
}

func renderMovieRow(st Styles, m tmdb.Movie, width int, details bool) string {
	title := displayTitle(m)
	if !details {
		return st.Title.Render(fitWidth(title, width))
	}

	titleWidth := width - detailsWidth
	title = runewidth.FillRight(fitWidth(title, titleWidth), titleWidth)

	year := "----"
	if y := m.Year(); y > 0 {
		year = strconv.Itoa(y)
	}
	rating := "   -"
	if m.VoteCount > 0 {
		rating = fmt.Sprintf("%4.1f", m.VoteAverage)
	}

	return st.Title.Render(title) +
		"  " + st.Year.Render(year) +
		"  " + st.Rating.Render(rating)
}

func displayTitle(m tmdb.Movie) string {
	title := strings.TrimSpace(m.Title)
	if title == "" {
		title = strings.TrimSpace(m.OriginalTitle)
	}
	if title == "" {
		title = fmt.Sprintf("#%d", m.ID)
	}
	return title
}

// fitWidth truncates s to width display cells. Wide runes count double.
func fitWidth(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// statusLine summarizes the current outcome for the header.
func statusLine(loading bool, kind catalog.Kind, errMsg string, count int) string {
	switch {
	case loading:
		return "searching"
	case errMsg != "" || kind == catalog.KindError:
		return "error"
	case kind == catalog.KindSuccess && count == 1:
		return "1 movie"
	case kind == catalog.KindSuccess:
		return fmt.Sprintf("%d movies", count)
	default:
		return ""
	}
}
