package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/marquee/internal/tmdb"
)

var sample = []tmdb.Movie{
	{ID: 1, Title: "Star Wars", ReleaseDate: "1977-05-25", VoteAverage: 8.2, VoteCount: 20000, OriginalLanguage: "en"},
	{ID: 2, Title: "Amélie", ReleaseDate: "2001-04-25", VoteAverage: 7.9, VoteCount: 11000, OriginalLanguage: "fr"},
	{ID: 3, Title: "Cats", ReleaseDate: "2019-12-20", VoteAverage: 4.1, VoteCount: 1500, OriginalLanguage: "en"},
}

func ids(movies []tmdb.Movie) []int64 {
	out := make([]int64, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.ID)
	}
	return out
}

func TestCompile_EmptyIsNil(t *testing.T) {
	f, err := Compile("   ")
	require.NoError(t, err)
	assert.Nil(t, f)

	ok, err := f.Match(sample[0])
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, sample, f.Apply(sample))
	assert.Equal(t, "", f.Expression())
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"syntax", "Rating >="},
		{"unknown field", "Director == 'Lucas'"},
		{"not bool", "Rating + 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.expr)
			require.Error(t, err)
			var compErr *CompilationError
			require.True(t, errors.As(err, &compErr))
			assert.Equal(t, tt.expr, compErr.Expression)
		})
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		expr string
		want []int64
	}{
		{"Rating >= 7", []int64{1, 2}},
		{"Year > 2000 && Language == 'en'", []int64{3}},
		{`Like(Title, "STAR")`, []int64{1}},
		{"Votes < 100", []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			f, err := Compile(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(f.Apply(sample)))
			assert.Equal(t, tt.expr, f.Expression())
		})
	}
}
