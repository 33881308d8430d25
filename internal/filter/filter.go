// Package filter narrows movie results with expr-lang expressions, for
// example `Rating >= 7 && Year > 2000` or `Like(Title, "star")`.
package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/five82/marquee/internal/tmdb"
)

// Env is the evaluation environment exposed to expressions.
type Env struct {
	ID         int64
	Title      string
	Year       int
	Rating     float64
	Votes      int
	Popularity float64
	Language   string
	Adult      bool
}

// Like reports whether sub occurs in s, ignoring case.
func (Env) Like(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func envFor(m tmdb.Movie) Env {
	return Env{
		ID:         m.ID,
		Title:      m.Title,
		Year:       m.Year(),
		Rating:     m.VoteAverage,
		Votes:      m.VoteCount,
		Popularity: m.Popularity,
		Language:   m.OriginalLanguage,
		Adult:      m.Adult,
	}
}

// CompilationError reports an expression that failed to compile.
type CompilationError struct {
	Expression string
	Err        error
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("compile filter %q: %v", e.Expression, e.Err)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

// Filter is a compiled expression. A nil *Filter matches everything.
type Filter struct {
	expression string
	program    *vm.Program
}

// Compile compiles expression. An empty expression yields a nil filter.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, nil
	}
	program, err := expr.Compile(expression, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, &CompilationError{Expression: expression, Err: err}
	}
	return &Filter{expression: expression, program: program}, nil
}

// Expression returns the source expression.
func (f *Filter) Expression() string {
	if f == nil {
		return ""
	}
	return f.expression
}

// Match evaluates the filter against m.
func (f *Filter) Match(m tmdb.Movie) (bool, error) {
	if f == nil {
		return true, nil
	}
	out, err := expr.Run(f.program, envFor(m))
	if err != nil {
		return false, fmt.Errorf("evaluate filter: %w", err)
	}
	ok, _ := out.(bool)
	return ok, nil
}

// Apply returns the movies that match, preserving order. Movies whose
// evaluation fails are dropped.
func (f *Filter) Apply(movies []tmdb.Movie) []tmdb.Movie {
	if f == nil {
		return movies
	}
	kept := make([]tmdb.Movie, 0, len(movies))
	for _, m := range movies {
		if ok, err := f.Match(m); err == nil && ok {
			kept = append(kept, m)
		}
	}
	return kept
}
