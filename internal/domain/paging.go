package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidPaging = errors.New("domain: invalid paging")

// Page is a resolved page number and size. Zero input values mean defaults.
type Page struct {
	Number int
	Size   int
}

// NewPage applies defaults (page 1, DefaultPageSize) and checks the bounds.
func NewPage(number, size int) (Page, error) {
	if number == 0 {
		number = 1
	}
	if size == 0 {
		size = DefaultPageSize
	}

	if number < 1 {
		return Page{}, fmt.Errorf("%w: page must be >= 1", ErrInvalidPaging)
	}
	if size < 1 || size > MaxPageSize {
		return Page{}, fmt.Errorf("%w: page size must be in 1..%d", ErrInvalidPaging, MaxPageSize)
	}

	return Page{Number: number, Size: size}, nil
}

func (p Page) Limit() int  { return p.Size }
func (p Page) Offset() int { return (p.Number - 1) * p.Size }
