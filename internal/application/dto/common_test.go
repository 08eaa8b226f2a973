package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequest_DefaultPage(t *testing.T) {
	p := PageRequest{}
	p.DefaultPage()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageLimit, p.Limit)
	assert.Equal(t, 0, p.Offset())

	p = PageRequest{Page: 3, Limit: 500}
	p.DefaultPage()
	assert.Equal(t, MaxPageLimit, p.Limit)
	assert.Equal(t, 200, p.Offset())
}

func TestNewPagination(t *testing.T) {
	pg := NewPagination(PageRequest{Page: 2, Limit: 10}, 21)
	assert.Equal(t, Pagination{Total: 21, Page: 2, Limit: 10, TotalPages: 3}, pg)

	assert.Equal(t, 0, NewPagination(PageRequest{Page: 1, Limit: 10}, 0).TotalPages)
}
