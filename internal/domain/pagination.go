package domain

import "math"

// PageRequest bounds are enforced by the transport layer: Page >= 1 and
// 1 <= Size <= MaxPageSize.
type PageRequest struct {
	Page int
	Size int
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Offset is the zero-based row offset of the first row on the page. It
// saturates at math.MaxInt, which still lands past the last row.
func (p PageRequest) Offset() int {
	if p.Page <= 1 || p.Size <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Size
}

type PaginationInfo struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	PreviousPage *int `json:"previousPage"`
	NextPage     *int `json:"nextPage"`
	TotalItems   int  `json:"totalItems"`
}

// ComputePagination derives page metadata. A page past the end is not
// clamped; it simply has no next page.
func ComputePagination(totalItems, page, pageSize int) PaginationInfo {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalItems + pageSize - 1) / pageSize
	}

	info := PaginationInfo{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
	}
	if page > 1 {
		prev := page - 1
		info.PreviousPage = &prev
	}
	if page < totalPages {
		next := page + 1
		info.NextPage = &next
	}
	return info
}

// EmptyPagination is the metadata of a listing that matched nothing on page 1.
func EmptyPagination() PaginationInfo {
	return ComputePagination(0, 1, DefaultPageSize)
}
