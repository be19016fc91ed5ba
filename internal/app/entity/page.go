package entity

const (
	DefaultPage = 1
	MinPage     = 1
	MaxPage     = 1000

	DefaultPageSize = 10
	MinPageSize     = 1
	MaxPageSize     = 100
)

// PageRequest is always 1-indexed at the service boundary. Values
// outside the allowed ranges are clamped, never rejected.
type PageRequest struct {
	Page int
	Size int
}

func (r PageRequest) Clamped() PageRequest {
	page := min(max(r.Page, MinPage), MaxPage)
	size := min(max(r.Size, MinPageSize), MaxPageSize)

	return PageRequest{Page: page, Size: size}
}

// Offset translates the 1-indexed page into the storage offset.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.Size
}

type OrderPage struct {
	Content       Orders
	PageNumber    int
	PageSize      int
	TotalElements int64
	TotalPages    int
}
