package swapi

// PageSize is the number of results the service returns per page.
const PageSize = 10

// TotalPages returns how many pages hold count results.
func TotalPages(count int) int {
	if count <= 0 {
		return 0
	}
	return (count + PageSize - 1) / PageSize
}

// PageItems returns how many results page (1-based) holds out of count.
func PageItems(count, page int) int {
	total := TotalPages(count)
	if page < 1 || page > total {
		return 0
	}
	if page < total {
		return PageSize
	}
	return count - (total-1)*PageSize
}
