package entities

// Page - страница списочного ответа бэкенда.
type Page[T any] struct {
	Items  []T `json:"items"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// PageQuery - параметры запроса страницы.
type PageQuery struct {
	Offset  int
	Limit   int
	Search  string
	Filters map[string]string
}
