package core

import "time"

// Area is a node of the administrative region tree
type Area struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	ParentID  string    `json:"parent_id"`
	ParentIDs string    `json:"parent_ids"` // Comma separated ancestor chain
	Type      string    `json:"type"`
	Sort      int64     `json:"sort"`
	Remark    string    `json:"remark"`
	Flag      string    `json:"flag"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AreaFilter narrows list and page queries. Empty fields match everything.
type AreaFilter struct {
	Flag     string
	Type     string
	ParentID string
}

// Matches reports whether a satisfies the filter
func (f AreaFilter) Matches(a *Area) bool {
	if f.Flag != "" && a.Flag != f.Flag {
		return false
	}
	if f.Type != "" && a.Type != f.Type {
		return false
	}
	if f.ParentID != "" && a.ParentID != f.ParentID {
		return false
	}
	return true
}

// Page is one slice of a paginated query
type Page[T any] struct {
	PageNum  int   `json:"page_num"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
	Pages    int   `json:"pages"`
	List     []T   `json:"list"`
}
