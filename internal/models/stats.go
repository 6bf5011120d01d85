package models

type DashboardStats struct {
	TotalBooks         int64  `json:"total_books" example:"120"`
	TotalAuthors       int64  `json:"total_authors" example:"45"`
	TotalGenres        int64  `json:"total_genres" example:"12"`
	TotalLanguages     int64  `json:"total_languages" example:"4"`
	TotalInstances     int64  `json:"total_instances" example:"300"`
	AvailableInstances int64  `json:"available_instances" example:"180"`
	OverdueInstances   int64  `json:"overdue_instances" example:"7"`
	RecentlyAdded      []Book `json:"recently_added"`
}

type PieChartData struct {
	Label string `json:"label" example:"On loan"`
	Value int64  `json:"value" example:"45"`
	Code  string `json:"code" example:"on-loan"`
}
