package domain

// PageRequest asks for one offset based page of records. Zero fields take the service defaults.
type PageRequest struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

type Page struct {
	Data     []HistoryRecord `json:"data"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
}

type RouterRequestFetchHistory struct {
	Page     int `form:"page" binding:"min=1"`
	PageSize int `form:"pageSize" binding:"min=1"`
}
