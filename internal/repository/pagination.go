package repository

import "gorm.io/gorm"

// PageResult 分页执行结果，Page 为钳制后的有效页码
type PageResult struct {
	Page      int
	PageSize  int
	Total     int64
	TotalPage int64
}

// applyPagination 应用分页参数，统一处理非法页码与偏移量。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}
	return query.Limit(pageSize).Offset(offset)
}

// ClampPage 将页码钳制到 [1, totalPage] 区间
// 超出末页的请求落到末页而不是空页，结果为空时停留在第一页。
func ClampPage(page, pageSize int, total int64) (int, int64) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		return page, 0
	}
	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)
	switch {
	case totalPage == 0:
		page = 1
	case int64(page) > totalPage:
		page = int(totalPage)
	}
	return page, totalPage
}
