package repository

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likeContains 构造包含匹配的 LIKE 模式
// 用户输入中的通配符按字面量转义，配合 ESCAPE '\' 使用。
func likeContains(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
