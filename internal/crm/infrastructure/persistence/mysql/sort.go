package mysql

import "strings"

// sortClause 将对外暴露的排序键转换为 ORDER BY 子句，
// 前缀 "-" 表示倒序；不在白名单内的键回退到缺省排序。
func sortClause(columns map[string]string, key, fallback string) string {
	desc := strings.HasPrefix(key, "-")
	col, ok := columns[strings.TrimPrefix(key, "-")]
	if !ok {
		return fallback
	}
	if desc {
		return col + " DESC"
	}
	return col
}
