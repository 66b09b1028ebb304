// Package tools 工具箱
package tools

// Tern 三元运算符
func Tern[U any](isTrue bool, ifValue U, elseValue U) U {
	if isTrue {
		return ifValue
	}
	return elseValue
}
