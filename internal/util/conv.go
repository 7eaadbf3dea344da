package util

import (
	"strings"

	"github.com/spf13/cast"
)

// ParsePositiveInt 解析路径参数中的正整数，失败返回 false
func ParsePositiveInt(s string) (int, bool) {
	n, err := cast.ToIntE(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
