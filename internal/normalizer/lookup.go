package normalizer

import (
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
)

// fields 按顺序在多个对象中查找字段，先嵌套负载再顶层
type fields []gjson.Result

func (f fields) get(keys ...string) gjson.Result {
	for _, obj := range f {
		if !obj.IsObject() {
			continue
		}
		for _, k := range keys {
			v := obj.Get(k)
			if v.Exists() && v.Type != gjson.Null {
				return v
			}
		}
	}
	return gjson.Result{}
}

// array 只接受数组值，类型不符时继续在后面的对象中查找
func (f fields) array(keys ...string) gjson.Result {
	for _, obj := range f {
		if !obj.IsObject() {
			continue
		}
		for _, k := range keys {
			if v := obj.Get(k); v.IsArray() {
				return v
			}
		}
	}
	return gjson.Result{}
}

func (f fields) str(def string, keys ...string) string {
	return stringOr(f.get(keys...), def)
}

func (f fields) list(keys ...string) []string {
	return stringList(f.get(keys...))
}

// count 上游提供的数量，ok=false 表示未提供或无法解析
func (f fields) count(keys ...string) (int, bool) {
	v := f.get(keys...)
	if !v.Exists() {
		return 0, false
	}
	n, err := cast.ToIntE(v.Value())
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func stringOr(v gjson.Result, def string) string {
	if !v.Exists() || v.IsObject() || v.IsArray() {
		return def
	}
	s := strings.TrimSpace(v.String())
	if s == "" {
		return def
	}
	return s
}

// stringList 数组取非空字符串，单个字符串视为一个元素
func stringList(v gjson.Result) []string {
	switch {
	case v.IsArray():
		return lo.FilterMap(v.Array(), func(item gjson.Result, _ int) (string, bool) {
			if item.IsObject() || item.IsArray() {
				return "", false
			}
			s := strings.TrimSpace(item.String())
			return s, s != ""
		})
	case v.Type == gjson.String:
		if s := strings.TrimSpace(v.String()); s != "" {
			return []string{s}
		}
	}
	return nil
}

// text 字符串原样返回，字符串数组按行拼接
func text(v gjson.Result) string {
	if v.IsArray() {
		return strings.Join(stringList(v), "\n")
	}
	return stringOr(v, "")
}

// idString 兼容数字 id 和 {"$oid": "..."} 形式
func idString(v gjson.Result) string {
	if v.IsObject() {
		var oid string
		v.ForEach(func(key, value gjson.Result) bool {
			if key.String() == "$oid" {
				oid = value.String()
				return false
			}
			return true
		})
		return oid
	}
	if !v.Exists() || v.Type == gjson.Null {
		return ""
	}
	return strings.TrimSpace(cast.ToString(v.Value()))
}
