package utils

import (
	"fmt"
	"reflect"
)

// ColumnList returns the `db` tags of a dbmodel struct, optionally prefixed with a table alias
func ColumnList[T any](prefixes ...string) []string {
	var zero T
	t := reflect.TypeOf(zero)
	columns := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		if len(prefixes) > 0 {
			tag = fmt.Sprintf("%s.%s", prefixes[0], tag)
		}
		columns = append(columns, tag)
	}
	return columns
}
