package docstore

import "strings"

// Null is the sentinel stored in place of an empty multi-valued field.
const Null = "null"

// ListSep separates elements of a multi-valued field.
const ListSep = ","

// EncodeList joins values into a single field value.
// An empty list encodes to Null.
func EncodeList(values []string) string {
	if len(values) == 0 {
		return Null
	}
	return strings.Join(values, ListSep)
}

// DecodeList splits a multi-valued field. Null and "" decode to an empty
// (nil) list.
func DecodeList(field string) []string {
	if field == "" || field == Null {
		return nil
	}
	return strings.Split(field, ListSep)
}
