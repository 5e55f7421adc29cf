package utils

import (
	"encoding/json"
	"strings"
)

// IDsToString converts a photo id list to a JSON string (safe for DB text columns)
func IDsToString(ids []string) string {
	if len(ids) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(ids)
	return string(data)
}

// StringToIDs converts a DB string back to a photo id list
func StringToIDs(s string) []string {
	if s == "" || s == "[]" {
		return []string{}
	}
	var ids []string
	if err := json.Unmarshal([]byte(s), &ids); err != nil {
		// Fallback: treat as comma-separated if invalid JSON
		return strings.Split(s, ",")
	}
	return ids
}
