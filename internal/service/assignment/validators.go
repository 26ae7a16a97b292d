package assignment

import "strings"

func isValidOrderID(orderID string) bool {
	return strings.TrimSpace(orderID) != ""
}

func isValidID(id int64) bool {
	return id > 0
}
