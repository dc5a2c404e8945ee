package order

import "regexp"

var customerIDPattern = regexp.MustCompile(
	`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`,
)

// ValidCustomerID reports whether id is a version 1-5 RFC 4122 UUID.
func ValidCustomerID(id string) bool {
	return customerIDPattern.MatchString(id)
}
