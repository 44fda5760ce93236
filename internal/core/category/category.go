// Package category holds the fixed set of expense categories shared by the
// service and the client.
package category

import "strings"

const (
	Food      = "Food"
	Shopping  = "Shopping"
	Transport = "Transport"
	Other     = "Other"

	// All is the client filter value that disables category filtering.
	All = "all"
)

// Known lists every category the UI offers.
var Known = []string{Food, Shopping, Transport, Other}

// Tracked lists the categories that get their own total. Anything else only
// counts towards the grand total.
var Tracked = []string{Food, Shopping, Transport}

// Normalize trims the input, maps blanks to Other and folds case for known
// categories. Free text is returned trimmed but otherwise untouched.
func Normalize(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return Other
	}
	for _, k := range Known {
		if strings.EqualFold(name, k) {
			return k
		}
	}
	return name
}
