package railcar

import (
	"regexp"
	"strconv"

	"golang.org/x/exp/slices"
)

var serviceNumberRegex = regexp.MustCompile(`^\d+$`)

// IsValidServiceNumber reports whether the value is a real service number.
// Placeholder entries like "暫無排程" are not.
func IsValidServiceNumber(serviceNumber string) bool {
	return serviceNumberRegex.MatchString(serviceNumber)
}

// FilterValidServiceNumbers removes placeholder entries from an assignment
// list, keeping the original order.
func FilterValidServiceNumbers(serviceNumbers []string) []string {
	var valid []string

	for _, serviceNumber := range serviceNumbers {
		if IsValidServiceNumber(serviceNumber) {
			valid = append(valid, serviceNumber)
		}
	}

	return valid
}

// NextServiceNumber returns the service number immediately following current
// in the numerically sorted list of valid service numbers, or an empty string
// if current is the maximum or not present.
func NextServiceNumber(current string, serviceNumbers []string) string {
	valid := FilterValidServiceNumbers(serviceNumbers)

	slices.SortFunc(valid, func(a string, b string) int {
		aNumber, _ := strconv.Atoi(a)
		bNumber, _ := strconv.Atoi(b)

		return aNumber - bNumber
	})

	index := slices.Index(valid, current)
	if index == -1 || index == len(valid)-1 {
		return ""
	}

	return valid[index+1]
}
