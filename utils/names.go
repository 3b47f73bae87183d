// utils/names.go
package utils

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DisplayName capitalizes a catalog name for user-facing messages.
// "mr-mime" becomes "Mr-mime", matching how names read in the game UI.
func DisplayName(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	head := cases.Upper(language.Und).String(string(r[0]))
	tail := cases.Lower(language.Und).String(string(r[1:]))
	return head + tail
}
