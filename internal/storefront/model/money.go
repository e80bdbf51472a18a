package model

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var vnd = message.NewPrinter(language.Vietnamese)

// FormatVND renders a price the way the storefront shows it, e.g. 8.500.000 ₫
func FormatVND(amount int64) string {
	return vnd.Sprintf("%d ₫", amount)
}
