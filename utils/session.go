package utils

import (
	"fmt"
	"strings"

	ua "github.com/mileusna/useragent"
)

// ParseUserAgent extracts browser, OS and a coarse device class.
func ParseUserAgent(userAgent string) (browser, os, device string) {
	if userAgent == "" {
		return "Unknown Browser", "Unknown OS", "Desktop"
	}

	parsed := ua.Parse(userAgent)

	browser = "Unknown Browser"
	if parsed.Name != "" {
		browser = parsed.Name
	}
	os = "Unknown OS"
	if parsed.OS != "" {
		os = parsed.OS
	}

	device = "Desktop"
	switch {
	case parsed.Mobile && strings.Contains(userAgent, "iPhone"):
		device = "iPhone"
	case parsed.Mobile:
		device = "Mobile"
	case parsed.Tablet:
		device = "Tablet"
	case parsed.Bot:
		device = "Bot"
	}

	return strings.TrimSpace(browser), strings.TrimSpace(os), device
}

// SessionName renders "Browser on OS (Device)" for session listings.
func SessionName(userAgent string) string {
	browser, os, device := ParseUserAgent(userAgent)
	return fmt.Sprintf("%s on %s (%s)", browser, os, device)
}
