package privacy

import (
	"strings"

	"github.com/mssola/useragent"
)

// DescribeUserAgent reduces a User-Agent header to "Browser on OS" (e.g. "Chrome on Windows 10",
// "Safari on iPhone") so logs keep the client family without the full fingerprint.
func DescribeUserAgent(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "unknown"
	}

	ua := useragent.New(raw)
	if ua.Bot() {
		return "bot"
	}

	browser, _ := ua.Browser()
	if browser == "" {
		browser = "Unknown Browser"
	}

	if ua.Mobile() {
		if platform := ua.Platform(); platform != "" {
			return browser + " on " + platform
		}
	}

	os := ua.OS()
	if os == "" {
		os = "Unknown OS"
	}
	return browser + " on " + os
}
