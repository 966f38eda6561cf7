package httpclient

import (
	"fmt"
	"runtime"

	"github.com/mssola/user_agent"
)

// Version is reported in the client identification string.
var Version = "0.1.0"

// DefaultUserAgent builds a browser-shaped identification string so the
// backend's request logs can tell platforms apart.
func DefaultUserAgent() string {
	return fmt.Sprintf("Mozilla/5.0 (%s) cinerate/%s", platformToken(), Version)
}

func platformToken() string {
	arch := runtime.GOARCH
	if arch == "amd64" {
		arch = "x86_64"
	}
	switch runtime.GOOS {
	case "darwin":
		return "Macintosh; Intel Mac OS X 10_15_7"
	case "windows":
		return "Windows NT 10.0; Win64; x64"
	case "linux":
		return "X11; Linux " + arch
	}
	return runtime.GOOS + "; " + arch
}

// Environment is the ambient context attached to every failure log entry.
type Environment struct {
	Location  string
	UserAgent string
	Client    string
	OS        string
}

func describeAgent(ua string) (client, os string) {
	parsed := user_agent.New(ua)
	name, version := parsed.Browser()
	if version != "" {
		name += "/" + version
	}
	return name, parsed.OS()
}
