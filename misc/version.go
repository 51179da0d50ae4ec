// Package misc keeps build time information.
package misc

// Set by the linker:
//
//	go build -ldflags "-X csstokens/misc.version=1.2.3 -X csstokens/misc.gitHash=$(git rev-parse --short HEAD)"
var (
	appName = "csstokens"
	version = "dev"
	gitHash = "unknown"
)

// GetAppName returns program name used for logs, reports and temporary files.
func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
