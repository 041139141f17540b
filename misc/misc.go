// Package misc holds build time information about the program.
package misc

// Set at link time with -ldflags "-X divina/misc.version=... -X divina/misc.hash=...".
var (
	version = "dev"
	hash    = "unknown"
)

const appName = "divina"

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return hash
}
