package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Read-only query surface and health endpoint are public
	return []string{"/graphql", "/playground", "/healthz"}
}
