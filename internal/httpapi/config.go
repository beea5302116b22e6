package httpapi

// maxBodyBytes controls the maximum allowed request body size for JSON endpoints.
var maxBodyBytes int64 = 1 << 20

// SetMaxBodyBytes allows configuring the maximum request body size.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 1 << 20
		return
	}
	maxBodyBytes = n
}

// analyzeTimeout bounds a single /analyze request, model calls included.
// Zero means no additional timeout beyond server/connection timeouts.
var analyzeTimeout = int64(0) // seconds

// SetAnalyzeTimeoutSeconds sets the analyze timeout in seconds (0 disables).
func SetAnalyzeTimeoutSeconds(sec int64) {
	if sec < 0 {
		sec = 0
	}
	analyzeTimeout = sec
}

// CORS configuration. Enabled for all origins unless configured otherwise,
// since the browser client is served from a different origin.
var (
	corsEnabled        = true
	corsAllowedOrigins = []string{"*"}
	corsAllowedMethods = []string{"GET", "POST", "OPTIONS"}
	corsAllowedHeaders = []string{"*"}
)

// SetCORSOptions configures CORS behavior for the HTTP server. Empty lists
// keep the defaults.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	if len(origins) > 0 {
		corsAllowedOrigins = append([]string(nil), origins...)
	}
	if len(methods) > 0 {
		corsAllowedMethods = append([]string(nil), methods...)
	}
	if len(headers) > 0 {
		corsAllowedHeaders = append([]string(nil), headers...)
	}
}
