package respond

import (
	"regexp"
)

var (
	bearerPattern     = regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9\-._~+/]+=*`)
	tokenParamPattern = regexp.MustCompile(`(?i)((?:token|api_key|apikey)=)[^&\s"]+`)
	// user:password@ inside a URL
	userinfoPattern = regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`)
)

// SanitizeError masks credentials in err's message: bearer tokens, token
// query parameters, and passwords embedded in URLs.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = bearerPattern.ReplaceAllString(msg, "${1}****")
	msg = tokenParamPattern.ReplaceAllString(msg, "${1}****")
	msg = userinfoPattern.ReplaceAllString(msg, "://$1:****@")
	return msg
}
