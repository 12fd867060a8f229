package logmeinapi

import "encoding/base64"

// Credentials authenticate every request with HTTP Basic auth.
type Credentials struct {
	Username string
	Password string
}

// Header returns the Authorization header value, "Basic base64(user:pass)".
func (c Credentials) Header() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.Username+":"+c.Password))
}
