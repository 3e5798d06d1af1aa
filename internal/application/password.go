package application

import (
	"encoding/base64"
	"time"
)

// TimestampLayout is the YYYYMMDDHHmmss layout the provider expects.
const TimestampLayout = "20060102150405"

// STKCredentials returns the request password and the timestamp it was
// derived from. The password is base64(shortCode + passkey + timestamp).
func STKCredentials(shortCode, passkey string, at time.Time) (password, timestamp string) {
	timestamp = at.Format(TimestampLayout)
	password = base64.StdEncoding.EncodeToString([]byte(shortCode + passkey + timestamp))
	return password, timestamp
}
