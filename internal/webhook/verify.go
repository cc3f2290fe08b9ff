package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// maxClockSkew is the symmetric freshness window for webhook timestamps.
const maxClockSkew = 300 * time.Second

// swappable for tests
var timeNow = time.Now

// Verify checks a Surge-Signature header against the raw request body.
// The header carries comma-separated key=value pairs; "t" is the decimal
// Unix timestamp and "v1" the hex HMAC-SHA256 of "{t}.{body}". Timestamps
// more than five minutes from now fail in either direction.
func Verify(rawBody []byte, signatureHeader, secret string) bool {
	var ts, sig string
	for _, pair := range strings.Split(signatureHeader, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			continue
		}
		switch key {
		case "t":
			ts = value
		case "v1":
			sig = value
		}
	}
	if ts == "" || sig == "" {
		return false
	}

	sent, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return false
	}
	skew := timeNow().Unix() - sent
	if skew > int64(maxClockSkew.Seconds()) || -skew > int64(maxClockSkew.Seconds()) {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s.%s", ts, rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(sig))
}
