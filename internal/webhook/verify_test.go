package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"
)

const testSecret = "whsec_test"

func signHeader(body []byte, ts int64, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, body)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func withFixedClock(t *testing.T, at time.Time) {
	t.Helper()
	old := timeNow
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = old })
}

func TestVerifyRoundTrip(t *testing.T) {
	now := time.Unix(1700000000, 0)
	withFixedClock(t, now)

	body := []byte(`{"type":"message.received"}`)
	header := signHeader(body, now.Unix(), testSecret)

	if !Verify(body, header, testSecret) {
		t.Fatal("expected signature to verify")
	}
}

func TestVerifyRejectsTamperedBody(t *testing.T) {
	now := time.Unix(1700000000, 0)
	withFixedClock(t, now)

	body := []byte(`{"type":"message.received"}`)
	header := signHeader(body, now.Unix(), testSecret)

	tampered := []byte(`{"type":"message.receivedX"}`)
	if Verify(tampered, header, testSecret) {
		t.Fatal("tampered body must not verify")
	}

	// single-character mutation
	mutated := append([]byte(nil), body...)
	mutated[0] = '['
	if Verify(mutated, header, testSecret) {
		t.Fatal("mutated body must not verify")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	now := time.Unix(1700000000, 0)
	withFixedClock(t, now)

	body := []byte(`{}`)
	header := signHeader(body, now.Unix(), "other-secret")
	if Verify(body, header, testSecret) {
		t.Fatal("wrong secret must not verify")
	}
}

func TestVerifyFreshnessWindow(t *testing.T) {
	now := time.Unix(1700000000, 0)
	withFixedClock(t, now)

	body := []byte(`{}`)

	// 301s stale fails even with a correct signature
	stale := now.Unix() - 301
	if Verify(body, signHeader(body, stale, testSecret), testSecret) {
		t.Fatal("stale timestamp must not verify")
	}

	// 301s in the future fails too: the window is symmetric
	future := now.Unix() + 301
	if Verify(body, signHeader(body, future, testSecret), testSecret) {
		t.Fatal("future timestamp must not verify")
	}

	// exactly at the edge passes
	edge := now.Unix() - 300
	if !Verify(body, signHeader(body, edge, testSecret), testSecret) {
		t.Fatal("timestamp at the window edge should verify")
	}
}

func TestVerifyRejectsMalformedHeader(t *testing.T) {
	now := time.Unix(1700000000, 0)
	withFixedClock(t, now)

	body := []byte(`{}`)
	cases := []string{
		"",
		"t=1700000000",
		"v1=deadbeef",
		"t=notanumber,v1=deadbeef",
		"garbage",
	}
	for _, header := range cases {
		if Verify(body, header, testSecret) {
			t.Errorf("header %q must not verify", header)
		}
	}
}
