package dnscli

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

type header struct {
	Name  string
	Value string
}

func sha256hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func hmacsha256(key []byte, msg string) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(msg))
	return mac.Sum(nil)
}

// signedHeaderNames joins the lower-cased header names with ';'.
func signedHeaderNames(headers []header) string {
	names := make([]string, 0, len(headers))
	for _, h := range headers {
		names = append(names, strings.ToLower(h.Name))
	}
	return strings.Join(names, ";")
}

// canonicalize builds the canonical request for a call on the root path with
// no query string. Headers are emitted in the order given; the verifier
// rebuilds the same bytes, so callers must not reorder them.
func canonicalize(method string, headers []header, payload []byte) (canonical, payloadHash string) {
	payloadHash = sha256hex(payload)

	var b strings.Builder
	b.WriteString(strings.ToUpper(method))
	b.WriteString("\n/\n\n")
	for _, h := range headers {
		b.WriteString(strings.ToLower(h.Name))
		b.WriteByte(':')
		b.WriteString(h.Value)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(signedHeaderNames(headers))
	b.WriteByte('\n')
	b.WriteString(payloadHash)
	return b.String(), payloadHash
}

// deriveSigningKey scopes the long-lived secret down to one day and one
// service. Keys are recomputed for every request.
func deriveSigningKey(p APIProfile, secret, date string) ([]byte, error) {
	if secret == "" {
		return nil, &Error{Kind: KindSigning, Err: errEmptySecret}
	}
	if date == "" {
		return nil, &Error{Kind: KindSigning, Err: errEmptyDate}
	}
	dateKey := hmacsha256([]byte("TC3"+secret), date)
	serviceKey := hmacsha256(dateKey, p.Service)
	return hmacsha256(serviceKey, p.RequestSuffix), nil
}
