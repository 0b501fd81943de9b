package dnscli

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common"
)

// signingContext is captured once per request. The same date and timestamp
// feed the canonical request, the string to sign and the headers.
type signingContext struct {
	Action    string
	Date      string
	Timestamp int64
	Payload   []byte
}

func newSigningContext(action string, payload []byte, now time.Time) signingContext {
	now = now.UTC()
	return signingContext{
		Action:    action,
		Date:      now.Format("2006-01-02"),
		Timestamp: now.Unix(),
		Payload:   payload,
	}
}

// canonicalHeaders is the fixed, ordered header subset covered by the signature.
func (p APIProfile) canonicalHeaders(action string) []header {
	return []header{
		{Name: "content-type", Value: p.ContentType},
		{Name: "host", Value: p.Host},
		{Name: "x-tc-action", Value: strings.ToLower(action)},
	}
}

func (p APIProfile) stringToSign(sc signingContext, canonicalHash string) string {
	return fmt.Sprintf("%s\n%d\n%s\n%s", p.Algorithm, sc.Timestamp, p.scope(sc.Date), canonicalHash)
}

// authorization computes the Authorization header value for one request.
func (p APIProfile) authorization(sc signingContext, canonicalHash, signedHeaders string, cred *common.Credential) (string, error) {
	key, err := deriveSigningKey(p, cred.GetSecretKey(), sc.Date)
	if err != nil {
		return "", err
	}
	signature := fmt.Sprintf("%x", hmacsha256(key, p.stringToSign(sc, canonicalHash)))
	return fmt.Sprintf("%s Credential=%s/%s, SignedHeaders=%s, Signature=%s",
		p.Algorithm, cred.GetSecretId(), p.scope(sc.Date), signedHeaders, signature), nil
}

// buildHeaders assembles every header the API requires for the request
// described by sc. canonical is returned for debug logging only.
func (p APIProfile) buildHeaders(sc signingContext, cred *common.Credential) (http.Header, string, error) {
	headers := p.canonicalHeaders(sc.Action)
	canonical, _ := canonicalize(http.MethodPost, headers, sc.Payload)
	auth, err := p.authorization(sc, sha256hex([]byte(canonical)), signedHeaderNames(headers), cred)
	if err != nil {
		return nil, "", err
	}

	h := http.Header{}
	h.Set("Authorization", auth)
	h.Set("Content-Type", p.ContentType)
	h.Set("Host", p.Host)
	h.Set("X-TC-Action", sc.Action)
	h.Set("X-TC-Timestamp", strconv.FormatInt(sc.Timestamp, 10))
	h.Set("X-TC-Version", p.Version)
	h.Set("User-Agent", p.UserAgent)
	return h, canonical, nil
}
