package dnscli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common"
	tcerr "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/errors"
	"github.com/tidwall/gjson"
)

// transport signs and posts one request per call. It never retries.
type transport struct {
	profile APIProfile
	cred    *common.Credential
	client  *http.Client
	now     func() time.Time
	log     logr.Logger
}

func newTransport(profile APIProfile, cred *common.Credential, log logr.Logger) *transport {
	return &transport{
		profile: profile,
		cred:    cred,
		client:  &http.Client{Timeout: profile.Timeout},
		now:     time.Now,
		log:     log,
	}
}

// send posts payload as action and returns the reply body, which is
// guaranteed to be valid JSON.
func (t *transport) send(ctx context.Context, action string, payload []byte) ([]byte, error) {
	sc := newSigningContext(action, payload, t.now())
	headers, canonical, err := t.profile.buildHeaders(sc, t.cred)
	if err != nil {
		if e, ok := err.(*Error); ok {
			e.Action = action
		}
		return nil, err
	}
	t.log.V(2).Info("signing request", "action", action, "canonical", canonical, "timestamp", sc.Timestamp)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.profile.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Action: action, Err: err}
	}
	req.Header = headers
	req.Host = t.profile.Host

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Action: action, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Action: action, Err: err}
	}
	t.log.V(1).Info("provider reply", "action", action, "status", resp.StatusCode, "body", string(body))

	if !gjson.ValidBytes(body) {
		return nil, malformed(action, string(body), errInvalidJSON)
	}
	return body, nil
}

// call serializes params, sends them and returns the Response object of a
// successful reply. A reply without a Response object, or with a
// Response.Error, is a rejection.
func (t *transport) call(ctx context.Context, action string, params interface{}) (gjson.Result, error) {
	payload, err := json.Marshal(params)
	if err != nil {
		return gjson.Result{}, &Error{Kind: KindEncoding, Action: action, Err: err}
	}
	body, err := t.send(ctx, action, payload)
	if err != nil {
		return gjson.Result{}, err
	}
	return classify(action, body)
}

func classify(action string, body []byte) (gjson.Result, error) {
	resp := gjson.GetBytes(body, "Response")
	if !resp.IsObject() {
		return gjson.Result{}, &Error{Kind: KindProviderRejected, Action: action, Body: string(body)}
	}
	if e := resp.Get("Error"); e.Exists() {
		return gjson.Result{}, &Error{
			Kind:   KindProviderRejected,
			Action: action,
			Body:   string(body),
			Err:    tcerr.NewTencentCloudSDKError(e.Get("Code").String(), e.Get("Message").String(), resp.Get("RequestId").String()),
		}
	}
	return resp, nil
}
