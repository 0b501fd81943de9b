package dnscli

import (
	"context"
	"errors"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcerr "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/errors"
)

func newTestTransport(t *testing.T, replies map[string]string) (*transport, *fakeAPI) {
	t.Helper()
	api := newFakeAPI(t, replies)
	tr := newTransport(api.profile(), testCredential(), logr.Discard())
	tr.now = fixedClock
	return tr, api
}

func TestTransport_SendSignsRequest(t *testing.T) {
	tr, api := newTestTransport(t, map[string]string{
		"CreateRecord": `{"Response":{"RecordId":1,"RequestId":"r"}}`,
	})

	body, err := tr.send(context.Background(), "CreateRecord", []byte(testPayload))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Response":{"RecordId":1,"RequestId":"r"}}`, string(body))

	calls := api.Calls()
	require.Len(t, calls, 1)
	c := calls[0]
	assert.Equal(t, testPayload, c.Body)
	assert.Equal(t, "dnspod.tencentcloudapi.com", c.Host)
	assert.Equal(t, goldenAuthorization, c.Header.Get("Authorization"))
	assert.Equal(t, "application/json; charset=utf-8", c.Header.Get("Content-Type"))
	assert.Equal(t, "1551113065", c.Header.Get("X-TC-Timestamp"))
	assert.Equal(t, "2021-03-23", c.Header.Get("X-TC-Version"))
	assert.Equal(t, "cao/"+Version, c.Header.Get("User-Agent"))
}

func TestTransport_SendInvalidJSON(t *testing.T) {
	tr, _ := newTestTransport(t, map[string]string{
		"DeleteRecord": `<html>bad gateway</html>`,
	})

	_, err := tr.send(context.Background(), "DeleteRecord", []byte(`{}`))

	assert.ErrorIs(t, err, ErrMalformedResponse)
	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "DeleteRecord", e.Action)
	assert.Equal(t, `<html>bad gateway</html>`, e.Body)
}

func TestTransport_SendConnectionFailure(t *testing.T) {
	tr, api := newTestTransport(t, nil)
	api.server.Close()

	_, err := tr.send(context.Background(), "DeleteRecord", []byte(`{}`))

	assert.ErrorIs(t, err, ErrTransport)
	assert.NotErrorIs(t, err, ErrProviderRejected)
}

func TestTransport_CallEncodingFailure(t *testing.T) {
	tr, api := newTestTransport(t, nil)

	_, err := tr.call(context.Background(), "CreateRecord", map[string]interface{}{"Value": make(chan int)})

	assert.ErrorIs(t, err, ErrEncoding)
	assert.NotErrorIs(t, err, ErrSigning)
	assert.Contains(t, err.Error(), "CreateRecord: request encoding error")
	assert.Empty(t, api.Calls())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "empty response object", body: `{"Response":{}}`},
		{name: "response with fields", body: `{"Response":{"RecordId":3,"RequestId":"x"}}`},
		{name: "missing response", body: `{}`, wantErr: ErrProviderRejected},
		{name: "response not an object", body: `{"Response":"ok"}`, wantErr: ErrProviderRejected},
		{name: "legacy status envelope", body: `{"status":{"code":"1"}}`, wantErr: ErrProviderRejected},
		{
			name:    "provider error",
			body:    `{"Response":{"Error":{"Code":"AuthFailure.SignatureFailure","Message":"bad"},"RequestId":"req-1"}}`,
			wantErr: ErrProviderRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := classify("DeleteRecord", []byte(tt.body))
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.True(t, resp.IsObject())
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			var e *Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, tt.body, e.Body)
		})
	}
}

func TestClassify_ProviderErrorCode(t *testing.T) {
	body := `{"Response":{"Error":{"Code":"InvalidParameter.DomainInvalid","Message":"domain invalid"},"RequestId":"req-2"}}`

	_, err := classify("CreateRecord", []byte(body))

	var sdkErr *tcerr.TencentCloudSDKError
	require.True(t, errors.As(err, &sdkErr))
	assert.Equal(t, "InvalidParameter.DomainInvalid", sdkErr.GetCode())
	assert.Equal(t, "domain invalid", sdkErr.GetMessage())
	assert.Equal(t, "req-2", sdkErr.GetRequestId())
	assert.Contains(t, err.Error(), "CreateRecord: provider rejected")
}
