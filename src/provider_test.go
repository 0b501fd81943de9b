package dnscli

import (
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProviderKind(t *testing.T) {
	for _, name := range []string{"dnspod", "DNSPod", " dnspod "} {
		kind, err := ParseProviderKind(name)
		require.NoError(t, err, name)
		assert.Equal(t, ProviderDNSPod, kind)
	}

	for _, name := range []string{"", "cloudflare", "huawei"} {
		_, err := ParseProviderKind(name)
		assert.ErrorIs(t, err, ErrUnknownProvider, name)
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(ProviderDNSPod, testCredential(), "example.com", DefaultProfile(), logr.Discard())
	require.NoError(t, err)
	assert.IsType(t, &DNSPodProvider{}, p)

	_, err = NewProvider(ProviderKind(42), testCredential(), "example.com", DefaultProfile(), logr.Discard())
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestRecordString(t *testing.T) {
	r := Record{ID: 12, SubDomain: "www", Value: "1.2.3.4", Type: "A", Line: "默认"}

	assert.Equal(t, "id: 12, name: www, value: 1.2.3.4, type: A, line: 默认", r.String())
}

func TestErrorMessage(t *testing.T) {
	err := malformed("CreateRecord", `{"Response":{}}`, errInvalidJSON)

	assert.Equal(t, `CreateRecord: malformed response: reply is not valid JSON, response: {"Response":{}}`, err.Error())
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.ErrorIs(t, err, errInvalidJSON)
	assert.NotErrorIs(t, err, ErrTransport)
}
