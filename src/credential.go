package dnscli

import (
	"io/ioutil"
	"strings"

	"github.com/pkg/errors"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common"
)

// FetchKey reads a key file. The file only contains the token.
func FetchKey(path string) (string, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "read key file")
	}
	return strings.TrimSpace(string(data)), nil
}

// ParseCredential splits an "id,key" token on its first comma.
func ParseCredential(token string) (*common.Credential, error) {
	id, key, ok := strings.Cut(token, ",")
	if !ok {
		return nil, ErrInvalidCredential
	}
	id, key = strings.TrimSpace(id), strings.TrimSpace(key)
	if id == "" || key == "" {
		return nil, ErrInvalidCredential
	}
	return common.NewCredential(id, key), nil
}
