package dnscli

import "time"

// Version is reported in the User-Agent header and by --version.
var Version = "dev"

// Actions names the API actions a provider issues.
type Actions struct {
	CreateRecord       string
	DescribeRecordList string
	DescribeRecord     string
	ModifyRecord       string
	DeleteRecord       string
}

// APIProfile is the fixed description of the remote API. It is passed by
// value so a request can never observe a profile changing underneath it.
type APIProfile struct {
	Endpoint      string
	Host          string
	Service       string
	Version       string
	Algorithm     string
	RequestSuffix string
	ContentType   string
	UserAgent     string
	Timeout       time.Duration
	Actions       Actions
}

func DefaultProfile() APIProfile {
	return APIProfile{
		Endpoint:      "https://dnspod.tencentcloudapi.com/",
		Host:          "dnspod.tencentcloudapi.com",
		Service:       "dnspod",
		Version:       "2021-03-23",
		Algorithm:     "TC3-HMAC-SHA256",
		RequestSuffix: "tc3_request",
		ContentType:   "application/json; charset=utf-8",
		UserAgent:     "cao/" + Version,
		Timeout:       30 * time.Second,
		Actions: Actions{
			CreateRecord:       "CreateRecord",
			DescribeRecordList: "DescribeRecordList",
			DescribeRecord:     "DescribeRecord",
			ModifyRecord:       "ModifyRecord",
			DeleteRecord:       "DeleteRecord",
		},
	}
}

// scope is the credential scope "<date>/<service>/<suffix>".
func (p APIProfile) scope(date string) string {
	return date + "/" + p.Service + "/" + p.RequestSuffix
}
