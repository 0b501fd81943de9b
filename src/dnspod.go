package dnscli

import (
	"context"
	"encoding/json"
	"strconv"
	"unicode"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common"
	tcerr "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/errors"
	dnspod "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/dnspod/v20210323"
	"github.com/tidwall/gjson"
)

// codeNoRecord is returned by DescribeRecordList when the domain has no
// matching records.
const codeNoRecord = "ResourceNotFound.NoDataOfRecord"

// DNSPodProvider manages the records of one domain through the DNSPod API.
type DNSPodProvider struct {
	domain    string
	actions   Actions
	transport *transport
	log       logr.Logger
}

func NewDNSPodProvider(cred *common.Credential, domain string, profile APIProfile, log logr.Logger) *DNSPodProvider {
	return &DNSPodProvider{
		domain:    domain,
		actions:   profile.Actions,
		transport: newTransport(profile, cred, log),
		log:       log.WithValues("provider", "dnspod", "domain", domain),
	}
}

// isLineID reports whether line is a numeric line id rather than a line name.
func isLineID(line string) bool {
	if line == "" {
		return false
	}
	for _, c := range line {
		if !unicode.IsNumber(c) {
			return false
		}
	}
	return true
}

func recordLine(line string) (name, id *string) {
	if isLineID(line) {
		return nil, common.StringPtr(line)
	}
	return common.StringPtr(line), nil
}

func parseRecordID(action string, resp gjson.Result, field string) (uint64, error) {
	v := resp.Get(field)
	var (
		id  uint64
		err error
	)
	switch v.Type {
	case gjson.Number:
		id, err = strconv.ParseUint(v.Raw, 10, 64)
	case gjson.String:
		id, err = strconv.ParseUint(v.Str, 10, 64)
	case gjson.Null:
		if !v.Exists() {
			return 0, malformed(action, resp.Raw, errors.Errorf("missing %s", field))
		}
		err = errors.New("null")
	default:
		err = errors.Errorf("unexpected %s", v.Type)
	}
	if err != nil {
		return 0, malformed(action, resp.Raw, errors.Wrapf(err, "failed to parse %s %s", field, v.Raw))
	}
	return id, nil
}

func recordFromListItem(raw string) (Record, bool) {
	var item dnspod.RecordListItem
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		return Record{}, false
	}
	if item.RecordId == nil || item.Name == nil || item.Value == nil || item.Type == nil || item.Line == nil {
		return Record{}, false
	}
	return Record{
		ID:        *item.RecordId,
		SubDomain: *item.Name,
		Value:     *item.Value,
		Type:      *item.Type,
		Line:      *item.Line,
	}, true
}

func recordFromInfo(raw string) (Record, error) {
	var info dnspod.RecordInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return Record{}, err
	}
	if info.Id == nil || info.SubDomain == nil || info.Value == nil || info.RecordType == nil || info.RecordLine == nil {
		return Record{}, errors.New("missing required record fields")
	}
	return Record{
		ID:        *info.Id,
		SubDomain: *info.SubDomain,
		Value:     *info.Value,
		Type:      *info.RecordType,
		Line:      *info.RecordLine,
	}, nil
}

func (s *DNSPodProvider) AddRecord(ctx context.Context, subDomain, recordType, line, value string) (uint64, error) {
	params := &dnspod.CreateRecordRequestParams{
		Domain:     common.StringPtr(s.domain),
		RecordType: common.StringPtr(recordType),
		Value:      common.StringPtr(value),
	}
	if subDomain != "" {
		params.SubDomain = common.StringPtr(subDomain)
	}
	params.RecordLine, params.RecordLineId = recordLine(line)

	resp, err := s.transport.call(ctx, s.actions.CreateRecord, params)
	if err != nil {
		return 0, err
	}
	return parseRecordID(s.actions.CreateRecord, resp, "RecordId")
}

// ListRecord returns the records in source order. Entries missing a required
// field are skipped rather than failing the whole listing.
func (s *DNSPodProvider) ListRecord(ctx context.Context, opts ListOptions) ([]Record, error) {
	params := &dnspod.DescribeRecordListRequestParams{
		Domain: common.StringPtr(s.domain),
		Offset: opts.Offset,
		Limit:  opts.Length,
	}
	if opts.SubDomain != "" {
		params.Subdomain = common.StringPtr(opts.SubDomain)
	}

	resp, err := s.transport.call(ctx, s.actions.DescribeRecordList, params)
	if err != nil {
		var sdkErr *tcerr.TencentCloudSDKError
		if errors.As(err, &sdkErr) && sdkErr.GetCode() == codeNoRecord {
			return []Record{}, nil
		}
		return nil, err
	}

	list := resp.Get("RecordList")
	if !list.IsArray() {
		return nil, malformed(s.actions.DescribeRecordList, resp.Raw, errors.New("RecordList is not an array"))
	}
	items := list.Array()
	records := make([]Record, 0, len(items))
	for _, item := range items {
		record, ok := recordFromListItem(item.Raw)
		if !ok {
			s.log.V(1).Info("skip unparsable record", "raw", item.Raw)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *DNSPodProvider) describe(ctx context.Context, id uint64) (gjson.Result, error) {
	return s.transport.call(ctx, s.actions.DescribeRecord, &dnspod.DescribeRecordRequestParams{
		Domain:   common.StringPtr(s.domain),
		RecordId: common.Uint64Ptr(id),
	})
}

func (s *DNSPodProvider) InfoRecord(ctx context.Context, id uint64) (Record, error) {
	resp, err := s.describe(ctx, id)
	if err != nil {
		return Record{}, err
	}
	record, err := recordFromInfo(resp.Get("RecordInfo").Raw)
	if err != nil {
		return Record{}, malformed(s.actions.DescribeRecord, resp.Raw, err)
	}
	return record, nil
}

// ModifyRecord reads the record first and skips the write when the stored
// value already equals value. Only the value is compared.
func (s *DNSPodProvider) ModifyRecord(ctx context.Context, id uint64, subDomain, recordType, line, value string) (uint64, error) {
	resp, err := s.describe(ctx, id)
	if err != nil {
		return 0, err
	}
	if old := resp.Get("RecordInfo.Value"); old.Type == gjson.String && old.Str == value {
		s.log.V(1).Info("same record value, skip modify", "id", id, "value", value)
		return id, nil
	}

	params := &dnspod.ModifyRecordRequestParams{
		Domain:     common.StringPtr(s.domain),
		RecordId:   common.Uint64Ptr(id),
		RecordType: common.StringPtr(recordType),
		Value:      common.StringPtr(value),
	}
	if subDomain != "" {
		params.SubDomain = common.StringPtr(subDomain)
	}
	params.RecordLine, params.RecordLineId = recordLine(line)

	resp, err = s.transport.call(ctx, s.actions.ModifyRecord, params)
	if err != nil {
		return 0, err
	}
	// The write has been applied by now, so a missing or null id is not an error.
	if v := resp.Get("RecordId"); !v.Exists() || v.Type == gjson.Null {
		return id, nil
	}
	return parseRecordID(s.actions.ModifyRecord, resp, "RecordId")
}

// DeleteRecord succeeds on any reply that carries a Response object.
func (s *DNSPodProvider) DeleteRecord(ctx context.Context, id uint64) error {
	_, err := s.transport.call(ctx, s.actions.DeleteRecord, &dnspod.DeleteRecordRequestParams{
		Domain:   common.StringPtr(s.domain),
		RecordId: common.Uint64Ptr(id),
	})
	return err
}
