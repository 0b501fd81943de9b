package dnscli

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common"
)

// Record is one DNS record as the provider reports it.
type Record struct {
	ID        uint64
	SubDomain string
	Value     string
	Type      string
	Line      string
}

func (r Record) String() string {
	return fmt.Sprintf("id: %d, name: %s, value: %s, type: %s, line: %s",
		r.ID, r.SubDomain, r.Value, r.Type, r.Line)
}

// ListOptions narrows a record listing. Nil or empty fields are not sent.
type ListOptions struct {
	Offset    *uint64
	Length    *uint64
	SubDomain string
}

type DNSProvider interface {
	AddRecord(ctx context.Context, subDomain, recordType, recordLine, value string) (uint64, error)
	ListRecord(ctx context.Context, opts ListOptions) ([]Record, error)
	InfoRecord(ctx context.Context, id uint64) (Record, error)
	ModifyRecord(ctx context.Context, id uint64, subDomain, recordType, recordLine, value string) (uint64, error)
	DeleteRecord(ctx context.Context, id uint64) error
}

type ProviderKind int

const (
	ProviderDNSPod ProviderKind = iota + 1
)

func (k ProviderKind) String() string {
	switch k {
	case ProviderDNSPod:
		return "dnspod"
	default:
		return fmt.Sprintf("provider(%d)", int(k))
	}
}

func ParseProviderKind(name string) (ProviderKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dnspod":
		return ProviderDNSPod, nil
	default:
		return 0, errors.Wrapf(ErrUnknownProvider, "%q", name)
	}
}

func NewProvider(kind ProviderKind, cred *common.Credential, domain string, profile APIProfile, log logr.Logger) (DNSProvider, error) {
	switch kind {
	case ProviderDNSPod:
		return NewDNSPodProvider(cred, domain, profile, log), nil
	default:
		return nil, errors.Wrapf(ErrUnknownProvider, "%s", kind)
	}
}
