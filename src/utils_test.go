package dnscli

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSortRecord(t *testing.T) {
	records := []Record{
		{ID: 1, SubDomain: "a.www"},
		{ID: 2, SubDomain: "www"},
		{ID: 3, SubDomain: "mail"},
		{ID: 4, SubDomain: "@"},
		{ID: 5, SubDomain: "www"},
	}

	sortRecord(records)

	ids := make([]uint64, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []uint64{4, 3, 2, 5, 1}, ids)
}

func TestPrintRecords(t *testing.T) {
	var buf bytes.Buffer

	printRecords(&buf, []Record{
		{ID: 1, SubDomain: "@", Value: "1.2.3.4", Type: "A", Line: "默认"},
		{ID: 2, SubDomain: "www", Value: "5.6.7.8", Type: "A", Line: "0"},
	})

	assert.Equal(t, "id: 1, name: @, value: 1.2.3.4, type: A, line: 默认\n"+
		"id: 2, name: www, value: 5.6.7.8, type: A, line: 0\n", buf.String())
}

func TestPrintRecordTable(t *testing.T) {
	var buf bytes.Buffer
	long := strings.Repeat("x", 60)

	printRecordTable(&buf, []Record{
		{ID: 162, SubDomain: "www", Value: "1.2.3.4", Type: "A", Line: "默认"},
		{ID: 163, SubDomain: "txt", Value: long, Type: "TXT", Line: "默认"},
	}, "example.com")

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Records in example.com\n"))
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "162")
	assert.Contains(t, out, "1.2.3.4")
	assert.Contains(t, out, strings.Repeat("x", 48)+"...")
	assert.NotContains(t, out, strings.Repeat("x", 49))
}

func TestPrintRecordTable_TruncatesRunes(t *testing.T) {
	var buf bytes.Buffer
	long := strings.Repeat("记", 60)

	printRecordTable(&buf, []Record{{ID: 1, SubDomain: "txt", Value: long, Type: "TXT", Line: "默认"}}, "example.com")

	out := buf.String()
	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, strings.Repeat("记", 48)+"...")
	assert.NotContains(t, out, strings.Repeat("记", 49))
}
