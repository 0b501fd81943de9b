package dnscli

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

func defqdn(input string) string {
	return strings.TrimSuffix(input, ".")
}

func compareRecord(l, r Record) bool {
	reverseDomain := func(s string) string {
		t := strings.Split(s, ".")
		for i, j := 0, len(t)-1; i < j; i, j = i+1, j-1 {
			t[i], t[j] = t[j], t[i]
		}
		return strings.Join(t, ".")
	}
	return strings.Compare(reverseDomain(l.SubDomain), reverseDomain(r.SubDomain)) < 0
}

func sortRecord(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return compareRecord(records[i], records[j])
	})
}

func printRecords(w io.Writer, records []Record) {
	for _, v := range records {
		fmt.Fprintln(w, v.String())
	}
}

func printRecordTable(w io.Writer, records []Record, domain string) {
	fmt.Fprintf(w, "Records in %s\n", domain)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Name", "Value", "Type", "Line"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})
	table.SetAutoWrapText(false)
	for _, v := range records {
		value := v.Value
		if r := []rune(value); len(r) > 48 {
			value = string(r[:48]) + "..."
		}
		table.Append([]string{strconv.FormatUint(v.ID, 10), v.SubDomain, value, v.Type, v.Line})
	}
	table.Render()
}
