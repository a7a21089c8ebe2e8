// Package export serializes order detail records for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/p2pdesk/orders-dashboard/pkg/client"
)

// csvHeader is the column layout of an orders export.
var csvHeader = []string{"id", "amount", "status", "side", "currency", "bank_name", "account_no"}

// WriteCSV writes detail records as CSV. Rows follow the order of ids (the
// batch result arrives in completion order); ids with no resolved record are
// skipped, matching the partial-result contract of the fetch path. The first
// payment term is flattened into the bank columns; records without terms get
// empty cells.
func WriteCSV(w io.Writer, ids []string, details []client.OrderDetail) error {
	byID := make(map[string]client.OrderDetail, len(details))
	for _, d := range details {
		byID[d.ID] = d
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	written := make(map[string]bool, len(ids))
	for _, id := range ids {
		detail, ok := byID[id]
		if !ok || written[id] {
			continue
		}
		written[id] = true

		bankName, accountNo := "", ""
		if len(detail.PaymentTermList) > 0 {
			bankName = detail.PaymentTermList[0].BankName
			accountNo = detail.PaymentTermList[0].AccountNo
		}

		row := []string{
			detail.ID,
			strconv.FormatFloat(detail.Amount, 'f', -1, 64),
			detail.Status,
			detail.Side,
			detail.Currency,
			bankName,
			accountNo,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for %s: %w", id, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
