package export

import (
	"bytes"
	"encoding/csv"
	"reflect"
	"testing"

	"github.com/p2pdesk/orders-dashboard/pkg/client"
)

func TestWriteCSV(t *testing.T) {
	details := []client.OrderDetail{
		// Completion order differs from id order on purpose.
		{
			ID:       "B",
			Amount:   20.5,
			Status:   "paid",
			Side:     "buy",
			Currency: "USD",
			PaymentTermList: []client.PaymentTerm{
				{BankName: "First Bank", AccountNo: "42"},
				{BankName: "Second Bank", AccountNo: "43"},
			},
		},
		{
			ID:              "A",
			Amount:          10,
			Status:          "pending",
			Side:            "sell",
			Currency:        "EUR",
			PaymentTermList: []client.PaymentTerm{},
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, []string{"A", "B", "C"}, details); err != nil {
		t.Fatalf("WriteCSV() unexpected error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back csv: %v", err)
	}

	want := [][]string{
		{"id", "amount", "status", "side", "currency", "bank_name", "account_no"},
		{"A", "10", "pending", "sell", "EUR", "", ""},
		{"B", "20.5", "paid", "buy", "USD", "First Bank", "42"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("csv rows = %v, want %v", rows, want)
	}
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil, nil); err != nil {
		t.Fatalf("WriteCSV() unexpected error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back csv: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected header row only, got %d rows", len(rows))
	}
}

func TestWriteCSV_DuplicateIDsWrittenOnce(t *testing.T) {
	details := []client.OrderDetail{
		{ID: "A", Amount: 1, PaymentTermList: []client.PaymentTerm{}},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, []string{"A", "A"}, details); err != nil {
		t.Fatalf("WriteCSV() unexpected error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back csv: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("expected header + 1 row, got %d rows", len(rows))
	}
}
