package display

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/jtuomin/sahkolasku/pkg/cost"
	"github.com/jtuomin/sahkolasku/pkg/logger"
	"github.com/jtuomin/sahkolasku/pkg/pricing"
)

func testSummary() cost.Summary {
	return cost.Summary{
		TotalCost: 1234.5678,
		TotalKWh:  5678.9,
		Records:   48,
		From:      time.Date(2019, 7, 31, 0, 0, 0, 0, time.UTC),
		To:        time.Date(2021, 7, 31, 23, 0, 0, 0, time.UTC),
	}
}

func TestNew_SelectsFormatter(t *testing.T) {
	t.Parallel()

	if _, ok := New(Config{Format: FormatJSON}).(*jsonFormatter); !ok {
		t.Error("New(json) did not return jsonFormatter")
	}
	if _, ok := New(Config{Format: FormatSimple}).(*simpleFormatter); !ok {
		t.Error("New(simple) did not return simpleFormatter")
	}
	if _, ok := New(Config{Format: FormatTable}).(*tableFormatter); !ok {
		t.Error("New(table) did not return tableFormatter")
	}
	if _, ok := New(Config{}).(*tableFormatter); !ok {
		t.Error("New(default) did not return tableFormatter")
	}
}

func TestTableFormatSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := New(Config{Format: FormatTable})

	if err := f.FormatSummary(&buf, testSummary()); err != nil {
		t.Fatalf("FormatSummary() error = %v", err)
	}

	out := buf.String()

	// Cost renders with two decimals, usage with whole kWh.
	if !strings.Contains(out, "1,234.57") {
		t.Errorf("output missing rounded cost: %s", out)
	}
	if !strings.Contains(out, "5,679") {
		t.Errorf("output missing rounded usage: %s", out)
	}
	if !strings.Contains(out, "48") {
		t.Errorf("output missing hour count: %s", out)
	}
}

func TestSimpleFormatSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := New(Config{Format: FormatSimple})

	if err := f.FormatSummary(&buf, testSummary()); err != nil {
		t.Fatalf("FormatSummary() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Total cost 1,234.57 EUR") {
		t.Errorf("unexpected output: %s", out)
	}
	if !strings.Contains(out, "5,679 kWh") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestJSONFormatSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := New(Config{Format: FormatJSON, Compact: true})

	if err := f.FormatSummary(&buf, testSummary()); err != nil {
		t.Fatalf("FormatSummary() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if decoded["total_cost"].(float64) != 1234.5678 {
		t.Errorf("total_cost = %v", decoded["total_cost"])
	}
	if decoded["records"].(float64) != 48 {
		t.Errorf("records = %v", decoded["records"])
	}
}

func TestFormatIndex(t *testing.T) {
	t.Parallel()

	log := logger.New(logger.Config{Level: "error", Output: "stderr"})
	b := pricing.NewBuilder(pricing.BuilderConfig{}, log)

	index, err := b.Build([]byte(`[
		{"date":"2019-01-01T00:00:00.000Z","value":10},
		{"date":"2019-01-01T01:00:00.000Z","value":20}
	]`))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	for _, format := range []Format{FormatTable, FormatSimple, FormatJSON} {
		var buf bytes.Buffer
		f := New(Config{Format: format})

		if err := f.FormatIndex(&buf, index); err != nil {
			t.Errorf("%s: FormatIndex() error = %v", format, err)
			continue
		}
		if !strings.Contains(buf.String(), "2") {
			t.Errorf("%s: output missing hour count: %s", format, buf.String())
		}
	}
}
