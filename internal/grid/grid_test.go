package grid

import "testing"

func TestFromValue_Typing(t *testing.T) {
	t.Parallel()

	if c := FromValue("   "); c.Kind != KindEmpty {
		t.Fatalf("blank want empty, got kind=%d", c.Kind)
	}
	if c := FromValue("1,250.50"); c.Kind != KindNumber || c.Number != 1250.50 {
		t.Fatalf("1,250.50 want number 1250.50, got kind=%d num=%v", c.Kind, c.Number)
	}
	if c := FromValue("15/06/2025"); c.Kind != KindDate {
		t.Fatalf("15/06/2025 want date, got kind=%d", c.Kind)
	}
	if c := FromValue("15/06/2025"); c.Date.Day() != 15 || int(c.Date.Month()) != 6 || c.Date.Year() != 2025 {
		t.Fatalf("15/06/2025 parsed as %v", c.Date)
	}
	if c := FromValue("Cheese Slice"); c.Kind != KindText || c.Text != "Cheese Slice" {
		t.Fatalf("text cell mismatch: kind=%d text=%q", c.Kind, c.Text)
	}
	// ParseFloat 能解析 NaN/Inf 标记，但它们不是数值单元格
	for _, raw := range []string{"NaN", "nan", "inf", "-Inf", "+Inf"} {
		if c := FromValue(raw); c.Kind != KindText {
			t.Fatalf("%q want text, got kind=%d num=%v", raw, c.Kind, c.Number)
		}
	}
}

func TestGrid_OutOfRangeIsEmpty(t *testing.T) {
	t.Parallel()

	g := FromStrings([][]string{{"a", "b"}, {"c"}})
	if !g.Cell(0, 5).IsEmpty() {
		t.Fatalf("col out of range should be empty")
	}
	if !g.Cell(9, 0).IsEmpty() {
		t.Fatalf("row out of range should be empty")
	}
	// 短行按最大宽度补齐
	if g.Width() != 2 {
		t.Fatalf("width want 2 got %d", g.Width())
	}
	if !g.Cell(1, 1).IsEmpty() {
		t.Fatalf("padded cell should be empty")
	}
}

func TestGrid_RowIsEmpty(t *testing.T) {
	t.Parallel()

	g := FromStrings([][]string{{"", "  ", ""}, {"", "x", ""}})
	if !g.RowIsEmpty(0) {
		t.Fatalf("row 0 should be empty")
	}
	if g.RowIsEmpty(1) {
		t.Fatalf("row 1 should not be empty")
	}
}
