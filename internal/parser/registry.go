package parser

import "strings"

// Descriptor 解析器描述符：名称模式集 + 工厂
type Descriptor struct {
	Type     SheetType
	Patterns []string
	New      func(ctx PeriodContext) SheetParser
}

// Registry 固定顺序的解析器注册表
// 分类是确定性的：相同的 Sheet 名与注册顺序总是选中同一个解析器
type Registry struct {
	descriptors []Descriptor
}

// NewRegistry 按固定顺序注册六类解析器
func NewRegistry() *Registry {
	return &Registry{descriptors: []Descriptor{
		{
			Type:     SheetTypeRateList,
			Patterns: []string{"rate-list", "rate list", "ratelist"},
			New:      func(ctx PeriodContext) SheetParser { return NewRateListParser(ctx) },
		},
		{
			Type:     SheetTypeAttendance,
			Patterns: []string{"attendance"},
			New:      func(ctx PeriodContext) SheetParser { return NewAttendanceParser(ctx) },
		},
		{
			Type:     SheetTypeSales,
			Patterns: []string{"sale report", "sale_report", "sales report", "sales_report"},
			New:      func(ctx PeriodContext) SheetParser { return NewSalesParser(ctx) },
		},
		{
			Type:     SheetTypePCV,
			Patterns: []string{"pcv", "petty cash", "expense report"},
			New:      func(ctx PeriodContext) SheetParser { return NewPCVParser(ctx) },
		},
		{
			Type:     SheetTypePnL,
			Patterns: []string{"p&l", "pnl", "profit", "loss"},
			New:      func(ctx PeriodContext) SheetParser { return NewPnLParser(ctx) },
		},
		{
			Type:     SheetTypeInventory,
			Patterns: []string{"balance", "inventory", "activity", "costs"},
			New:      func(ctx PeriodContext) SheetParser { return NewInventoryParser(ctx) },
		},
	}}
}

// Classify 返回第一个名称模式命中的描述符
// 未命中时第二个返回值为 false，由调用方决定跳过该 Sheet
func (r *Registry) Classify(sheetName string) (Descriptor, bool) {
	name := strings.ToLower(strings.TrimSpace(sheetName))
	for _, d := range r.descriptors {
		for _, p := range d.Patterns {
			if strings.Contains(name, p) {
				return d, true
			}
		}
	}
	return Descriptor{}, false
}

// Descriptors 注册顺序的描述符列表
func (r *Registry) Descriptors() []Descriptor {
	return r.descriptors
}
