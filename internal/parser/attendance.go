package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/MindweaveTech/restaurantdaily/internal/grid"
)

// AttendanceParser 考勤表解析器（员工信息 + 月度汇总 + 逐日出勤）
type AttendanceParser struct {
	ctx PeriodContext
}

// roleInfo 岗位代码对应的职务与名义底薪
type roleInfo struct {
	Title      string
	BaseSalary float64
}

// RoleMap 岗位代码表
var RoleMap = map[string]roleInfo{
	"rm": {"Restaurant Manager", 32000},
	"sm": {"Shift Manager", 20000},
	"tm": {"Team Member", 14000},
	"mt": {"Management Trainee", 16000},
}

// StatusCodes 出勤状态码表；未识别的状态不产生逐日记录
var StatusCodes = map[string]string{
	"p":     "present",
	"a":     "absent",
	"ab":    "absent",
	"off":   "weekly_off",
	"leave": "leave",
	"l":     "leave",
}

// 汇总行哨兵，命中即跳过
var attendanceSentinels = []string{"over time", "off pending", "total"}

// attendanceColumns 列映射规则表
// 顺序即优先级：bank/father 先于 names，deductions 先于宽泛的 salary
var attendanceColumns = []ColumnRule{
	{"store", []string{"store"}},
	{"bank", []string{`bank.*name`}},
	{"father", []string{"father"}},
	{"names", []string{"name"}},
	{"contact", []string{"contact", "phone"}},
	{"account", []string{"a/c", "account"}},
	{"ifsc", []string{"ifsc"}},
	{"pan", []string{"pan"}},
	{"aadhaar", []string{"adhar", "aadhaar"}},
	{"dob", []string{`d\.o\.b`, "dob"}},
	{"joining", []string{"join"}},
	{"present", []string{"present"}},
	{"leave", []string{"leave"}},
	{"week_off", []string{`week.*off`}},
	{"absent", []string{"absent"}},
	{"total_days", []string{`total.*day`}},
	{"paid_salary", []string{`paid.*salary`}},
	{"role", []string{`^(rm|sm|tm|mt)$`, "unnamed: 11"}},
	{"deductions", []string{"deduct"}},
	{"total_salary", []string{"salary"}},
}

var dayNumberRe = regexp.MustCompile(`(\d{1,2})`)

// NewAttendanceParser 创建考勤解析器
func NewAttendanceParser(ctx PeriodContext) *AttendanceParser {
	return &AttendanceParser{ctx: ctx}
}

// Parse 解析考勤表
// 每个员工行产出一条月度汇总记录；逐日出勤记录嵌套在
// metadata.attendance_records 下
func (p *AttendanceParser) Parse(g *grid.Grid) *ParseResult {
	result := newResult(p.ctx, SheetTypeAttendance)

	headerRow := FindHeaderRow(g, []string{"store", "names", "contact"})
	headers := g.HeaderTexts(headerRow)
	cols := MapColumns(headers, attendanceColumns)
	dateCols := p.findDateColumns(g.Row(headerRow))

	var daily []Record

	for i := headerRow + 1; i < g.RowCount(); i++ {
		name := CleanString(cols.Cell(g, i, "names"))
		if name == nil {
			continue
		}
		nameLower := strings.ToLower(*name)
		if ContainsAny(nameLower, attendanceSentinels) {
			result.warnf("第 %d 行为汇总行（%s），已跳过", i+1, *name)
			continue
		}

		store := p.ctx.Store
		if s := CleanString(cols.Cell(g, i, "store")); s != nil {
			store = *s
		}

		roleCode := CleanString(cols.Cell(g, i, "role"))
		role, known := lookupRole(roleCode)

		employee := Record{
			"name":        *name,
			"store":       store,
			"phone":       CleanString(cols.Cell(g, i, "contact")),
			"bank_name":   CleanString(cols.Cell(g, i, "bank")),
			"account_no":  CleanString(cols.Cell(g, i, "account")),
			"ifsc":        CleanString(cols.Cell(g, i, "ifsc")),
			"pan":         CleanString(cols.Cell(g, i, "pan")),
			"aadhaar":     CleanString(cols.Cell(g, i, "aadhaar")),
			"father_name": CleanString(cols.Cell(g, i, "father")),
			"dob":         CleanDate(cols.Cell(g, i, "dob")),
			"role_code":   roleCode,
			"join_date":   CleanDate(cols.Cell(g, i, "joining")),
			"year":        p.ctx.Year,
			"month":       p.ctx.Month,
			"role_title":  role.Title,

			"present_days":      CleanInt(cols.Cell(g, i, "present")),
			"leave_days":        CleanInt(cols.Cell(g, i, "leave")),
			"weekly_off":        CleanNumber(cols.Cell(g, i, "week_off")),
			"absent_days":       CleanInt(cols.Cell(g, i, "absent")),
			"total_days":        CleanNumber(cols.Cell(g, i, "total_days")),
			"paid_salary":       CleanNumber(cols.Cell(g, i, "paid_salary")),
			"calculated_salary": CleanNumber(cols.Cell(g, i, "total_salary")),
			"deductions":        CleanNumber(cols.Cell(g, i, "deductions")),
		}
		if known {
			employee["base_salary"] = role.BaseSalary
		} else {
			employee["base_salary"] = nil
		}
		result.Data = append(result.Data, employee)

		// 逐日出勤
		for colIdx, day := range dateCols {
			cell := g.Cell(i, colIdx)
			if cell.IsEmpty() {
				continue
			}
			status, ok := StatusCodes[strings.ToLower(strings.TrimSpace(cell.Text))]
			if !ok {
				continue
			}
			isoDate, ok := makeDate(p.ctx.Year, p.ctx.Month, day)
			if !ok {
				continue
			}
			daily = append(daily, Record{
				"employee_name": *name,
				"date":          isoDate,
				"day":           day,
				"status":        status,
				"status_raw":    cell.Text,
				"store":         store,
			})
		}
	}

	result.Metadata["employee_count"] = len(result.Data)
	result.Metadata["attendance_records"] = daily
	return result
}

// findDateColumns 在表头中识别日期列：列号 → 当月日序
// 日期单元格需落在解析周期的年月内；文本列取其中首个 1-31 的数字
func (p *AttendanceParser) findDateColumns(header []grid.Cell) map[int]int {
	dateCols := make(map[int]int)
	for idx, c := range header {
		switch c.Kind {
		case grid.KindDate:
			if c.Date.Year() == p.ctx.Year && int(c.Date.Month()) == p.ctx.Month {
				dateCols[idx] = c.Date.Day()
			}
		case grid.KindText, grid.KindNumber:
			if m := dayNumberRe.FindString(c.Text); m != "" {
				day, err := strconv.Atoi(m)
				if err == nil && day >= 1 && day <= 31 {
					dateCols[idx] = day
				}
			}
		}
	}
	return dateCols
}

// lookupRole 按岗位代码查职务，未识别归为 Staff
func lookupRole(code *string) (roleInfo, bool) {
	if code == nil {
		return roleInfo{Title: "Staff"}, false
	}
	if info, ok := RoleMap[strings.ToLower(strings.TrimSpace(*code))]; ok {
		return info, true
	}
	return roleInfo{Title: "Staff"}, false
}
