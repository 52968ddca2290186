package importer

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var yearRe = regexp.MustCompile(`20\d{2}`)

// monthNames 全名在前，避免 "june" 先被 "jun" 截走
var monthNames = []struct {
	Name  string
	Month int
}{
	{"january", 1}, {"february", 2}, {"march", 3}, {"april", 4},
	{"may", 5}, {"june", 6}, {"july", 7}, {"august", 8},
	{"september", 9}, {"october", 10}, {"november", 11}, {"december", 12},
	{"jan", 1}, {"feb", 2}, {"mar", 3}, {"apr", 4},
	{"jun", 6}, {"jul", 7}, {"aug", 8},
	{"sep", 9}, {"oct", 10}, {"nov", 11}, {"dec", 12},
}

// ExtractReportPeriod 从文件名推断报表年月
// 如 "GR Kitchens June 2025.xlsx" → (2025, 6)；识别不出的部分返回 0
func ExtractReportPeriod(filename string) (year, month int) {
	base := strings.ToLower(filepath.Base(filename))

	if m := yearRe.FindString(base); m != "" {
		year, _ = strconv.Atoi(m)
	}
	for _, mn := range monthNames {
		if strings.Contains(base, mn.Name) {
			month = mn.Month
			break
		}
	}
	return year, month
}
