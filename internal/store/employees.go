package store

import (
	"fmt"

	"github.com/MindweaveTech/restaurantdaily/internal/parser"
)

// SaveAttendance 批量落库员工月度汇总与逐日出勤
// 员工按姓名去重；月度汇总按（员工, 年月）覆盖；逐日记录按（员工, 日期）忽略重复
func (s *Store) SaveAttendance(employees, daily []parser.Record) (int, error) {
	if len(employees) == 0 && len(daily) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	upsertEmployee, err := tx.Prepare(`
		INSERT INTO employees (name, store, phone, bank_name, account_no, ifsc, pan, aadhaar, father_name, dob, role_code, role_title, join_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			store = excluded.store,
			phone = COALESCE(excluded.phone, phone),
			bank_name = COALESCE(excluded.bank_name, bank_name),
			account_no = COALESCE(excluded.account_no, account_no),
			ifsc = COALESCE(excluded.ifsc, ifsc),
			pan = COALESCE(excluded.pan, pan),
			aadhaar = COALESCE(excluded.aadhaar, aadhaar),
			father_name = COALESCE(excluded.father_name, father_name),
			dob = COALESCE(excluded.dob, dob),
			role_code = COALESCE(excluded.role_code, role_code),
			role_title = excluded.role_title,
			join_date = COALESCE(excluded.join_date, join_date)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare employee upsert: %w", err)
	}
	defer upsertEmployee.Close()

	upsertSummary, err := tx.Prepare(`
		INSERT INTO attendance (employee_id, year, month, present_days, leave_days, weekly_off, absent_days, total_days, paid_salary, calculated_salary, deductions, base_salary)
		VALUES ((SELECT id FROM employees WHERE name = ?), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(employee_id, year, month) DO UPDATE SET
			present_days = excluded.present_days,
			leave_days = excluded.leave_days,
			weekly_off = excluded.weekly_off,
			absent_days = excluded.absent_days,
			total_days = excluded.total_days,
			paid_salary = excluded.paid_salary,
			calculated_salary = excluded.calculated_salary,
			deductions = excluded.deductions,
			base_salary = excluded.base_salary
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare attendance upsert: %w", err)
	}
	defer upsertSummary.Close()

	insertDaily, err := tx.Prepare(`
		INSERT OR IGNORE INTO daily_attendance (employee_id, date, day, status, status_raw, store)
		VALUES ((SELECT id FROM employees WHERE name = ?), ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare daily insert: %w", err)
	}
	defer insertDaily.Close()

	saved := 0
	for _, r := range employees {
		name, ok := r.Str("name")
		if !ok {
			continue
		}
		if _, err := upsertEmployee.Exec(
			name, ns(r, "store"), ns(r, "phone"), ns(r, "bank_name"), ns(r, "account_no"),
			ns(r, "ifsc"), ns(r, "pan"), ns(r, "aadhaar"), ns(r, "father_name"), ns(r, "dob"),
			ns(r, "role_code"), ns(r, "role_title"), ns(r, "join_date"),
		); err != nil {
			return saved, fmt.Errorf("failed to upsert employee %s: %w", name, err)
		}
		if _, err := upsertSummary.Exec(
			name, ni(r, "year"), ni(r, "month"),
			ni(r, "present_days"), ni(r, "leave_days"), nf(r, "weekly_off"), ni(r, "absent_days"),
			nf(r, "total_days"), nf(r, "paid_salary"), nf(r, "calculated_salary"),
			nf(r, "deductions"), nf(r, "base_salary"),
		); err != nil {
			return saved, fmt.Errorf("failed to upsert attendance for %s: %w", name, err)
		}
		saved++
	}

	for _, r := range daily {
		name, ok := r.Str("employee_name")
		if !ok {
			continue
		}
		if _, err := insertDaily.Exec(
			name, ns(r, "date"), ni(r, "day"), ns(r, "status"), ns(r, "status_raw"), ns(r, "store"),
		); err != nil {
			return saved, fmt.Errorf("failed to insert daily attendance for %s: %w", name, err)
		}
		saved++
	}

	if err := tx.Commit(); err != nil {
		return saved, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return saved, nil
}

// EmployeeAttendance 员工月度考勤查询结果
type EmployeeAttendance struct {
	Name             string   `json:"name"`
	Store            *string  `json:"store"`
	RoleTitle        *string  `json:"role_title"`
	Year             int      `json:"year"`
	Month            int      `json:"month"`
	PresentDays      *int64   `json:"present_days"`
	LeaveDays        *int64   `json:"leave_days"`
	WeeklyOff        *float64 `json:"weekly_off"`
	AbsentDays       *int64   `json:"absent_days"`
	TotalDays        *float64 `json:"total_days"`
	PaidSalary       *float64 `json:"paid_salary"`
	CalculatedSalary *float64 `json:"calculated_salary"`
	Deductions       *float64 `json:"deductions"`
	BaseSalary       *float64 `json:"base_salary"`
}

// GetAttendance 查询某年月的员工考勤汇总
func (s *Store) GetAttendance(year, month int, storeName string) ([]*EmployeeAttendance, error) {
	query := `
		SELECT e.name, e.store, e.role_title, a.year, a.month,
			a.present_days, a.leave_days, a.weekly_off, a.absent_days, a.total_days,
			a.paid_salary, a.calculated_salary, a.deductions, a.base_salary
		FROM attendance a JOIN employees e ON e.id = a.employee_id
		WHERE a.year = ? AND a.month = ?
	`
	args := []interface{}{year, month}
	if storeName != "" {
		query += " AND e.store = ?"
		args = append(args, storeName)
	}
	query += " ORDER BY e.name"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	var out []*EmployeeAttendance
	for rows.Next() {
		a := &EmployeeAttendance{}
		if err := rows.Scan(&a.Name, &a.Store, &a.RoleTitle, &a.Year, &a.Month,
			&a.PresentDays, &a.LeaveDays, &a.WeeklyOff, &a.AbsentDays, &a.TotalDays,
			&a.PaidSalary, &a.CalculatedSalary, &a.Deductions, &a.BaseSalary); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
