package attendance

// RecordFilter narrows the manager record listing. Date and Status are exact
// matches pushed down to the store; EmployeeID lives on the user row, so it
// can only be applied after the join. Empty fields mean no constraint.
type RecordFilter struct {
	EmployeeID string
	Date       string
	Status     string
}

// storeConditions returns the pre-filter predicates the repository can push
// into the query.
func (f RecordFilter) storeConditions() map[string]any {
	conds := make(map[string]any)
	if f.Date != "" {
		conds["date"] = f.Date
	}
	if f.Status != "" {
		conds["status"] = f.Status
	}
	return conds
}

// FilterByEmployeeID is the post-join stage: it keeps records whose resolved
// user carries the given employeeId, preserving input order. Records with no
// joined user never match a non-empty filter.
func FilterByEmployeeID(records []AttendanceRecord, employeeID string) []AttendanceRecord {
	if employeeID == "" {
		return records
	}

	out := make([]AttendanceRecord, 0, len(records))
	for _, r := range records {
		if r.User != nil && r.User.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	return out
}
