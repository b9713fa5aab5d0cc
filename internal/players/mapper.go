package players

import (
	"strconv"
	"strings"

	"github.com/mauv0809/dna-dashboard/internal/sheets"
)

// FromTable maps every data row of table to a PlayerRecord by header name.
// Missing columns and short rows leave the field empty or zero.
func FromTable(table *sheets.Table) []PlayerRecord {
	rows := table.Rows
	if len(rows) > MaxRows {
		rows = rows[:MaxRows]
	}

	records := make([]PlayerRecord, 0, len(rows))
	for i := range rows {
		records = append(records, PlayerRecord{
			Name:        table.Cell(i, ColName),
			Phone:       table.Cell(i, ColPhone),
			Age:         leadingInt(table.Cell(i, ColAge)),
			TargetPairs: table.Cell(i, ColTargetPairs),
			Attempt1:    table.Cell(i, ColAttempt1),
			Attempt2:    table.Cell(i, ColAttempt2),
			Attempt3:    table.Cell(i, ColAttempt3),
			Attempts:    leadingInt(table.Cell(i, ColAttempts)),
			Result:      table.Cell(i, ColResult),
			Timestamp:   table.Cell(i, ColTimestamp),
		})
	}
	return records
}

// ToRow renders a record in Header column order.
func ToRow(r PlayerRecord) []string {
	return []string{
		r.Name,
		r.Phone,
		strconv.Itoa(r.Age),
		r.TargetPairs,
		r.Attempt1,
		r.Attempt2,
		r.Attempt3,
		strconv.Itoa(r.Attempts),
		r.Result,
		r.Timestamp,
	}
}

// leadingInt parses the optional sign and digits at the start of s, so "25 years" is 25.
// Text without leading digits is 0.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
