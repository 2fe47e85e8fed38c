package docgen

import "strings"

// monthNames maps the two-digit month code to its display name.
var monthNames = map[string]string{
	"01": "JANEIRO", "02": "FEVEREIRO", "03": "MARÇO", "04": "ABRIL",
	"05": "MAIO", "06": "JUNHO", "07": "JULHO", "08": "AGOSTO",
	"09": "SETEMBRO", "10": "OUTUBRO", "11": "NOVEMBRO", "12": "DEZEMBRO",
}

// MonthName returns the display name for a two-digit month code. Unknown
// codes (including the "00" sentinel) render as "MÊS {code}".
func MonthName(code string) string {
	if name, ok := monthNames[code]; ok {
		return name
	}
	return "MÊS " + code
}

// sentinelMonth collects transactions whose date could not be split into
// day/month/year.
const sentinelMonth = "00"

// monthKey extracts the two-digit month component of a DD/MM/YYYY date.
func monthKey(date string) string {
	parts := strings.Split(date, "/")
	if len(parts) != 3 {
		return sentinelMonth
	}
	return parts[1]
}
