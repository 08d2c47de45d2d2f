package utils

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/localgroup-vla/qaplotter/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var formatClause = regexp.MustCompile(`(?i)\bFORMAT\s+(\w+)\b`)

// ExtractAndRemoveFormat extracts the FORMAT clause from the query and returns the query without the FORMAT clause
func ExtractAndRemoveFormat(input string) (string, string) {
	match := formatClause.FindStringSubmatch(input)
	if len(match) != 2 {
		return input, ""
	}
	return strings.TrimSpace(formatClause.ReplaceAllString(input, "")), match[1]
}

// ConversationOfRows renders the result set in one of the ClickHouse style
// output formats.
func ConversationOfRows(rows *sql.Rows, format string, duration time.Duration) (string, error) {
	defer rows.Close()
	switch format {
	case "JSONCompact", "JSON", "":
		return rowsToJSON(rows, duration)
	case "CSVWithNames":
		return rowsToDelimited(rows, ",", true)
	case "CSV":
		return rowsToDelimited(rows, ",", false)
	case "TSVWithNames", "TabSeparatedWithNames":
		return rowsToDelimited(rows, "\t", true)
	case "TSV", "TabSeparated":
		return rowsToDelimited(rows, "\t", false)
	}
	return "", fmt.Errorf("unsupported format %q", format)
}

// rowsToJSON converts the rows to JSON string
func rowsToJSON(rows *sql.Rows, elapsedTime time.Duration) (string, error) {
	columns, err := rows.ColumnTypes()
	if err != nil {
		return "", err
	}

	var results model.QueryResult
	results.Meta = make([]model.ResultColumn, len(columns))
	results.Data = make([][]any, 0)

	for i, column := range columns {
		results.Meta[i].Name = column.Name()
		results.Meta[i].Type = column.DatabaseTypeName()
	}

	for rows.Next() {
		values := make([]interface{}, len(columns))
		for i := range columns {
			values[i] = new(interface{})
		}

		err := rows.Scan(values...)
		if err != nil {
			return "", err
		}

		rowData := make([]interface{}, len(columns))
		for i, value := range values {
			switch v := (*(value.(*interface{}))).(type) {
			case []byte:
				rowData[i] = string(v)
			default:
				rowData[i] = v
			}
		}
		results.Data = append(results.Data, rowData)
	}

	err = rows.Err()
	if err != nil {
		return "", err
	}

	results.Rows = len(results.Data)
	results.Statistics.Elapsed = elapsedTime.Seconds()
	results.Statistics.RowsRead = results.Rows
	jsonData, err := json.Marshal(results)
	if err != nil {
		return "", err
	}

	return string(jsonData), nil
}

// rowsToDelimited renders rows as CSV or TSV lines
func rowsToDelimited(rows *sql.Rows, sep string, names bool) (string, error) {
	var result []string
	columns, err := rows.Columns()
	if err != nil {
		return "", err
	}

	if names {
		result = append(result, strings.Join(columns, sep))
	}

	values := make([]interface{}, len(columns))
	scanArgs := make([]interface{}, len(columns))
	for i := range values {
		scanArgs[i] = &values[i]
	}
	for rows.Next() {
		err := rows.Scan(scanArgs...)
		if err != nil {
			return "", err
		}

		lineParts := make([]string, len(values))
		for i, v := range values {
			lineParts[i] = fmt.Sprintf("%v", v)
		}
		result = append(result, strings.Join(lineParts, sep))
	}

	if err := rows.Err(); err != nil {
		return "", err
	}

	return strings.Join(result, "\n"), nil
}
