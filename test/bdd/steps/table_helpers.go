package steps

import (
	"fmt"
	"strconv"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"
)

// cellValue returns the value in row under the header columnName.
// The first table row is the header.
func cellValue(table *godog.Table, row *messages.PickleTableRow, columnName string) (string, error) {
	if len(table.Rows) == 0 {
		return "", fmt.Errorf("table has no header row")
	}
	for i, headerCell := range table.Rows[0].Cells {
		if headerCell.Value == columnName && i < len(row.Cells) {
			return row.Cells[i].Value, nil
		}
	}
	return "", fmt.Errorf("table has no %q column", columnName)
}

func cellInt(table *godog.Table, row *messages.PickleTableRow, columnName string) (int, error) {
	value, err := cellValue(table, row, columnName)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(value)
}
