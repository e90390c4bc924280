package employee

import (
	"errors"
	"fmt"
)

var ErrNoChange = errors.New("no change")

func errRow(index int, err error) error {
	return fmt.Errorf("row %d: %w", index+1, err)
}
