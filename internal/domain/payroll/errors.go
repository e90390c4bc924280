package payroll

import "errors"

var ErrNoClaim = errors.New("no pay claim for the current month")
