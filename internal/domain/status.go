package domain

import "fmt"

// PushStatus is the caller-facing state of an STK push
type PushStatus string

const (
	StatusPending   PushStatus = "pending"
	StatusSuccess   PushStatus = "success"
	StatusFailed    PushStatus = "failed"
	StatusCancelled PushStatus = "cancelled"
	StatusTimeout   PushStatus = "timeout"
)

const ResultCodeSuccess = 0

const MessageStillProcessing = "Transaction is still being processed"

type resultCodeInfo struct {
	status  PushStatus
	message string
}

var resultCodes = map[int]resultCodeInfo{
	0:    {StatusSuccess, "Payment completed successfully"},
	1:    {StatusFailed, "Insufficient balance"},
	2:    {StatusFailed, "Amount below minimum limit"},
	3:    {StatusFailed, "Amount exceeds maximum transaction limit"},
	4:    {StatusFailed, "Would exceed daily transfer limit"},
	8:    {StatusFailed, "Would exceed maximum account balance"},
	17:   {StatusFailed, "Duplicate transaction, wait 2 minutes"},
	1019: {StatusFailed, "Transaction expired"},
	1025: {StatusFailed, "Transaction limit exceeded"},
	1032: {StatusCancelled, "Transaction cancelled by user"},
	1037: {StatusTimeout, "Transaction timed out. No response from user."},
	2001: {StatusFailed, "Wrong PIN entered"},
	2028: {StatusFailed, "Invalid transaction type or PartyB"},
}

// StatusForResultCode is total: unknown codes are reported as pending so the
// poll loop keeps going instead of failing.
func StatusForResultCode(code int) PushStatus {
	if info, ok := resultCodes[code]; ok {
		return info.status
	}
	return StatusPending
}

// DescribeResultCode returns the human readable message for a code.
func DescribeResultCode(code int) string {
	if info, ok := resultCodes[code]; ok {
		return info.message
	}
	return fmt.Sprintf("Unknown result (code: %d)", code)
}

// IsKnownResultCode reports whether the code is in the table.
func IsKnownResultCode(code int) bool {
	_, ok := resultCodes[code]
	return ok
}

// IsFinal reports whether the status will not change on a later poll.
func (s PushStatus) IsFinal() bool {
	return s != StatusPending
}
