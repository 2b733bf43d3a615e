package domain

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"
)

var receiptSeq atomic.Int64

// NewBookingCode produces a human-readable booking code, BK followed by
// eight digits. Built from the clock plus a random suffix so two calls in
// the same process collide only with negligible probability.
func NewBookingCode() string {
	n := (time.Now().UnixNano()%10000)*10000 + int64(rand.Intn(10000))
	return fmt.Sprintf("BK%08d", n)
}

// NewReceiptNumber derives a receipt number from the booking code plus a
// monotonic suffix, unique within the process.
func NewReceiptNumber(bookingCode string) string {
	return fmt.Sprintf("RCP-%s-%04d", bookingCode, receiptSeq.Add(1))
}
