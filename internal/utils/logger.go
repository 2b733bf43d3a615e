package utils

import (
	"log"
	"strings"
)

// LogEvent prints one standardized line per domain event
// (booking/payment/receipt/notification modules). Keep messages
// summarized; never include payer or credential details.
func LogEvent(requestID, module, action, message string) {
	log.Printf("hostella[%s] action=%s request_id=%s msg=%s",
		strings.ToUpper(module), action, strings.TrimSpace(requestID), message)
}
