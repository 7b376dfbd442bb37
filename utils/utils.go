package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// GenerateOTP generates a 6-digit OTP
func GenerateOTP() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	otp := ""
	for i := 0; i < 6; i++ {
		otp += fmt.Sprintf("%d", rng.Intn(10))
	}
	return otp
}

// NormalizeEmail lower-cases and trims an email address. All store
// lookups and writes go through this so the same mailbox always maps
// to the same record.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
