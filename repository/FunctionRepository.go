package repository

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

var (
	// ErrNotFound is returned when a record does not exist (or was soft-deleted).
	ErrNotFound = errors.New("record not found")
	// ErrInvalidTransition is returned when a performa status change is not allowed.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrDuplicate is returned when a unique constraint would be violated.
	ErrDuplicate = errors.New("record already exists")
)

// GenerateRandomNumber returns a 9-digit identifier.
func GenerateRandomNumber() int {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	return rng.Intn(900000000) + 100000000
}

// GenerateRandomCode returns two letters followed by five digits, e.g. "AB12345".
func GenerateRandomCode() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	letters := "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	prefix := string(letters[rng.Intn(len(letters))]) + string(letters[rng.Intn(len(letters))])
	number := rng.Intn(90000) + 10000

	return fmt.Sprintf("%s%d", prefix, number)
}

// GeneratePerformaReference returns the human-facing performa number.
func GeneratePerformaReference() string {
	return "PF-" + GenerateRandomCode()
}
