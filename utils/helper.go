package utils

import (
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UnknownUserName is shown when a user record has no usable name or email.
const UnknownUserName = "Unknown user"

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// DisplayName resolves the name shown for a user: full name, then short name,
// then the local part of the email, then UnknownUserName.
func DisplayName(fullName, name, email string) string {
	if v := strings.TrimSpace(fullName); v != "" {
		return v
	}
	if v := strings.TrimSpace(name); v != "" {
		return v
	}
	if local := EmailLocalPart(email); local != "" {
		return local
	}
	return UnknownUserName
}

// EmailLocalPart returns the part of an address before "@", or "" when there is none.
func EmailLocalPart(email string) string {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at <= 0 {
		return ""
	}
	return email[:at]
}

// SafeRatio divides and returns 0 for a zero or negative denominator.
func SafeRatio(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return numerator / denominator
}

// UniqueObjectIDs returns the distinct non-zero ids in first-seen order.
func UniqueObjectIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool, len(ids))
	result := make([]primitive.ObjectID, 0, len(ids))

	for _, id := range ids {
		if id.IsZero() || seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}

	return result
}

// ObjectIDToString converts MongoDB ObjectID to string, empty for the zero id.
func ObjectIDToString(id primitive.ObjectID) string {
	if id.IsZero() {
		return ""
	}
	return id.Hex()
}

// TitleCase upper-cases the first letter of each underscore or space separated word.
func TitleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == ' ' || r == '-'
	})
	for i, w := range words {
		first, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(first)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}

// SliceContains checks if slice contains element
func SliceContains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
