package config

import (
	"fmt"
	"os"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

// PaymentsAPIURL is the base URL of the payment service the saga requests
// payment creation from.
func PaymentsAPIURL() string {
	return os.Getenv("PAYMENTS_API_URL")
}

// MembershipAPIURL is the base URL of the membership service consulted for
// pricing.
func MembershipAPIURL() string {
	return os.Getenv("MEMBERSHIP_API_URL")
}

func AssetsBucket() string {
	return os.Getenv("S3_ASSETS_BUCKET")
}
