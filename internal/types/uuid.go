package types

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Entity id prefixes
const (
	UUID_PREFIX_CUSTOMER          = "cust"
	UUID_PREFIX_PRODUCT           = "prod"
	UUID_PREFIX_PRICE             = "price"
	UUID_PREFIX_SUBSCRIPTION      = "subs"
	UUID_PREFIX_SUBSCRIPTION_ITEM = "si"
)

// GenerateUUID returns a lowercase ULID.
func GenerateUUID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return strings.ToLower(ulid.MustNew(ulid.Timestamp(time.Now().UTC()), entropy).String())
}

// GenerateUUIDWithPrefix returns a prefixed ULID, e.g. "subs_01h2xcejq...".
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}
