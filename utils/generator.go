package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID returns a collision-resistant identifier with a readable
// entity prefix, e.g. "main_6f1c…", "sub_…", "user_…".
func NewID(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, uuid.NewString())
}
