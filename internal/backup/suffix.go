package backup

import (
	"strconv"
	"time"
)

// defaultSuffix produces a monotonically-unique suffix from the wall
// clock, precise enough that two backups created in the same process
// never collide.
func defaultSuffix() string {
	return strconv.FormatInt(time.Now().UnixNano(), 10)
}
