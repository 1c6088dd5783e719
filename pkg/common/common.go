package common

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/spf13/cast"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var (
	snowflakeNode *snowflake.Node
	snowflakeOnce sync.Once
)

// UUIDint64 returns a snowflake-style unique int64 id. The node id can be
// set with ATELIER_NODE_ID when running multiple instances.
func UUIDint64() int64 {
	snowflakeOnce.Do(func() {
		nodeID := cast.ToInt64(os.Getenv("ATELIER_NODE_ID"))
		if nodeID <= 0 || nodeID > 1023 {
			nodeID = 1
		}
		node, err := snowflake.NewNode(nodeID)
		if err != nil {
			panic(err)
		}
		snowflakeNode = node
	})
	return snowflakeNode.Generate().Int64()
}

// Sha256HashWithSalt hashes src with the given salt appended.
func Sha256HashWithSalt(src string, salt string) string {
	h := sha256.New()
	h.Write([]byte(src + salt))
	return hex.EncodeToString(h.Sum(nil))
}

// GetSecretSalt returns the instance secret salt used for operator passwords.
func GetSecretSalt() string {
	if v := os.Getenv("ATELIER_SECRET_SALT"); v != "" {
		return v
	}
	return "atelier-secret-salt"
}

var slugStripRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s, collapses non-alphanumeric runs to single hyphens
// and strips leading/trailing hyphens. Mirrors the admin form's slug
// derivation so server-generated object keys stay URL-safe.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugStripRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
