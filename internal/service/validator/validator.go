package validator

import (
	"regexp"
	"strconv"

	"github.com/google/uuid"
	"github.com/jgivc/groupgallery/internal/common"
	"github.com/jgivc/groupgallery/internal/entity"
)

var (
	// https://<host>/<36-char hex-hyphen id>~<count>/ with an optional
	// trailing slash. A count of exactly 1 is valid: some uploaders always
	// suffix single-file groups with ~1.
	groupURLRegexp = regexp.MustCompile(`^https://([^/]+)/([a-f0-9-]{36})~(\d+)/?$`)
)

// Validate parses and authorizes a raw group URL. It either returns a
// complete descriptor or a *common.Rejection, never a partial result.
// The allow-list check is exact and case-sensitive: no wildcard or suffix
// matching, so a host like evil.ucarecdn.com.attacker.com cannot pass.
func Validate(rawURL string, allowedHosts []string, maxCount int) (*entity.GroupDescriptor, error) {
	if rawURL == "" {
		return nil, common.NewRejection("No URL provided")
	}

	m := groupURLRegexp.FindStringSubmatch(rawURL)
	if m == nil {
		return nil, common.NewRejection("Invalid URL format")
	}

	host, groupID, countStr := m[1], m[2], m[3]

	// The regex only checks shape, the id must be a real UUID.
	if _, err := uuid.Parse(groupID); err != nil {
		return nil, common.NewRejection("Invalid URL format")
	}

	if !hostAllowed(host, allowedHosts) {
		return nil, common.NewRejection("Unauthorized CDN host")
	}

	count, err := strconv.Atoi(countStr)
	if err != nil || count < 1 {
		return nil, common.NewRejection("Invalid file count")
	}

	if count > maxCount {
		return nil, common.NewRejection("File count exceeds maximum (%d)", maxCount)
	}

	return &entity.GroupDescriptor{
		Host:    host,
		GroupID: groupID,
		Count:   count,
	}, nil
}

func hostAllowed(host string, allowedHosts []string) bool {
	for _, allowed := range allowedHosts {
		if host == allowed {
			return true
		}
	}

	return false
}
