package mailroom

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Parse errors for malformed email bodies.
var (
	ErrNoSubjectID = errors.New("email body contains no usable subjectId= marker")
	ErrNoMessage   = errors.New("email body contains no usable message= marker")
)

var (
	// subjectPattern captures the rest of the line after the marker.
	subjectPattern = regexp.MustCompile(`subjectId=(.*)`)
	// messagePattern captures everything after the marker, newlines included.
	messagePattern = regexp.MustCompile(`(?s)message=(.*)`)
)

// parseBody extracts the target record id and the message text from a raw
// email body. Both markers are mandatory and must carry a non-blank value.
func parseBody(body string) (subjectID, message string, err error) {
	if m := subjectPattern.FindStringSubmatch(body); m != nil {
		subjectID = strings.TrimSpace(m[1])
	}

	if subjectID == "" {
		return "", "", ErrNoSubjectID
	}

	if m := messagePattern.FindStringSubmatch(body); m != nil {
		message = strings.TrimSpace(m[1])
	}

	if message == "" {
		return "", "", ErrNoMessage
	}

	return subjectID, message, nil
}
