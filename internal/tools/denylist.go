package tools

import (
	"strings"

	"github.com/samber/lo"
)

// UnsafeMessage is reported instead of running or returning a denied command.
const UnsafeMessage = "Potentially dangerous command detected."

// dangerousPatterns are matched as substrings of the lower-cased command.
// The check is advisory and trivially bypassed; it is not a sandbox.
var dangerousPatterns = []string{"sudo", "rm -rf /", "> /dev/", "| rm", "& rm", "; rm", "&& rm"}

// IsDangerous reports whether command contains a denied pattern.
func IsDangerous(command string) bool {
	lower := strings.ToLower(command)
	return lo.SomeBy(dangerousPatterns, func(pattern string) bool {
		return strings.Contains(lower, pattern)
	})
}

func unsafeCommand() *Error {
	return newError(KindUnsafe, "%s", UnsafeMessage)
}
