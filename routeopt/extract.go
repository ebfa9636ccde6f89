package routeopt

import (
	"encoding/json"
	"errors"
	"regexp"
)

// The oracle is asked for bare JSON but routinely wraps it in prose or
// a markdown fence, so the first brace-delimited substring is cut out
// before parsing. Greedy match: first '{' through last '}'.
var jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)

var (
	errNoJSON       = errors.New("reply contains no JSON object")
	errBadJSON      = errors.New("reply JSON does not parse")
	errNoRouteField = errors.New("reply JSON has no route field")
)

type routeReply struct {
	OptimizedRoute []string `json:"optimizedRoute"`
	Route          []string `json:"route"`
}

// extractRoute pulls the reordered address list out of the model's
// free-text reply. optimizedRoute wins over route; a present-but-empty
// list counts as present. The returned error is one of the sentinels
// above so the caller can tell the degradation modes apart.
func extractRoute(reply string) ([]string, error) {
	match := jsonObjectRe.FindString(reply)
	if match == "" {
		return nil, errNoJSON
	}

	var parsed routeReply
	if err := json.Unmarshal([]byte(match), &parsed); err != nil {
		return nil, errBadJSON
	}

	if parsed.OptimizedRoute != nil {
		return parsed.OptimizedRoute, nil
	}
	if parsed.Route != nil {
		return parsed.Route, nil
	}
	return nil, errNoRouteField
}
