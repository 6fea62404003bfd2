package scheduler

import (
	"strings"

	"github.com/viant/toolbox/url"
)

//urlToID derives a stable schedule ID from the trailing path segments
func urlToID(URL string) string {
	segments := strings.Split(url.NewResource(URL).ParsedURL.Path, "/")
	if len(segments) > 3 {
		segments = segments[len(segments)-3:]
	}
	ID := strings.Join(segments, ":")
	ID = strings.ReplaceAll(ID, "\\", "-")
	ID = strings.ReplaceAll(ID, " ", "_")
	return ID
}
