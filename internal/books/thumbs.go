// Package books manages the reference documents attached to a
// campaign. Documents live on external hosts, only the URL is stored.
package books

import (
	"net/url"
	"regexp"
	"strings"
)

var driveFileRe = regexp.MustCompile(`^/file/d/([a-zA-Z0-9_-]+)`)

// ThumbnailURL derives a preview image URL from a recognized document
// host URL. This is a pure string transform, nothing is fetched. An
// unrecognized URL yields an empty string.
func ThumbnailURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}

	switch {
	case u.Host == "drive.google.com":
		if m := driveFileRe.FindStringSubmatch(u.Path); m != nil {
			return "https://drive.google.com/thumbnail?id=" + m[1]
		}
	case u.Host == "www.dropbox.com" || u.Host == "dropbox.com":
		q := u.Query()
		q.Set("raw", "1")
		q.Del("dl")
		u.RawQuery = q.Encode()

		return u.String()
	}

	return ""
}
