package catalog

import (
	"fmt"
	"strconv"
)

// EmbedURL returns the YouTube embed URL that starts playback at the
// segment's timestamp.
func EmbedURL(videoID string, startMs int64) string {
	startSeconds := startMs / 1000
	return "https://www.youtube.com/embed/" + videoID +
		"?start=" + strconv.FormatInt(startSeconds, 10) + "&autoplay=1&rel=0"
}

// WatchURL returns the plain YouTube watch URL at the segment's timestamp.
func WatchURL(videoID string, startMs int64) string {
	return "https://www.youtube.com/watch?v=" + videoID +
		"&t=" + strconv.FormatInt(startMs/1000, 10) + "s"
}

// ThumbnailURL returns the medium-quality thumbnail for a video.
func ThumbnailURL(videoID string) string {
	return "https://img.youtube.com/vi/" + videoID + "/mqdefault.jpg"
}

// FormatTimestamp renders a millisecond offset as m:ss for display.
func FormatTimestamp(ms int64) string {
	totalSeconds := ms / 1000
	return fmt.Sprintf("%d:%02d", totalSeconds/60, totalSeconds%60)
}
