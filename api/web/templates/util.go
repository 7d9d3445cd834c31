package templates

import (
	"fmt"
	"strconv"
)

func photoImageURL(order int) string {
	return fmt.Sprintf("/api/photos/%d/image", order)
}

func currentImageURL(revision uint64) string {
	// the revision defeats the browser cache when the selection changes
	return "/image/current?rev=" + strconv.FormatUint(revision, 10)
}

func intervalLabel(ms int) string {
	return strconv.Itoa(ms/1000) + " s"
}
