package utils

import (
	"encoding/base64"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// FetchCoverImageBase64 downloads a course cover image and returns it as a
// data URI so the detail response can embed it directly. Returns an empty
// string when the URL is empty or the fetch fails; the detail view then
// falls back to the raw URL.
func FetchCoverImageBase64(imageURL string) string {
	if imageURL == "" {
		return ""
	}

	client := resty.New().SetTimeout(10 * time.Second)

	resp, err := client.R().Get(imageURL)
	if err != nil {
		log.Printf("Error fetching cover image %s: %v", imageURL, err)
		return ""
	}

	if resp.StatusCode() != 200 {
		log.Printf("Failed to fetch cover image %s, response code: %d", imageURL, resp.StatusCode())
		return ""
	}

	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	encoded := base64.StdEncoding.EncodeToString(resp.Body())
	return fmt.Sprintf("data:%s;base64,%s", contentType, encoded)
}
